package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Validation errors returned by Validate.
var (
	ErrTickRate     = errors.New("governor tick rate must be between 1 and 1000 Hz")
	ErrThresholds   = errors.New("instant stop thresholds must be at least as severe as soft thresholds")
	ErrAccumulator  = errors.New("accumulator floor must be below ceiling")
	ErrSenseRatio   = errors.New("curve sense ratio must be positive")
	ErrButtonTiming = errors.New("button timings must be positive")
	ErrTelemetry    = errors.New("telemetry intervals must be positive and below the watchdog period")
)

// Config represents the application configuration.
type Config struct {
	Button    ButtonConfig    `yaml:"button"`
	Governor  GovernorConfig  `yaml:"governor"`
	Curve     CurveConfig     `yaml:"curve"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	UI        UIConfig        `yaml:"ui"`
	Hardware  HardwareConfig  `yaml:"hardware"`
	Sim       SimConfig       `yaml:"sim"`
	Log       LogConfig       `yaml:"log"`
}

// ButtonConfig contains debounce and gesture timings.
type ButtonConfig struct {
	Settle         time.Duration `yaml:"settle"`          // Press must hold this long to be accepted
	Poll           time.Duration `yaml:"poll"`            // Release polling period
	GestureTimeout time.Duration `yaml:"gesture_timeout"` // Click/hold disambiguation window
}

// GovernorConfig contains power governor tuning.
type GovernorConfig struct {
	TickRate         int           `yaml:"tick_rate"`          // Control loop rate (Hz)
	InstantStopTemp  float64       `yaml:"instant_stop_temp"`  // Hard clamp above this (C)
	MaxTemp          float64       `yaml:"max_temp"`           // Derating starts above this (C)
	MinVolts         float64       `yaml:"min_volts"`          // Derating starts below this (V)
	InstantStopVolts float64       `yaml:"instant_stop_volts"` // Hard clamp below this (V)
	AccumulatorFloor float64       `yaml:"accumulator_floor"`  // Lower bound of safety integrals
	AccumulatorCeil  float64       `yaml:"accumulator_ceil"`   // Upper bound of safety integrals
	BringUpDelay     time.Duration `yaml:"bring_up_delay"`     // Pre-regulator settle time before boost enable
	BlinkLevel       uint8         `yaml:"blink_level"`        // Level used for feedback blinks
	BlinkPeriod      time.Duration `yaml:"blink_period"`       // On and off time of one blink
}

// CurveConfig contains power curve calibration parameters used by curvegen.
type CurveConfig struct {
	SenseRatio      float32 `yaml:"sense_ratio"`       // Low range attenuation relative to high range
	HighRangeOffset float32 `yaml:"high_range_offset"` // Added to every high range output
	Strict          bool    `yaml:"strict"`            // Drop overlapping codes between ranges
	LowCeiling      uint16  `yaml:"low_ceiling"`       // Strict: low range codes at or above are dropped
	HighFloor       uint16  `yaml:"high_floor"`        // Strict: high range codes at or below are dropped
}

// TelemetryConfig contains sensor sampling parameters.
type TelemetryConfig struct {
	OnInterval   time.Duration `yaml:"on_interval"`   // Sampling period while lit
	OffInterval  time.Duration `yaml:"off_interval"`  // Maximum sampling period while dark
	CriticalTemp float64       `yaml:"critical_temp"` // Emergency stop above this raw reading (C)
	SeedVolts    float64       `yaml:"seed_volts"`    // Initial smoothed voltage
	SeedTemp     float64       `yaml:"seed_temp"`     // Initial smoothed temperature
}

// UIConfig contains torch behavior parameters.
type UIConfig struct {
	DefaultLevel  uint8         `yaml:"default_level"`  // Level used by hold-to-turn-on
	LockoutLevel  uint8         `yaml:"lockout_level"`  // Momentary level while locked
	BoostLevel    uint8         `yaml:"boost_level"`    // Level used by boost toggle
	RampStep      time.Duration `yaml:"ramp_step"`      // Time per ramp level
	RampReverse   time.Duration `yaml:"ramp_reverse"`   // Hold within this of an upward ramp reverses it
	LockTimeout   time.Duration `yaml:"lock_timeout"`   // Idle time before automatic lockout
	StartUnlocked bool          `yaml:"start_unlocked"` // Skip lockout after reset
}

// HardwareConfig contains Linux GPIO and IIO bindings.
type HardwareConfig struct {
	Chip            string  `yaml:"chip"`
	ButtonLine      int     `yaml:"button_line"`
	ButtonLEDLine   int     `yaml:"button_led_line"` // Negative disables the indicator
	RangeLine       int     `yaml:"range_line"`
	AuxLine         int     `yaml:"aux_line"`
	BoostLine       int     `yaml:"boost_line"`
	PowerEnableLine int     `yaml:"power_enable_line"`
	DACPath         string  `yaml:"dac_path"`
	DACEnablePath   string  `yaml:"dac_enable_path"`
	VoltagePath     string  `yaml:"voltage_path"`
	VoltageScale    float64 `yaml:"voltage_scale"` // Volts per raw count
	TempPath        string  `yaml:"temp_path"`
	TempScale       float64 `yaml:"temp_scale"` // Degrees per raw count
	WatchdogPath    string  `yaml:"watchdog_path"`
}

// SimConfig contains simulated board parameters.
type SimConfig struct {
	Ambient      float64       `yaml:"ambient"`       // Ambient temperature (C)
	HeatRise     float64       `yaml:"heat_rise"`     // Steady-state rise at full output (C)
	ThermalTau   time.Duration `yaml:"thermal_tau"`   // Thermal time constant
	BatteryVolts float64       `yaml:"battery_volts"` // Initial battery voltage (V)
	EmptyVolts   float64       `yaml:"empty_volts"`   // Battery voltage floor (V)
	DrainRate    float64       `yaml:"drain_rate"`    // Voltage drop per hour at full output (V)
	NoiseLevel   float64       `yaml:"noise_level"`   // Sensor noise amplitude
	Realtime     bool          `yaml:"realtime"`      // Use wall clock instead of virtual time
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Button: ButtonConfig{
			Settle:         16 * time.Millisecond,
			Poll:           16 * time.Millisecond,
			GestureTimeout: 300 * time.Millisecond,
		},
		Governor: GovernorConfig{
			TickRate:         100,
			InstantStopTemp:  50,
			MaxTemp:          40,
			MinVolts:         3.0,
			InstantStopVolts: 3.0,
			AccumulatorFloor: 0,
			AccumulatorCeil:  1 << 32,
			BringUpDelay:     8 * time.Millisecond,
			BlinkLevel:       30,
			BlinkPeriod:      100 * time.Millisecond,
		},
		Curve: CurveConfig{
			SenseRatio:      412,
			HighRangeOffset: 0,
			Strict:          true,
			LowCeiling:      3000,
			HighFloor:       10,
		},
		Telemetry: TelemetryConfig{
			OnInterval:   250 * time.Millisecond,
			OffInterval:  4 * time.Second,
			CriticalTemp: 60,
			SeedVolts:    4.0,
			SeedTemp:     20,
		},
		UI: UIConfig{
			DefaultLevel: 27,
			LockoutLevel: 30,
			BoostLevel:   255,
			RampStep:     16 * time.Millisecond,
			RampReverse:  500 * time.Millisecond,
			LockTimeout:  3 * time.Minute,
		},
		Hardware: HardwareConfig{
			Chip:            "gpiochip0",
			ButtonLine:      17,
			ButtonLEDLine:   27,
			RangeLine:       22,
			AuxLine:         23,
			BoostLine:       24,
			PowerEnableLine: 25,
			DACPath:         "/sys/bus/iio/devices/iio:device0/out_voltage0_raw",
			DACEnablePath:   "/sys/bus/iio/devices/iio:device0/out_voltage0_powerdown",
			VoltagePath:     "/sys/bus/iio/devices/iio:device1/in_voltage0_raw",
			VoltageScale:    2 * 3.3 / 4096, // 1:1 divider on a 3.3 V 12-bit ADC
			TempPath:        "/sys/class/thermal/thermal_zone0/temp",
			TempScale:       0.001, // millidegrees
			WatchdogPath:    "/dev/watchdog",
		},
		Sim: SimConfig{
			Ambient:      25,
			HeatRise:     35,
			ThermalTau:   30 * time.Second,
			BatteryVolts: 4.1,
			EmptyVolts:   2.8,
			DrainRate:    1.0,
			NoiseLevel:   0.002,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Governor.TickRate < 1 || c.Governor.TickRate > 1000 {
		return ErrTickRate
	}
	if c.Governor.InstantStopTemp < c.Governor.MaxTemp || c.Governor.InstantStopVolts > c.Governor.MinVolts {
		return ErrThresholds
	}
	if c.Governor.AccumulatorFloor >= c.Governor.AccumulatorCeil {
		return ErrAccumulator
	}
	if c.Curve.SenseRatio <= 0 {
		return ErrSenseRatio
	}
	if c.Button.Settle <= 0 || c.Button.Poll <= 0 || c.Button.GestureTimeout <= 0 {
		return ErrButtonTiming
	}
	// The watchdog must be fed at least every 6 s.
	if c.Telemetry.OnInterval <= 0 || c.Telemetry.OffInterval <= 0 || c.Telemetry.OffInterval >= 6*time.Second {
		return ErrTelemetry
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Button.Settle == 0 {
		c.Button.Settle = def.Button.Settle
	}
	if c.Button.Poll == 0 {
		c.Button.Poll = def.Button.Poll
	}
	if c.Button.GestureTimeout == 0 {
		c.Button.GestureTimeout = def.Button.GestureTimeout
	}

	if c.Governor.TickRate == 0 {
		c.Governor.TickRate = def.Governor.TickRate
	}
	if c.Governor.AccumulatorCeil == 0 {
		c.Governor.AccumulatorCeil = def.Governor.AccumulatorCeil
	}
	if c.Governor.BringUpDelay == 0 {
		c.Governor.BringUpDelay = def.Governor.BringUpDelay
	}
	if c.Governor.BlinkLevel == 0 {
		c.Governor.BlinkLevel = def.Governor.BlinkLevel
	}
	if c.Governor.BlinkPeriod == 0 {
		c.Governor.BlinkPeriod = def.Governor.BlinkPeriod
	}

	if c.Curve.SenseRatio == 0 {
		c.Curve.SenseRatio = def.Curve.SenseRatio
	}

	if c.Telemetry.OnInterval == 0 {
		c.Telemetry.OnInterval = def.Telemetry.OnInterval
	}
	if c.Telemetry.OffInterval == 0 {
		c.Telemetry.OffInterval = def.Telemetry.OffInterval
	}
	if c.Telemetry.CriticalTemp == 0 {
		c.Telemetry.CriticalTemp = def.Telemetry.CriticalTemp
	}

	if c.UI.DefaultLevel == 0 {
		c.UI.DefaultLevel = def.UI.DefaultLevel
	}
	if c.UI.LockoutLevel == 0 {
		c.UI.LockoutLevel = def.UI.LockoutLevel
	}
	if c.UI.BoostLevel == 0 {
		c.UI.BoostLevel = def.UI.BoostLevel
	}
	if c.UI.RampStep == 0 {
		c.UI.RampStep = def.UI.RampStep
	}
	if c.UI.LockTimeout == 0 {
		c.UI.LockTimeout = def.UI.LockTimeout
	}

	if c.Hardware.Chip == "" {
		c.Hardware.Chip = def.Hardware.Chip
	}

	if c.Sim.ThermalTau == 0 {
		c.Sim.ThermalTau = def.Sim.ThermalTau
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
