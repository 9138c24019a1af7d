package gpio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func attr(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSysfsDAC(t *testing.T) {
	dir := t.TempDir()
	d := &sysfsDAC{
		rawPath:       attr(t, dir, "out_voltage0_raw", "0\n"),
		powerdownPath: attr(t, dir, "out_voltage0_powerdown", "1\n"),
		logger:        zap.NewNop(),
	}

	d.Enable(true)
	d.Set(3071)
	assert.Equal(t, "0\n", read(t, d.powerdownPath))
	assert.Equal(t, "3071\n", read(t, d.rawPath))

	d.Enable(false)
	assert.Equal(t, "1\n", read(t, d.powerdownPath))
}

func TestSysfsDAC_WriteErrorIsLogged(t *testing.T) {
	d := &sysfsDAC{
		rawPath:       filepath.Join(t.TempDir(), "missing", "raw"),
		powerdownPath: filepath.Join(t.TempDir(), "missing", "powerdown"),
		logger:        zap.NewNop(),
	}
	assert.NotPanics(t, func() {
		d.Enable(true)
		d.Set(1)
	})
}

func TestSysfsSensors(t *testing.T) {
	dir := t.TempDir()
	s := &sysfsSensors{
		voltagePath:  attr(t, dir, "in_voltage0_raw", "2482\n"),
		voltageScale: 2 * 3.3 / 4096,
		tempPath:     attr(t, dir, "temp", "41250\n"),
		tempScale:    0.001,
	}

	v, err := s.Voltage()
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v.Float(), 0.002)

	c, err := s.Temperature()
	require.NoError(t, err)
	assert.InDelta(t, 41.25, c.Float(), 0.001)
}

func TestSysfsSensors_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		s    *sysfsSensors
	}{
		{
			name: "missing",
			s: &sysfsSensors{
				voltagePath: filepath.Join(dir, "nope"),
				tempPath:    filepath.Join(dir, "nope"),
			},
		},
		{
			name: "garbage",
			s: &sysfsSensors{
				voltagePath: attr(t, dir, "v", "abc\n"),
				tempPath:    attr(t, dir, "c", "\n"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.Voltage()
			assert.Error(t, err)
			_, err = tt.s.Temperature()
			assert.Error(t, err)
		})
	}
}

func TestWatchdogDevice(t *testing.T) {
	path := attr(t, t.TempDir(), "watchdog", "")

	wd, err := openWatchdog(path, zap.NewNop())
	require.NoError(t, err)
	wd.Feed()
	wd.Feed()
	require.NoError(t, wd.Close())

	assert.Equal(t, "\x00\x00V", read(t, path))

	_, err = openWatchdog(filepath.Join(t.TempDir(), "missing"), zap.NewNop())
	assert.Error(t, err)
}
