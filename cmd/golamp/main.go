// Command golamp runs the light firmware on a Linux board, or on the
// simulated board with a command console on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/device"
	"github.com/itohio/golamp/pkg/hal/gpio"
	"github.com/itohio/golamp/pkg/hal/sim"
	"github.com/itohio/golamp/pkg/sched"
)

func main() {
	var (
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		simFlag    = flag.Bool("sim", false, "Use the simulated board driven from stdin")
		initFlag   = flag.Bool("init", false, "Write the effective configuration to the config path and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *initFlag {
		if err := cfg.Save(*configFlag); err != nil {
			log.Fatalf("Failed to save configuration: %v", err)
		}
		return
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *simFlag {
		err = runSim(ctx, stop, cfg, logger)
	} else {
		err = runBoard(ctx, cfg, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Stopped", zap.Error(err))
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zc.Level = level
	return zc.Build()
}

func runBoard(ctx context.Context, cfg *config.Config, logger *zap.Logger) (err error) {
	board, err := gpio.Open(cfg.Hardware, logger)
	if err != nil {
		return fmt.Errorf("failed to open board: %w", err)
	}
	defer func() {
		err = multierr.Append(err, board.Close())
	}()

	clock := sched.NewRealClock()
	defer clock.Stop()

	dev, err := device.New(cfg, board.Board(), clock, nil, logger)
	if err != nil {
		return err
	}
	defer dev.Close()

	logger.Info("Running")
	return dev.Run(ctx)
}

func runSim(ctx context.Context, stop context.CancelFunc, cfg *config.Config, logger *zap.Logger) error {
	if !cfg.Sim.Realtime {
		return runVirtual(ctx, cfg, logger)
	}

	clock := sched.NewRealClock()
	defer clock.Stop()

	board := sim.New(&cfg.Sim, clock.Now, logger)
	board.Power.OnStop(stop)

	dev, err := device.New(cfg, board.Board(), clock, nil, logger)
	if err != nil {
		return err
	}
	defer dev.Close()

	con := &console{
		board: board,
		state: dev.State,
		out:   os.Stdout,
		wait: func(d time.Duration) error {
			select {
			case <-time.After(d):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}

	lines := readLines(os.Stdin)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dev.Run(ctx)
	})
	g.Go(func() error {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if err := con.exec(line); err != nil {
					if errors.Is(err, errQuit) {
						return nil
					}
					fmt.Fprintln(con.out, err)
				}
			}
		}
	})
	return g.Wait()
}

// runVirtual drives the device on virtual time: the scheduler only runs while
// a console command waits, so scripts replay deterministically.
func runVirtual(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	clock := sched.NewSimClock()
	board := sim.New(&cfg.Sim, clock.Now, logger)

	stopped := false
	board.Power.OnStop(func() { stopped = true })

	dev, err := device.New(cfg, board.Board(), clock, nil, logger)
	if err != nil {
		return err
	}
	defer dev.Close()

	con := &console{
		board: board,
		state: dev.State,
		out:   os.Stdout,
		wait: func(d time.Duration) error {
			if err := dev.Scheduler.RunFor(ctx, d); err != nil {
				return err
			}
			if stopped {
				return errQuit
			}
			return nil
		},
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := con.exec(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(con.out, err)
		}
	}
	return scanner.Err()
}

// readLines delivers stdin lines on a channel closed at EOF. The reader
// goroutine is left blocked on stdin when the program stops early.
func readLines(f *os.File) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}
