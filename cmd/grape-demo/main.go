// grape-demo starts a few modules in the configured order and lets them find
// each other through a single Registry.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andriiyaremenko/grape"
	"github.com/andriiyaremenko/grape/internal/config"
	"github.com/andriiyaremenko/grape/internal/modules"
)

var (
	registryOnce    sync.Once
	processRegistry *grape.Registry
)

// Returns the one process-wide registry, built on first call with log.
// Library code never reaches for it: run receives it as an argument.
func defaultRegistry(log *slog.Logger) *grape.Registry {
	registryOnce.Do(func() {
		processRegistry = grape.New(grape.WithLogger(log))
	})

	return processRegistry
}

// ExitError carries the exit code the process should terminate with.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:], defaultRegistry); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}

			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context, out, logOut io.Writer, args []string,
	newRegistry func(*slog.Logger) *grape.Registry,
) error {
	flagSet := flag.NewFlagSet("grape-demo", flag.ContinueOnError)
	flagSet.SetOutput(out)

	configFlag := flagSet.String("config", "", "Path to YAML configuration file.")
	logLevelFlag := flagSet.String("log-level", "", "Overrides log level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "", "Overrides log format. Options: 'text' or 'json'.")
	nameFlag := flagSet.String("name", "World", "Who to greet.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}

		return &ExitError{Code: 2, Message: err.Error()}
	}

	cfg, err := loadConfig(*configFlag, *logLevelFlag, *logFormatFlag)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	log, err := newLogger(logOut, cfg)
	if err != nil {
		return err
	}

	registry := newRegistry(log)

	ctx, cancel := context.WithTimeout(ctx, cfg.AwaitTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, m := range cfg.Modules {
		start, _ := modules.Lookup(m.Name)

		g.Go(func() error {
			if err := sleep(gctx, m.Delay); err != nil {
				return fmt.Errorf("module %s: %w", m.Name, err)
			}

			log.Info("starting module", "module", m.Name)

			if err := start(gctx, registry); err != nil {
				return fmt.Errorf("module %s: %w", m.Name, err)
			}

			log.Info("module started", "module", m.Name)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("modules failed to start", "error", err, "pending", registry.Pending())
		return err
	}

	greeter, ok := grape.Find[modules.Greeter](registry)
	if !ok {
		return &ExitError{Code: 1, Message: "greeter module is not configured"}
	}

	_, err = fmt.Fprintln(out, greeter.Greet(*nameFlag))

	return err
}

func loadConfig(path, level, format string) (*config.Config, error) {
	known := modules.Names()

	var (
		cfg *config.Config
		err error
	)

	if path == "" {
		cfg = config.Default(known)
	} else if cfg, err = config.Load(path, known); err != nil {
		return nil, err
	}

	if level != "" {
		cfg.LogLevel = level
	}

	if format != "" {
		cfg.LogFormat = strings.ToLower(format)
	}

	if err := cfg.Validate(known); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	switch cfg.LogFormat {
	case config.FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
