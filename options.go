package grape

import "log/slog"

type RegistryConfiguration struct {
	Logger *slog.Logger
}

type RegistryOption func(*RegistryConfiguration)

var (
	// Registry will log through l instead of the package default logger.
	WithLogger = func(l *slog.Logger) RegistryOption {
		return func(opt *RegistryConfiguration) { opt.Logger = l }
	}
)
