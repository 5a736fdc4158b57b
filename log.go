package grape

import (
	"log/slog"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

// Sets logger used by every Registry created without WithLogger.
// Passing nil restores slog.Default().
func SetDefaultLogger(l *slog.Logger) {
	defaultLogger.Store(l)
}

func logger() *slog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}

	return slog.Default()
}
