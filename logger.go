package dynbitvec

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dynbitvec-specific context. It is used at
// slog.LevelDebug to trace root promotions and sibling-window
// redistributions — the two structurally interesting events in the tree —
// never on the Access hot path.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is
// nil, uses a default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithID adds an id field to the logger (the bit index an operation acted
// on, for example).
func (l *Logger) WithID(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(index int, bit bool, err error) {
	if err != nil {
		l.Error("insert failed", "index", index, "bit", bit, "error", err)
	} else {
		l.Debug("insert completed", "index", index, "bit", bit)
	}
}

// LogRootPromotion logs a root promotion (the root split and a new root
// node was allocated above it).
func (l *Logger) LogRootPromotion(newHeight int) {
	l.Debug("root promoted", "new_height", newHeight)
}

// LogRedistribution logs a sibling-window redistribution or split.
func (l *Logger) LogRedistribution(kind RedistributionKind, siblings int, split bool) {
	l.Debug("redistribution", "kind", kind.String(), "siblings", siblings, "split", split)
}
