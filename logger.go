package present

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by present and its backends.
// By default nothing is logged. Passing nil restores the silent default.
//
// Levels:
//   - [slog.LevelDebug]: surface configuration and per-frame failures
//   - [slog.LevelInfo]: adapter selection and device creation
//   - [slog.LevelWarn]: recoverable problems such as a lost surface
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Backend packages call this so they
// share one configuration without an import cycle.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
