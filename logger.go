package weekit

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/weekit/weekit/input"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a loop is running.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for weekit and its sub-packages.
// By default weekit produces no log output.
// Pass nil to restore the silent default.
//
// Log levels used by weekit:
//   - [slog.LevelDebug]: device capability reports, platform details
//   - [slog.LevelInfo]: session lifecycle (opened, finished)
//   - [slog.LevelWarn]: local failures (missing image file, input device open errors)
//
// Example:
//
//	weekit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	input.SetLogger(l)
}

// Logger returns the current logger used by weekit.
// Platform packages call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
