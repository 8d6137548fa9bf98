package deepzoom

import "log/slog"

// debugLogger wraps a slog.Logger behind the debug switch. Diagnostics are
// dropped entirely unless debug mode is on.
type debugLogger struct {
	log     *slog.Logger
	enabled bool
}

func newDebugLogger(l *slog.Logger, enabled bool) *debugLogger {
	if l == nil {
		l = slog.Default()
	}
	return &debugLogger{log: l.With("component", "deepzoom"), enabled: enabled}
}

func (d *debugLogger) debug(msg string, args ...any) {
	if !d.enabled {
		return
	}
	d.log.Debug(msg, args...)
}

func (d *debugLogger) warn(msg string, args ...any) {
	if !d.enabled {
		return
	}
	d.log.Warn(msg, args...)
}
