package log

// noopLogger discards all output. It is the default until SetLogger is
// called.
type noopLogger struct{}

// Noop returns a logger that discards everything.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(msg string, fields ...Field) {}
func (l *noopLogger) Info(msg string, fields ...Field)  {}
func (l *noopLogger) Warn(msg string, fields ...Field)  {}
func (l *noopLogger) Error(msg string, fields ...Field) {}
