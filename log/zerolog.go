package log

import "github.com/rs/zerolog"

// zerologAdapter wraps a zerolog.Logger to implement Logger.
type zerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a Logger backed by a zerolog.Logger.
//
//	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	log.SetLogger(log.NewZerologAdapter(zlog))
func NewZerologAdapter(logger zerolog.Logger) Logger {
	return &zerologAdapter{logger: logger}
}

func (l *zerologAdapter) Debug(msg string, fields ...Field) {
	emit(l.logger.Debug(), msg, fields)
}

func (l *zerologAdapter) Info(msg string, fields ...Field) {
	emit(l.logger.Info(), msg, fields)
}

func (l *zerologAdapter) Warn(msg string, fields ...Field) {
	emit(l.logger.Warn(), msg, fields)
}

func (l *zerologAdapter) Error(msg string, fields ...Field) {
	emit(l.logger.Error(), msg, fields)
}

func emit(event *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

// addField adds a Field to a zerolog event with type-appropriate
// encoding for the kinds of values the engine logs.
func addField(event *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case int64:
		return event.Int64(f.Key, v)
	case float64:
		return event.Float64(f.Key, v)
	case bool:
		return event.Bool(f.Key, v)
	case error:
		return event.AnErr(f.Key, v)
	default:
		return event.Interface(f.Key, v)
	}
}
