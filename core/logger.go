package core

// Logger is any service that can log messages at the usual levels.
// Args are free-form context values; implementations may special-case
// known types (eg. the acting actor.Actor) for error reporting.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
