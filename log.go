package restate

// Logger is a structured logger whose output internal/state suppresses
// while the invocation is replaying (spec.md's ambient logging stack),
// so a handler can log freely without flooding replay runs with
// messages for work that has already happened.
//
// With takes alternating key/value pairs, mirroring zerolog's
// sugared/contextual logging idiom rather than its fluent builder, so
// call sites read as a single expression.
type Logger interface {
	With(keyvals ...any) Logger
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}
