// Package log adapts zerolog to restate.Logger, suppressing output
// while the invocation is replaying (spec.md's ambient logging stack:
// "a handler's log calls must not re-emit on replay").
package log

import (
	restate "github.com/restatedev/sdk-go"
	"github.com/rs/zerolog"
)

var _ restate.Logger = Logger{}

// Replaying is polled lazily on every call rather than captured once,
// so a single Logger value built before the journal finishes its
// replay prefix still suppresses correctly once replay starts.
type Replaying func() bool

type Logger struct {
	log       zerolog.Logger
	replaying Replaying
}

// New wraps log, consulting replaying before every call to decide
// whether to actually write the event.
func New(zl zerolog.Logger, replaying Replaying) Logger {
	return Logger{log: zl, replaying: replaying}
}

func (l Logger) With(keyvals ...any) restate.Logger {
	ctx := l.log.With()
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, _ := keyvals[i].(string)
		ctx = ctx.Interface(key, keyvals[i+1])
	}
	return Logger{log: ctx.Logger(), replaying: l.replaying}
}

func (l Logger) Debug(msg string) { l.emit(l.log.Debug(), msg) }
func (l Logger) Info(msg string)  { l.emit(l.log.Info(), msg) }
func (l Logger) Warn(msg string)  { l.emit(l.log.Warn(), msg) }
func (l Logger) Error(msg string) { l.emit(l.log.Error(), msg) }

func (l Logger) emit(e *zerolog.Event, msg string) {
	if l.replaying != nil && l.replaying() {
		e.Discard()
		return
	}
	e.Msg(msg)
}
