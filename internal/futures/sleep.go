package futures

import (
	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"
)

// Sleep is the blocking future backing Context.Sleep and the root of
// the public After combinator (spec.md §4.F).
type Sleep struct{ *base }

// NewSleep constructs and starts a Sleep future that wakes at
// wakeUpTimeMillis (epoch milliseconds, computed by the caller from a
// time.Duration at construction time so that replay reuses the same
// absolute deadline rather than recomputing "now + d").
func NewSleep(m Machine, wakeUpTimeMillis uint64) *Sleep {
	entry := &wire.SleepEntryMessage{SleepEntryMessage: protocol.SleepEntryMessage{WakeUpTime: wakeUpTimeMillis}}
	return &Sleep{start(m, entry)}
}

// Await blocks until the timer fires.
func (f *Sleep) Await() error {
	msg := f.await().(*wire.SleepEntryMessage)
	if msg.Failure != nil {
		return errorsx.FromFailure(msg.Failure, false)
	}
	return nil
}
