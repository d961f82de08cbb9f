package wire

import "fmt"

// SuspensionPanic unwinds the handler goroutine when the invocation
// can make no further progress: either a genuine suspension (the
// underlying cause is io.EOF, signalling the platform has stopped
// sending completions for now) or an unexpected read failure on the
// inbound stream (spec.md §4.E "Suspension", §7 item 6).
type SuspensionPanic struct {
	Err          error
	EntryIndexes []uint32
}

func (p *SuspensionPanic) Error() string {
	return fmt.Sprintf("wire: suspended awaiting entries %v: %v", p.EntryIndexes, p.Err)
}

func (p *SuspensionPanic) Unwrap() error { return p.Err }
