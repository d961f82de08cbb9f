// Package protocol holds the hand-maintained message structs for the
// Restate service-protocol, together with their protobuf wire
// encoding. In the upstream SDK these are produced by protoc from the
// service-protocol .proto files; here they are written out directly
// against the field numbers assigned by the protocol (see the
// `tag = N` comment on each field) so that the module does not depend
// on a protoc invocation at build time.
package protocol

// Failure is the common (code, message) pair carried by Error messages
// and by completion/output failures.
type Failure struct {
	Code    uint32 // tag 1
	Message string // tag 2
}

// Header is a single request header captured on the Input entry.
type Header struct {
	Key   string // tag 1
	Value string // tag 2
}

// StateEntry is one key/value pair of the initial state snapshot
// carried on the Start message.
type StateEntry struct {
	Key   []byte // tag 1
	Value []byte // tag 2
}

// StartMessage opens an invocation.
type StartMessage struct {
	Id                        []byte       // tag 1
	DebugId                   string       // tag 2
	KnownEntries              uint32       // tag 3
	StateMap                  []StateEntry // tag 4
	Partial                   bool         // tag 5
	Key                       string       // tag 6
	RetryCountSinceLastStored uint32       // tag 8
}

// CompletionMessage resolves a previously emitted completable entry.
type CompletionMessage struct {
	EntryIndex uint32 // tag 1

	// Exactly one of the following is set; Empty is represented by
	// HasEmpty=true with Value=nil and Failure=nil.
	HasEmpty bool     // tag 13
	Value    []byte   // tag 14
	Failure  *Failure // tag 15
}

// SuspensionMessage is emitted when the invocation cannot make
// progress against any currently pending entry.
type SuspensionMessage struct {
	EntryIndexes []uint32 // tag 1, repeated, unpacked
}

// ErrorMessage reports a fatal or application error for the invocation.
type ErrorMessage struct {
	Code              uint32  // tag 1
	Message           string  // tag 2
	Description       string  // tag 3
	RelatedEntryIndex *uint32 // tag 4
	RelatedEntryType  *uint32 // tag 5
	RelatedEntryName  *string // tag 6
}

// EntryAckMessage acknowledges receipt of an emitted entry.
type EntryAckMessage struct {
	EntryIndex uint32 // tag 1
}

// EndMessage terminates the bidirectional stream.
type EndMessage struct{}

// InputEntryMessage carries the invocation's input payload.
type InputEntryMessage struct {
	Headers []Header // tag 1
	Value   []byte   // tag 2
}

// OutputEntryMessage carries the invocation's terminal result.
type OutputEntryMessage struct {
	// Exactly one of Value/Failure is set.
	Value   []byte   // tag 14
	Failure *Failure // tag 15
}

// GetStateEntryMessage reads one state key.
type GetStateEntryMessage struct {
	Key     []byte // tag 1
	HasZero bool
	Value   []byte   // tag 14
	Failure *Failure // tag 15
}

// SetStateEntryMessage writes one state key.
type SetStateEntryMessage struct {
	Key   []byte // tag 1
	Value []byte // tag 3
}

// ClearStateEntryMessage deletes one state key.
type ClearStateEntryMessage struct {
	Key []byte // tag 1
}

// ClearAllStateEntryMessage deletes the entire state map.
type ClearAllStateEntryMessage struct{}

// GetStateKeysEntryMessage lists the known state keys.
type GetStateKeysEntryMessage struct {
	Value   *GetStateKeysEntryMessage_StateKeys // tag 14
	Failure *Failure                            // tag 15
}

// GetStateKeysEntryMessage_StateKeys is the nested message used as the
// success payload of GetStateKeysEntryMessage.
type GetStateKeysEntryMessage_StateKeys struct {
	Keys [][]byte // tag 1, repeated
}

// GetPromiseEntryMessage blocks on a durable promise's result.
type GetPromiseEntryMessage struct {
	Key     string   // tag 1
	Value   []byte   // tag 14
	Failure *Failure // tag 15
}

// PeekPromiseEntryMessage reads a durable promise without blocking.
type PeekPromiseEntryMessage struct {
	Key     string   // tag 1
	HasZero bool
	Value   []byte   // tag 14
	Failure *Failure // tag 15
}

// CompletePromiseEntryMessage resolves or rejects a durable promise.
type CompletePromiseEntryMessage struct {
	Key             string   // tag 1
	CompletionValue []byte   // tag 2
	CompletionError *Failure // tag 3
	// Empty response on success; Failure carries a rejection reason.
	Failure *Failure // tag 15
}

// SleepEntryMessage is a durable timer.
type SleepEntryMessage struct {
	WakeUpTime uint64 // tag 1
	HasZero    bool
	Failure    *Failure // tag 15
}

// CallEntryMessage is a synchronous call to another handler.
type CallEntryMessage struct {
	ServiceName string // tag 1
	HandlerName string // tag 2
	Parameter   []byte // tag 3
	Key         string // tag 4

	Value   []byte   // tag 14
	Failure *Failure // tag 15
}

// OneWayCallEntryMessage is a fire-and-forget call to another handler.
type OneWayCallEntryMessage struct {
	ServiceName string // tag 1
	HandlerName string // tag 2
	Parameter   []byte // tag 3
	Key         string // tag 4
	InvokeTime  uint64 // tag 5
}

// AwakeableEntryMessage creates an externally-resolvable one-shot value.
type AwakeableEntryMessage struct {
	Value   []byte   // tag 14
	Failure *Failure // tag 15
}

// CompleteAwakeableEntryMessage resolves or rejects an awakeable.
type CompleteAwakeableEntryMessage struct {
	Id              string   // tag 1
	CompletionValue []byte   // tag 2
	CompletionError *Failure // tag 3
}

// RunEntryMessage carries the outcome of a non-deterministic side
// effect that the handler executed itself.
type RunEntryMessage struct {
	Value   []byte   // tag 14
	Failure *Failure // tag 15
}

// CombinatorEntryMessage is a Custom entry that records which child of
// a Timeout/Join/Select resolved, and in what order, so replay selects
// the same branch deterministically.
type CombinatorEntryMessage struct {
	CombinatorId       uint32   // tag 1
	JournalEntriesOrder []uint32 // tag 2, repeated, unpacked
}
