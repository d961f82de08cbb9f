package journal

import "sync"

// Store shadows the platform's key->value state for one invocation
// (spec.md §4.C). It is write-through at the journal level: Set/Clear/
// ClearAll update the shadow immediately so that later reads in the
// same invocation observe the write without a round trip, while the
// caller (internal/state.Context) is responsible for also emitting the
// corresponding SetState/ClearState/ClearAllState journal entry.
type Store struct {
	mu         sync.Mutex
	values     map[string][]byte
	cleared    map[string]bool
	knownKeys  map[string]bool
	partial    bool
	allCleared bool
}

// NewStore seeds a Store from the initial state snapshot carried on
// the Start message.
func NewStore(initial map[string][]byte, partial bool) *Store {
	values := make(map[string][]byte, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Store{
		values:    values,
		cleared:   make(map[string]bool),
		knownKeys: make(map[string]bool),
		partial:   partial,
	}
}

// IsPartial reports whether this shadow may be missing keys the
// platform actually holds.
func (s *Store) IsPartial() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partial
}

// Get returns the shadowed value for key and whether it is present,
// if that can be answered from the shadow alone; needsFetch reports
// that the shadow doesn't know and a platform round trip (GetState) is
// required. When needsFetch is true, value/present are meaningless.
func (s *Store) Get(key string) (value []byte, present bool, needsFetch bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.values[key]; ok {
		return v, true, false
	}
	if s.allCleared || s.cleared[key] {
		return nil, false, false
	}
	if !s.partial {
		return nil, false, false
	}
	return nil, false, true
}

// Set writes key=value into the shadow.
func (s *Store) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	delete(s.cleared, key)
}

// Observe records a value fetched from the platform via GetState, so
// later reads in the same invocation are served from the shadow.
func (s *Store) Observe(key string, value []byte, present bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if present {
		s.values[key] = value
	} else {
		s.cleared[key] = true
	}
}

// Clear removes key from the shadow.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.cleared[key] = true
}

// ClearAll drops every key from the shadow and marks the store
// complete: subsequent absent-key reads no longer need a round trip.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string][]byte)
	s.cleared = make(map[string]bool)
	s.knownKeys = make(map[string]bool)
	s.allCleared = true
	s.partial = false
}

// Keys returns the set of keys known to be present, merging materialized
// values with any key list previously observed via ObserveKeys.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(s.values)+len(s.knownKeys))
	keys := make([]string, 0, len(s.values)+len(s.knownKeys))
	for k := range s.values {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	for k := range s.knownKeys {
		if s.cleared[k] {
			continue
		}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

// ObserveKeys merges a GetStateKeys completion's key list into the
// shadow's notion of "known keys" without materializing their values.
func (s *Store) ObserveKeys(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		s.knownKeys[k] = true
	}
}
