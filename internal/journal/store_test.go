package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreGetFromInitialSnapshot(t *testing.T) {
	s := NewStore(map[string][]byte{"a": []byte("1")}, false)

	value, present, needsFetch := s.Get("a")
	assert.True(t, present)
	assert.False(t, needsFetch)
	assert.Equal(t, []byte("1"), value)
}

func TestStoreGetAbsentKeyNonPartialIsKnownAbsent(t *testing.T) {
	s := NewStore(nil, false)

	_, present, needsFetch := s.Get("missing")
	assert.False(t, present)
	assert.False(t, needsFetch)
}

func TestStoreGetAbsentKeyPartialNeedsFetch(t *testing.T) {
	s := NewStore(nil, true)

	_, present, needsFetch := s.Get("missing")
	assert.False(t, present)
	assert.True(t, needsFetch)
}

func TestStoreObserveFillsShadowAfterFetch(t *testing.T) {
	s := NewStore(nil, true)
	s.Observe("k", []byte("v"), true)

	value, present, needsFetch := s.Get("k")
	assert.True(t, present)
	assert.False(t, needsFetch)
	assert.Equal(t, []byte("v"), value)
}

func TestStoreObserveAbsentMarksCleared(t *testing.T) {
	s := NewStore(nil, true)
	s.Observe("k", nil, false)

	_, present, needsFetch := s.Get("k")
	assert.False(t, present)
	assert.False(t, needsFetch)
}

func TestStoreSetThenClearRoundTrip(t *testing.T) {
	s := NewStore(nil, false)
	s.Set("k", []byte("v"))

	value, present, _ := s.Get("k")
	assert.True(t, present)
	assert.Equal(t, []byte("v"), value)

	s.Clear("k")
	_, present, needsFetch := s.Get("k")
	assert.False(t, present)
	assert.False(t, needsFetch)
}

func TestStoreClearAllMakesStoreComplete(t *testing.T) {
	s := NewStore(map[string][]byte{"a": []byte("1")}, true)
	s.ClearAll()

	assert.False(t, s.IsPartial())
	_, present, needsFetch := s.Get("anything")
	assert.False(t, present)
	assert.False(t, needsFetch)
}

func TestStoreKeysMergesValuesAndObservedKeys(t *testing.T) {
	s := NewStore(map[string][]byte{"a": []byte("1")}, true)
	s.ObserveKeys([]string{"a", "b"})
	s.Clear("b")

	assert.ElementsMatch(t, []string{"a"}, s.Keys())
}
