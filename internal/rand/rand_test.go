package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameInvocationIDProducesSameSequence(t *testing.T) {
	a := New([]byte("inv-1"))
	b := New([]byte("inv-1"))

	for i := 0; i < 8; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestDifferentInvocationIDsDiverge(t *testing.T) {
	a := New([]byte("inv-1"))
	b := New([]byte("inv-2"))

	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestFloat64StaysInUnitRange(t *testing.T) {
	r := New([]byte("inv-float"))
	for i := 0; i < 100; i++ {
		f := r.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestUUIDSetsVersionAndVariantBits(t *testing.T) {
	r := New([]byte("inv-uuid"))
	id := r.UUID()

	assert.Equal(t, byte(0x40), id[6]&0xf0)
	assert.Equal(t, byte(0x80), id[8]&0xc0)
}

func TestSourceSeedPanics(t *testing.T) {
	r := New([]byte("inv-seed"))
	assert.Panics(t, func() { r.Source().Seed(1) })
}

func TestSourceInt63IsNonNegative(t *testing.T) {
	r := New([]byte("inv-int63"))
	for i := 0; i < 50; i++ {
		assert.GreaterOrEqual(t, r.Source().Int63(), int64(0))
	}
}
