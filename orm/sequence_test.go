package orm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaleido-io/PET-atomic-settlements/store"
)

func TestSequenceMonotonic(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("atom", "id")

	for i := int64(1); i <= 10; i++ {
		val, err := s.NextInt(db)
		require.NoError(t, err)
		assert.Equal(t, i, val)
	}

	// NextVal continues from the same counter and its byte encoding
	// preserves the ordering.
	var last []byte
	for i := 0; i < 10; i++ {
		bz, err := s.NextVal(db)
		require.NoError(t, err)
		if last != nil {
			assert.True(t, bytes.Compare(last, bz) < 0, "keys must be strictly increasing")
		}
		last = bz
	}
	assert.Equal(t, EncodeSequence(20), last)
}

func TestSequenceLatest(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("atom", "id")

	val, _, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), val)

	_, err = s.NextInt(db)
	require.NoError(t, err)

	val, bz, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), val)
	assert.Equal(t, EncodeSequence(1), bz)

	// Latest does not advance the counter.
	val, err = s.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), val)
}

func TestSequenceIsolation(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("atom", "id")
	b := NewSequence("atom", "other")

	_, err := a.NextInt(db)
	require.NoError(t, err)

	val, err := b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), val)
}

func TestEncodeDecodeSequence(t *testing.T) {
	assert.Equal(t, int64(0), DecodeSequence(nil))
	for _, val := range []int64{1, 255, 256, 1 << 40} {
		assert.Equal(t, val, DecodeSequence(EncodeSequence(val)))
	}
}
