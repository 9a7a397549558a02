package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/store"
)

// record is a minimal model for bucket tests.
type record struct {
	Payload []byte `protobuf:"bytes,1,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (r *record) Reset()         { *r = record{} }
func (r *record) String() string { return proto.CompactTextString(r) }
func (*record) ProtoMessage()    {}

func (r *record) Validate() error {
	if len(r.Payload) == 0 {
		return errors.Wrap(errors.ErrEmpty, "payload")
	}
	return nil
}

// other is a different model type to trigger type guards.
type other struct {
	Payload []byte `protobuf:"bytes,1,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (o *other) Reset()          { *o = other{} }
func (o *other) String() string  { return proto.CompactTextString(o) }
func (*other) ProtoMessage()     {}
func (o *other) Validate() error { return nil }

func TestModelBucketPutAndOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("rec", &record{})

	require.NoError(t, b.Put(db, []byte("k1"), &record{Payload: []byte("v1")}))

	var got record
	require.NoError(t, b.One(db, []byte("k1"), &got))
	assert.Equal(t, []byte("v1"), got.Payload)

	// Overwrite is allowed at this level.
	require.NoError(t, b.Put(db, []byte("k1"), &record{Payload: []byte("v2")}))
	require.NoError(t, b.One(db, []byte("k1"), &got))
	assert.Equal(t, []byte("v2"), got.Payload)
}

func TestModelBucketMissing(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("rec", &record{})

	var got record
	err := b.One(db, []byte("nope"), &got)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	has, err := b.Has(db, []byte("nope"))
	require.NoError(t, err)
	assert.False(t, has)

	err = b.Delete(db, []byte("nope"))
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestModelBucketTypeGuards(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("rec", &record{})

	err := b.Put(db, []byte("k1"), &other{Payload: []byte("v1")})
	assert.True(t, errors.ErrType.Is(err), "got %+v", err)

	require.NoError(t, b.Put(db, []byte("k1"), &record{Payload: []byte("v1")}))
	var got other
	err = b.One(db, []byte("k1"), &got)
	assert.True(t, errors.ErrType.Is(err), "got %+v", err)
}

func TestModelBucketValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("rec", &record{})

	err := b.Put(db, []byte("k1"), &record{})
	assert.True(t, errors.ErrEmpty.Is(err), "got %+v", err)

	err = b.Put(db, nil, &record{Payload: []byte("v1")})
	assert.True(t, errors.ErrEmpty.Is(err), "got %+v", err)
}

func TestModelBucketPrefixIsolation(t *testing.T) {
	db := store.MemStore()
	b1 := NewModelBucket("one", &record{})
	b2 := NewModelBucket("two", &record{})

	require.NoError(t, b1.Put(db, []byte("k"), &record{Payload: []byte("v")}))

	var got record
	err := b2.One(db, []byte("k"), &got)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestModelBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("rec", &record{})

	require.NoError(t, b.Put(db, []byte("k1"), &record{Payload: []byte("v1")}))
	require.NoError(t, b.Delete(db, []byte("k1")))

	has, err := b.Has(db, []byte("k1"))
	require.NoError(t, err)
	assert.False(t, has)
}
