package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/pettest"
	"github.com/kaleido-io/PET-atomic-settlements/store"
)

// writingHandler writes a key and then optionally fails.
type writingHandler struct {
	key, value []byte
	err        error
}

var _ pet.Handler = writingHandler{}

func (h writingHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &pet.CheckResult{}, h.err
}

func (h writingHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &pet.DeliverResult{}, h.err
}

func TestSavepointCommitsOnSuccess(t *testing.T) {
	h := pettest.Wrap(NewSavepoint().OnDeliver(), writingHandler{key: []byte("k"), value: []byte("v")})
	db := store.MemStore()

	_, err := h.Deliver(context.Background(), db, &pettest.Tx{})
	require.NoError(t, err)

	res, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), res)
}

func TestSavepointDiscardsOnError(t *testing.T) {
	fail := errors.ErrState.New("boom")
	h := pettest.Wrap(NewSavepoint().OnDeliver(), writingHandler{key: []byte("k"), value: []byte("v"), err: fail})
	db := store.MemStore()

	_, err := h.Deliver(context.Background(), db, &pettest.Tx{})
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)

	res, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSavepointTriggersOnlyWhenConfigured(t *testing.T) {
	fail := errors.ErrState.New("boom")
	// Configured for check only, deliver writes straight through even on
	// error.
	h := pettest.Wrap(NewSavepoint().OnCheck(), writingHandler{key: []byte("k"), value: []byte("v"), err: fail})
	db := store.MemStore()

	_, err := h.Check(context.Background(), db, &pettest.Tx{})
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)
	res, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, res)

	_, err = h.Deliver(context.Background(), db, &pettest.Tx{})
	assert.True(t, errors.ErrState.Is(err), "got %+v", err)
	res, err = db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), res)
}

func TestSavepointPassthroughOnPlainStore(t *testing.T) {
	h := pettest.Wrap(NewSavepoint().OnDeliver(), writingHandler{key: []byte("k"), value: []byte("v")})
	// A store that cannot be cache wrapped is used as is.
	db := store.EmptyKVStore{}

	_, err := h.Deliver(context.Background(), db, &pettest.Tx{})
	require.NoError(t, err)
}
