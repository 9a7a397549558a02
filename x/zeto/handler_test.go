package zeto_test

import (
	"context"
	"testing"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/app"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/pettest"
	"github.com/kaleido-io/PET-atomic-settlements/pettest/assert"
	"github.com/kaleido-io/PET-atomic-settlements/store"
	"github.com/kaleido-io/PET-atomic-settlements/x"
	"github.com/kaleido-io/PET-atomic-settlements/x/lock"
	"github.com/kaleido-io/PET-atomic-settlements/x/zeto"
)

func newTestHandler() (*app.Router, *pettest.CtxAuth, zeto.Controller) {
	r := app.NewRouter()
	authenticator := &pettest.CtxAuth{Key: "auth"}
	auth := x.ChainAuth(authenticator)
	ctrl := zeto.NewController(zeto.NopVerifier{})
	zeto.RegisterRoutes(r, auth, ctrl)
	return r, authenticator, ctrl
}

func TestTransferHandler(t *testing.T) {
	anyone := pettest.NewCondition()

	r, authenticator, ctrl := newTestHandler()
	db := store.MemStore()
	ctx := authenticator.SetConditions(context.Background(), anyone)

	msg := &zeto.TransferMsg{
		Nullifiers: [][]byte{[]byte("n1"), []byte("n2")},
		Outputs:    [][]byte{[]byte("c1"), []byte("c2")},
	}
	_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: msg})
	assert.Nil(t, err)

	for _, n := range msg.Nullifiers {
		spent, err := ctrl.IsSpent(db, n)
		assert.Nil(t, err)
		assert.Equal(t, true, spent)
	}
	for _, c := range msg.Outputs {
		exists, err := ctrl.HasCommitment(db, c)
		assert.Nil(t, err)
		assert.Equal(t, true, exists)
	}

	// Spending the same nullifiers again must fail.
	again := &zeto.TransferMsg{
		Nullifiers: [][]byte{[]byte("n1")},
		Outputs:    [][]byte{[]byte("c3")},
	}
	_, err = r.Deliver(ctx, db, &pettest.Tx{Msg: again})
	assert.IsErr(t, errors.ErrState, err)

	// As must recreating an existing commitment.
	dup := &zeto.TransferMsg{
		Nullifiers: [][]byte{[]byte("n3")},
		Outputs:    [][]byte{[]byte("c1")},
	}
	_, err = r.Deliver(ctx, db, &pettest.Tx{Msg: dup})
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestCreateLockHandler(t *testing.T) {
	alice := pettest.NewCondition()
	bob := pettest.NewCondition()
	orchestrator := pettest.NewCondition()
	pete := pettest.NewCondition()

	lockMsg := func() *zeto.CreateLockMsg {
		return &zeto.CreateLockMsg{
			LockID:          []byte("l1"),
			Src:             alice.Address(),
			Receiver:        bob.Address(),
			Delegate:        orchestrator.Address(),
			Nullifiers:      [][]byte{[]byte("n1")},
			SettleOutputs:   [][]byte{[]byte("s1")},
			RollbackOutputs: [][]byte{[]byte("r1")},
		}
	}

	t.Run("happy path", func(t *testing.T) {
		r, authenticator, ctrl := newTestHandler()
		db := store.MemStore()
		ctx := authenticator.SetConditions(context.Background(), alice)

		res, err := r.Deliver(ctx, db, &pettest.Tx{Msg: lockMsg()})
		assert.Nil(t, err)
		assert.Equal(t, []byte("l1"), res.Data)
		if len(res.Tags) == 0 {
			t.Fatal("expected a lock creation event")
		}

		// Nullifiers are consumed at creation, outputs of neither branch
		// exist yet.
		spent, err := ctrl.IsSpent(db, []byte("n1"))
		assert.Nil(t, err)
		assert.Equal(t, true, spent)
		exists, err := ctrl.HasCommitment(db, []byte("s1"))
		assert.Nil(t, err)
		assert.Equal(t, false, exists)

		l, err := ctrl.Lock(db, []byte("l1"))
		assert.Nil(t, err)
		assert.Equal(t, lock.StateActive, l.State)
	})

	t.Run("owner must sign", func(t *testing.T) {
		r, authenticator, _ := newTestHandler()
		db := store.MemStore()
		ctx := authenticator.SetConditions(context.Background(), pete)

		_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: lockMsg()})
		assert.IsErr(t, errors.ErrUnauthorized, err)
	})

	t.Run("lock id reuse is rejected", func(t *testing.T) {
		r, authenticator, ctrl := newTestHandler()
		db := store.MemStore()
		ctx := authenticator.SetConditions(context.Background(), alice)

		_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: lockMsg()})
		assert.Nil(t, err)

		reuse := lockMsg()
		reuse.Nullifiers = [][]byte{[]byte("n2")}
		reuse.Receiver = pete.Address()
		_, err = r.Deliver(ctx, db, &pettest.Tx{Msg: reuse})
		assert.IsErr(t, errors.ErrDuplicate, err)

		stored, err := ctrl.Lock(db, []byte("l1"))
		assert.Nil(t, err)
		assert.Equal(t, bob.Address(), stored.Receiver)
	})

	t.Run("spent nullifier is rejected", func(t *testing.T) {
		r, authenticator, _ := newTestHandler()
		db := store.MemStore()
		ctx := authenticator.SetConditions(context.Background(), alice)

		spend := &zeto.TransferMsg{
			Nullifiers: [][]byte{[]byte("n1")},
			Outputs:    [][]byte{[]byte("c1")},
		}
		_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: spend})
		assert.Nil(t, err)

		_, err = r.Deliver(ctx, db, &pettest.Tx{Msg: lockMsg()})
		assert.IsErr(t, errors.ErrState, err)
	})
}

func TestFinalizeLockHandlers(t *testing.T) {
	alice := pettest.NewCondition()
	bob := pettest.NewCondition()
	orchestrator := pettest.NewCondition()

	setup := func(t *testing.T) (*app.Router, *pettest.CtxAuth, zeto.Controller, pet.CacheableKVStore) {
		r, authenticator, ctrl := newTestHandler()
		db := store.MemStore()
		ctx := authenticator.SetConditions(context.Background(), alice)
		msg := &zeto.CreateLockMsg{
			LockID:          []byte("l1"),
			Src:             alice.Address(),
			Receiver:        bob.Address(),
			Delegate:        orchestrator.Address(),
			Nullifiers:      [][]byte{[]byte("n1")},
			SettleOutputs:   [][]byte{[]byte("s1")},
			RollbackOutputs: [][]byte{[]byte("r1")},
		}
		_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: msg})
		assert.Nil(t, err)
		return r, authenticator, ctrl, db
	}

	t.Run("settle inserts the settle branch", func(t *testing.T) {
		r, authenticator, ctrl, db := setup(t)
		ctx := authenticator.SetConditions(context.Background(), orchestrator)
		_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: &zeto.SettleLockMsg{LockID: []byte("l1")}})
		assert.Nil(t, err)

		settled, err := ctrl.HasCommitment(db, []byte("s1"))
		assert.Nil(t, err)
		assert.Equal(t, true, settled)
		rolled, err := ctrl.HasCommitment(db, []byte("r1"))
		assert.Nil(t, err)
		assert.Equal(t, false, rolled)

		l, err := ctrl.Lock(db, []byte("l1"))
		assert.Nil(t, err)
		assert.Equal(t, lock.StateSettled, l.State)
	})

	t.Run("rollback inserts the rollback branch", func(t *testing.T) {
		r, authenticator, ctrl, db := setup(t)
		ctx := authenticator.SetConditions(context.Background(), orchestrator)
		_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: &zeto.RollbackLockMsg{LockID: []byte("l1")}})
		assert.Nil(t, err)

		rolled, err := ctrl.HasCommitment(db, []byte("r1"))
		assert.Nil(t, err)
		assert.Equal(t, true, rolled)
		settled, err := ctrl.HasCommitment(db, []byte("s1"))
		assert.Nil(t, err)
		assert.Equal(t, false, settled)

		l, err := ctrl.Lock(db, []byte("l1"))
		assert.Nil(t, err)
		assert.Equal(t, lock.StateRolledBack, l.State)
	})

	t.Run("only the delegate can finalize", func(t *testing.T) {
		r, authenticator, ctrl, db := setup(t)
		ctx := authenticator.SetConditions(context.Background(), alice)
		_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: &zeto.SettleLockMsg{LockID: []byte("l1")}})
		assert.IsErr(t, errors.ErrUnauthorized, err)

		l, err := ctrl.Lock(db, []byte("l1"))
		assert.Nil(t, err)
		assert.Equal(t, lock.StateActive, l.State)
	})

	t.Run("finalize is one time", func(t *testing.T) {
		r, authenticator, _, db := setup(t)
		ctx := authenticator.SetConditions(context.Background(), orchestrator)
		_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: &zeto.SettleLockMsg{LockID: []byte("l1")}})
		assert.Nil(t, err)
		_, err = r.Deliver(ctx, db, &pettest.Tx{Msg: &zeto.RollbackLockMsg{LockID: []byte("l1")}})
		assert.IsErr(t, errors.ErrState, err)
	})
}

func TestDelegateLockHandler(t *testing.T) {
	alice := pettest.NewCondition()
	bob := pettest.NewCondition()
	orchestrator := pettest.NewCondition()
	next := pettest.NewCondition()

	r, authenticator, ctrl := newTestHandler()
	db := store.MemStore()

	ctx := authenticator.SetConditions(context.Background(), alice)
	create := &zeto.CreateLockMsg{
		LockID:          []byte("l1"),
		Src:             alice.Address(),
		Receiver:        bob.Address(),
		Delegate:        orchestrator.Address(),
		Nullifiers:      [][]byte{[]byte("n1")},
		SettleOutputs:   [][]byte{[]byte("s1")},
		RollbackOutputs: [][]byte{[]byte("r1")},
	}
	_, err := r.Deliver(ctx, db, &pettest.Tx{Msg: create})
	assert.Nil(t, err)

	before, err := ctrl.Lock(db, []byte("l1"))
	assert.Nil(t, err)

	redelegate := &zeto.DelegateLockMsg{LockID: []byte("l1"), NewDelegate: next.Address()}
	_, err = r.Deliver(ctx, db, &pettest.Tx{Msg: redelegate})
	assert.Nil(t, err)

	after, err := ctrl.Lock(db, []byte("l1"))
	assert.Nil(t, err)
	assert.Equal(t, next.Address(), after.Delegate)
	assert.Equal(t, before.SettleSpec, after.SettleSpec)
	assert.Equal(t, before.RollbackSpec, after.RollbackSpec)
	assert.Equal(t, before.CommittedValue, after.CommittedValue)
}
