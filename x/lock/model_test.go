package lock

import (
	"testing"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/orm"
	"github.com/kaleido-io/PET-atomic-settlements/pettest"
	"github.com/kaleido-io/PET-atomic-settlements/pettest/assert"
	"github.com/kaleido-io/PET-atomic-settlements/store"
)

func TestLockValidate(t *testing.T) {
	owner := pettest.NewCondition().Address()
	receiver := pettest.NewCondition().Address()
	delegate := pettest.NewCondition().Address()

	cases := map[string]struct {
		lock    Lock
		wantErr *errors.Error
	}{
		"valid lock": {
			lock: Lock{
				LockID:         []byte("l1"),
				Owner:          owner,
				Receiver:       receiver,
				Delegate:       delegate,
				CommittedValue: []byte("ciphertext"),
				State:          StateActive,
			},
		},
		"missing lock id": {
			lock: Lock{
				Owner:          owner,
				Receiver:       receiver,
				Delegate:       delegate,
				CommittedValue: []byte("ciphertext"),
				State:          StateActive,
			},
			wantErr: errors.ErrEmpty,
		},
		"missing committed value": {
			lock: Lock{
				LockID:   []byte("l1"),
				Owner:    owner,
				Receiver: receiver,
				Delegate: delegate,
				State:    StateActive,
			},
			wantErr: errors.ErrEmpty,
		},
		"invalid owner address": {
			lock: Lock{
				LockID:         []byte("l1"),
				Owner:          pet.Address("too short"),
				Receiver:       receiver,
				Delegate:       delegate,
				CommittedValue: []byte("ciphertext"),
				State:          StateActive,
			},
			wantErr: errors.ErrInput,
		},
		"state not set": {
			lock: Lock{
				LockID:         []byte("l1"),
				Owner:          owner,
				Receiver:       receiver,
				Delegate:       delegate,
				CommittedValue: []byte("ciphertext"),
			},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.lock.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
		})
	}
}

func TestCreateRejectsReusedID(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket("demo")

	first := fixture()
	assert.Nil(t, Create(db, bucket, first))

	second := fixture()
	second.Owner = pettest.NewCondition().Address()
	err := Create(db, bucket, second)
	assert.IsErr(t, errors.ErrDuplicate, err)

	// The stored lock must be the first one, untouched.
	stored, err := Load(db, bucket, first.LockID)
	assert.Nil(t, err)
	assert.Equal(t, first.Owner, stored.Owner)
}

func TestFinalizeAuthorization(t *testing.T) {
	delegate := pettest.NewCondition().Address()
	stranger := pettest.NewCondition().Address()

	cases := map[string]struct {
		actor    pet.Address
		state    State
		finalize func(db pet.KVStore, bucket orm.ModelBucket, actor pet.Address, lockID []byte) (*Lock, error)
		wantErr  *errors.Error
		wantEnd  State
	}{
		"delegate settles": {
			actor:    delegate,
			state:    StateActive,
			finalize: settleFn,
			wantEnd:  StateSettled,
		},
		"delegate rolls back": {
			actor:    delegate,
			state:    StateActive,
			finalize: rollbackFn,
			wantEnd:  StateRolledBack,
		},
		"stranger cannot settle": {
			actor:    stranger,
			state:    StateActive,
			finalize: settleFn,
			wantErr:  errors.ErrUnauthorized,
		},
		"owner cannot settle": {
			// finalization stays delegate-only, unlike redelegation
			actor:    nil,
			state:    StateActive,
			finalize: settleFn,
			wantErr:  errors.ErrUnauthorized,
		},
		"settled lock cannot settle again": {
			actor:    delegate,
			state:    StateSettled,
			finalize: settleFn,
			wantErr:  errors.ErrState,
		},
		"rolled back lock cannot settle": {
			actor:    delegate,
			state:    StateRolledBack,
			finalize: settleFn,
			wantErr:  errors.ErrState,
		},
		"settled lock cannot roll back": {
			actor:    delegate,
			state:    StateSettled,
			finalize: rollbackFn,
			wantErr:  errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			bucket := NewBucket("demo")

			l := fixture()
			l.Delegate = delegate
			l.State = tc.state
			assert.Nil(t, bucket.Put(db, l.LockID, l))

			actor := tc.actor
			if actor == nil {
				actor = l.Owner
			}
			got, err := tc.finalize(db, bucket, actor, l.LockID)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				// failed finalization must not change state
				stored, err := Load(db, bucket, l.LockID)
				assert.Nil(t, err)
				assert.Equal(t, tc.state, stored.State)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantEnd, got.State)
		})
	}
}

func TestFinalizeMissingLock(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket("demo")
	_, err := Settle(db, bucket, pettest.NewCondition().Address(), []byte("no-such"))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRedelegate(t *testing.T) {
	owner := pettest.NewCondition().Address()
	delegate := pettest.NewCondition().Address()
	next := pettest.NewCondition().Address()
	stranger := pettest.NewCondition().Address()

	cases := map[string]struct {
		actor   pet.Address
		state   State
		wantErr *errors.Error
	}{
		"delegate can redelegate":    {actor: delegate, state: StateActive},
		"owner can redelegate":       {actor: owner, state: StateActive},
		"stranger cannot":            {actor: stranger, state: StateActive, wantErr: errors.ErrUnauthorized},
		"settled lock is immutable":  {actor: delegate, state: StateSettled, wantErr: errors.ErrState},
		"rolled back lock immutable": {actor: owner, state: StateRolledBack, wantErr: errors.ErrState},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			bucket := NewBucket("demo")

			l := fixture()
			l.Owner = owner
			l.Delegate = delegate
			l.State = tc.state
			assert.Nil(t, bucket.Put(db, l.LockID, l))

			got, err := Redelegate(db, bucket, tc.actor, l.LockID, next)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			// only the delegate changed
			assert.Equal(t, next, got.Delegate)
			assert.Equal(t, l.LockID, got.LockID)
			assert.Equal(t, l.Owner, got.Owner)
			assert.Equal(t, l.Receiver, got.Receiver)
			assert.Equal(t, l.CommittedValue, got.CommittedValue)
			assert.Equal(t, l.SettleSpec, got.SettleSpec)
			assert.Equal(t, l.RollbackSpec, got.RollbackSpec)
			assert.Equal(t, StateActive, got.State)
		})
	}
}

func fixture() *Lock {
	return &Lock{
		LockID:         []byte("l1"),
		Owner:          pettest.NewCondition().Address(),
		Receiver:       pettest.NewCondition().Address(),
		Delegate:       pettest.NewCondition().Address(),
		CommittedValue: []byte("ciphertext"),
		SettleSpec:     []byte("settle spec"),
		RollbackSpec:   []byte("rollback spec"),
		State:          StateActive,
	}
}

var (
	settleFn   = Settle
	rollbackFn = Rollback
)
