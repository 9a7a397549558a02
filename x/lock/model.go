package lock

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/orm"
)

var _ orm.Model = (*Lock)(nil)

// Validate ensures the lock is set up correctly before any write.
func (m *Lock) Validate() error {
	if len(m.LockID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "lock id")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	if err := m.Delegate.Validate(); err != nil {
		return errors.Wrap(err, "delegate")
	}
	if len(m.CommittedValue) == 0 {
		return errors.Wrap(errors.ErrEmpty, "committed value")
	}
	if m.State < StateActive || m.State > StateRolledBack {
		return errors.Wrapf(errors.ErrState, "invalid state %v", m.State)
	}
	return nil
}

// NewBucket returns a lock bucket namespaced to a single token contract.
// Every token keeps its own id space, so the same lock id can exist on two
// different tokens without conflict.
func NewBucket(token string) orm.ModelBucket {
	return orm.NewModelBucket(token+"lk", &Lock{})
}

// Create stores a fresh Active lock. A lock id can be used at most once per
// bucket; reuse is rejected and the previously stored lock is untouched.
func Create(db pet.KVStore, bucket orm.ModelBucket, l *Lock) error {
	switch exists, err := bucket.Has(db, l.LockID); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(errors.ErrDuplicate, "lock %X", l.LockID)
	}
	l.State = StateActive
	return bucket.Put(db, l.LockID, l)
}

// Load returns the lock stored under the given id.
func Load(db pet.ReadOnlyKVStore, bucket orm.ModelBucket, lockID []byte) (*Lock, error) {
	var l Lock
	if err := bucket.One(db, lockID, &l); err != nil {
		return nil, errors.Wrapf(err, "lock %X", lockID)
	}
	return &l, nil
}

// Settle transitions an Active lock to Settled. Only the current delegate
// may call this. The updated lock is returned so callers can deliver
// CommittedValue to the receiver per SettleSpec.
func Settle(db pet.KVStore, bucket orm.ModelBucket, actor pet.Address, lockID []byte) (*Lock, error) {
	return finalize(db, bucket, actor, lockID, StateSettled)
}

// Rollback transitions an Active lock to RolledBack. Only the current
// delegate may call this. The updated lock is returned so callers can return
// CommittedValue to the owner per RollbackSpec.
func Rollback(db pet.KVStore, bucket orm.ModelBucket, actor pet.Address, lockID []byte) (*Lock, error) {
	return finalize(db, bucket, actor, lockID, StateRolledBack)
}

func finalize(db pet.KVStore, bucket orm.ModelBucket, actor pet.Address, lockID []byte, next State) (*Lock, error) {
	l, err := Load(db, bucket, lockID)
	if err != nil {
		return nil, err
	}
	if l.State != StateActive {
		return nil, errors.Wrapf(errors.ErrState, "lock %X is %v", lockID, l.State)
	}
	if !actor.Equals(l.Delegate) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the delegate can finalize a lock")
	}
	l.State = next
	if err := bucket.Put(db, lockID, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Redelegate reassigns the delegate of an Active lock. This is the only
// permitted mutation after creation, so an owner can hand control to a newly
// agreed settlement instance without consuming the committed value. Both the
// owner and the current delegate are authorized.
func Redelegate(db pet.KVStore, bucket orm.ModelBucket, actor pet.Address, lockID []byte, newDelegate pet.Address) (*Lock, error) {
	l, err := Load(db, bucket, lockID)
	if err != nil {
		return nil, err
	}
	if l.State != StateActive {
		return nil, errors.Wrapf(errors.ErrState, "lock %X is %v", lockID, l.State)
	}
	if !actor.Equals(l.Delegate) && !actor.Equals(l.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the owner or delegate can redelegate")
	}
	if err := newDelegate.Validate(); err != nil {
		return nil, errors.Wrap(err, "new delegate")
	}
	l.Delegate = newDelegate
	if err := bucket.Put(db, lockID, l); err != nil {
		return nil, err
	}
	return l, nil
}
