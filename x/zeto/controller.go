package zeto

import (
	"crypto/sha256"

	"github.com/gogo/protobuf/proto"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/orm"
	"github.com/kaleido-io/PET-atomic-settlements/x/lock"
)

var (
	commitmentPrefix = []byte("zeto:c:")
	nullifierPrefix  = []byte("zeto:n:")
	// present marks set membership; existence of the key is the fact
	present = []byte{1}
)

// Verifier checks the zero knowledge proof attached to a spend: that the
// nullifiers belong to notes in the commitment set and that input and
// output values balance. Proof systems are external, this interface is the
// only coupling point.
type Verifier interface {
	VerifySpend(proof []byte, nullifiers, outputs [][]byte) error
}

// Controller carries the business logic of the note model token: spending
// notes via nullifiers, creating commitments, and the lock lifecycle on top
// of it.
type Controller struct {
	locks    orm.ModelBucket
	verifier Verifier
}

var _ lock.Capability = Controller{}

// NewController returns a controller bound to the given spend proof
// verifier.
func NewController(verifier Verifier) Controller {
	return Controller{
		locks:    lock.NewBucket("zeto"),
		verifier: verifier,
	}
}

// Lock returns the lock stored under the given id, or ErrNotFound.
func (c Controller) Lock(db pet.ReadOnlyKVStore, lockID []byte) (*lock.Lock, error) {
	return lock.Load(db, c.locks, lockID)
}

// HasCommitment returns whether the commitment is part of the note set.
func (c Controller) HasCommitment(db pet.ReadOnlyKVStore, commitment []byte) (bool, error) {
	return db.Has(append(commitmentPrefix, commitment...))
}

// IsSpent returns whether the nullifier was already used.
func (c Controller) IsSpent(db pet.ReadOnlyKVStore, nullifier []byte) (bool, error) {
	return db.Has(append(nullifierPrefix, nullifier...))
}

// Transfer spends the notes behind the nullifiers and inserts the output
// commitments.
func (c Controller) Transfer(db pet.KVStore, msg *TransferMsg) error {
	if err := c.verifier.VerifySpend(msg.Proof, msg.Nullifiers, msg.Outputs); err != nil {
		return errors.Wrap(err, "spend proof")
	}
	if err := c.spend(db, msg.Nullifiers); err != nil {
		return err
	}
	return c.insert(db, msg.Outputs)
}

// CreateLock spends the notes behind the nullifiers and stores a fresh
// Active lock carrying both pre-committed output branches. No output is
// inserted yet; the committed value exists only as the lock until settle or
// rollback picks a branch.
func (c Controller) CreateLock(db pet.KVStore, msg *CreateLockMsg) (*lock.Lock, error) {
	outputs := append(append([][]byte{}, msg.SettleOutputs...), msg.RollbackOutputs...)
	if err := c.verifier.VerifySpend(msg.Proof, msg.Nullifiers, outputs); err != nil {
		return nil, errors.Wrap(err, "lock proof")
	}

	settleSpec, err := proto.Marshal(&Outputs{Commitments: msg.SettleOutputs})
	if err != nil {
		return nil, errors.Wrap(err, "settle spec")
	}
	rollbackSpec, err := proto.Marshal(&Outputs{Commitments: msg.RollbackOutputs})
	if err != nil {
		return nil, errors.Wrap(err, "rollback spec")
	}

	l := &lock.Lock{
		LockID:         msg.LockID,
		Owner:          msg.Src,
		Receiver:       msg.Receiver,
		Delegate:       msg.Delegate,
		CommittedValue: nullifierDigest(msg.Nullifiers),
		SettleSpec:     settleSpec,
		RollbackSpec:   rollbackSpec,
	}
	if err := lock.Create(db, c.locks, l); err != nil {
		return nil, err
	}
	if err := c.spend(db, msg.Nullifiers); err != nil {
		return nil, err
	}
	return l, nil
}

// SettleLock finalizes a lock, inserting the settle branch commitments.
func (c Controller) SettleLock(db pet.KVStore, actor pet.Address, lockID []byte, data []byte) error {
	l, err := lock.Settle(db, c.locks, actor, lockID)
	if err != nil {
		return err
	}
	return c.insertSpec(db, l.SettleSpec)
}

// RollbackLock reverses a lock, inserting the rollback branch commitments.
func (c Controller) RollbackLock(db pet.KVStore, actor pet.Address, lockID []byte, data []byte) error {
	l, err := lock.Rollback(db, c.locks, actor, lockID)
	if err != nil {
		return err
	}
	return c.insertSpec(db, l.RollbackSpec)
}

// Redelegate reassigns the delegate of an Active lock.
func (c Controller) Redelegate(db pet.KVStore, actor pet.Address, lockID []byte, newDelegate pet.Address) (*lock.Lock, error) {
	return lock.Redelegate(db, c.locks, actor, lockID, newDelegate)
}

func (c Controller) spend(db pet.KVStore, nullifiers [][]byte) error {
	for _, n := range nullifiers {
		key := append(nullifierPrefix, n...)
		switch spent, err := db.Has(key); {
		case err != nil:
			return err
		case spent:
			return errors.Wrapf(errors.ErrState, "nullifier %X already spent", n)
		}
		if err := db.Set(key, present); err != nil {
			return err
		}
	}
	return nil
}

func (c Controller) insert(db pet.KVStore, commitments [][]byte) error {
	for _, cm := range commitments {
		key := append(commitmentPrefix, cm...)
		switch exists, err := db.Has(key); {
		case err != nil:
			return err
		case exists:
			return errors.Wrapf(errors.ErrDuplicate, "commitment %X", cm)
		}
		if err := db.Set(key, present); err != nil {
			return err
		}
	}
	return nil
}

func (c Controller) insertSpec(db pet.KVStore, spec []byte) error {
	var outputs Outputs
	if err := proto.Unmarshal(spec, &outputs); err != nil {
		return errors.Wrap(err, "output spec")
	}
	return c.insert(db, outputs.Commitments)
}

// nullifierDigest folds the spent nullifiers into one opaque handle for the
// lock's committed value field.
func nullifierDigest(nullifiers [][]byte) []byte {
	h := sha256.New()
	for _, n := range nullifiers {
		h.Write(n)
	}
	return h.Sum(nil)
}
