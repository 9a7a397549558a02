package zether

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/orm"
	"github.com/kaleido-io/PET-atomic-settlements/x/lock"
)

// Controller carries the business logic of the encrypted account token:
// ciphertext balance movement and the lock lifecycle on top of it. Handlers
// in this package and the settlement orchestrator both drive it.
type Controller struct {
	accounts orm.ModelBucket
	locks    orm.ModelBucket
	cipher   Cipher
	verifier Verifier
}

var _ lock.Capability = Controller{}

// NewController returns a controller bound to the given cipher and transfer
// proof verifier.
func NewController(cipher Cipher, verifier Verifier) Controller {
	return Controller{
		accounts: NewAccountBucket(),
		locks:    lock.NewBucket("zether"),
		cipher:   cipher,
		verifier: verifier,
	}
}

// Account returns the account stored under the given address, or
// ErrNotFound.
func (c Controller) Account(db pet.ReadOnlyKVStore, addr pet.Address) (*Account, error) {
	var acct Account
	if err := c.accounts.One(db, addr, &acct); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acct, nil
}

// Lock returns the lock stored under the given id, or ErrNotFound.
func (c Controller) Lock(db pet.ReadOnlyKVStore, lockID []byte) (*lock.Lock, error) {
	return lock.Load(db, c.locks, lockID)
}

// Move transfers an encrypted value between two accounts after the proof
// passed verification against the sender's current balance.
func (c Controller) Move(db pet.KVStore, src, dest pet.Address, value, proof []byte) error {
	sender, err := c.Account(db, src)
	if err != nil {
		return err
	}
	if err := c.verifier.VerifyTransfer(proof, sender.Balance, value); err != nil {
		return errors.Wrap(err, "transfer proof")
	}
	if err := c.debit(db, src, sender, value); err != nil {
		return err
	}
	return c.credit(db, dest, value)
}

// MoveAll forwards the full balance of src to dest, leaving src at zero.
// A missing src account means there is nothing to move and is not an error.
func (c Controller) MoveAll(db pet.KVStore, src, dest pet.Address) error {
	sender, err := c.Account(db, src)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return err
	}
	balance := sender.Balance
	sender.Balance = c.cipher.Zero()
	if err := c.accounts.Put(db, src, sender); err != nil {
		return err
	}
	return c.credit(db, dest, balance)
}

// AllowView grants the verifier decryption visibility into the account's
// balance. Granting twice is a noop.
func (c Controller) AllowView(db pet.KVStore, account, verifier pet.Address) error {
	acct, err := c.Account(db, account)
	switch {
	case errors.ErrNotFound.Is(err):
		acct = &Account{Balance: c.cipher.Zero()}
	case err != nil:
		return err
	}
	for _, v := range acct.Viewers {
		if v.Equals(verifier) {
			return nil
		}
	}
	acct.Viewers = append(acct.Viewers, verifier)
	return c.accounts.Put(db, account, acct)
}

// CreateLock debits the owner's balance by the committed value and stores a
// fresh Active lock. The proof is verified against the owner's balance the
// same way a transfer proof is.
func (c Controller) CreateLock(db pet.KVStore, msg *CreateLockMsg) (*lock.Lock, error) {
	owner, err := c.Account(db, msg.Src)
	if err != nil {
		return nil, err
	}
	if err := c.verifier.VerifyTransfer(msg.Proof, owner.Balance, msg.Value); err != nil {
		return nil, errors.Wrap(err, "lock proof")
	}

	l := &lock.Lock{
		LockID:         msg.LockID,
		Owner:          msg.Src,
		Receiver:       msg.Receiver,
		Delegate:       msg.Delegate,
		CommittedValue: msg.Value,
	}
	if err := lock.Create(db, c.locks, l); err != nil {
		return nil, err
	}
	if err := c.debit(db, msg.Src, owner, msg.Value); err != nil {
		return nil, err
	}
	return l, nil
}

// SettleLock finalizes a lock, crediting the full committed value to the
// receiver.
func (c Controller) SettleLock(db pet.KVStore, actor pet.Address, lockID []byte, data []byte) error {
	l, err := lock.Settle(db, c.locks, actor, lockID)
	if err != nil {
		return err
	}
	return c.credit(db, l.Receiver, l.CommittedValue)
}

// RollbackLock reverses a lock, crediting the full committed value back to
// the owner.
func (c Controller) RollbackLock(db pet.KVStore, actor pet.Address, lockID []byte, data []byte) error {
	l, err := lock.Rollback(db, c.locks, actor, lockID)
	if err != nil {
		return err
	}
	return c.credit(db, l.Owner, l.CommittedValue)
}

// Redelegate reassigns the delegate of an Active lock.
func (c Controller) Redelegate(db pet.KVStore, actor pet.Address, lockID []byte, newDelegate pet.Address) (*lock.Lock, error) {
	return lock.Redelegate(db, c.locks, actor, lockID, newDelegate)
}

func (c Controller) debit(db pet.KVStore, addr pet.Address, acct *Account, value []byte) error {
	rest, err := c.cipher.Sub(acct.Balance, value)
	if err != nil {
		return errors.Wrap(err, "debit")
	}
	acct.Balance = rest
	return c.accounts.Put(db, addr, acct)
}

func (c Controller) credit(db pet.KVStore, addr pet.Address, value []byte) error {
	acct, err := c.Account(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		acct = &Account{Balance: c.cipher.Zero()}
	case err != nil:
		return err
	}
	sum, err := c.cipher.Add(acct.Balance, value)
	if err != nil {
		return errors.Wrap(err, "credit")
	}
	acct.Balance = sum
	return c.accounts.Put(db, addr, acct)
}
