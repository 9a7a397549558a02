package zeto

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

var _ pet.Msg = (*TransferMsg)(nil)
var _ pet.Msg = (*CreateLockMsg)(nil)
var _ pet.Msg = (*SettleLockMsg)(nil)
var _ pet.Msg = (*RollbackLockMsg)(nil)
var _ pet.Msg = (*DelegateLockMsg)(nil)

func (TransferMsg) Path() string {
	return "zeto/transfer"
}

func (m *TransferMsg) Validate() error {
	if len(m.Nullifiers) == 0 {
		return errors.Wrap(errors.ErrEmpty, "nullifiers")
	}
	if len(m.Outputs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "outputs")
	}
	return validateDigests(m.Nullifiers, m.Outputs)
}

func (CreateLockMsg) Path() string {
	return "zeto/create_lock"
}

func (m *CreateLockMsg) Validate() error {
	if len(m.LockID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "lock id")
	}
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := m.Receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}
	if err := m.Delegate.Validate(); err != nil {
		return errors.Wrap(err, "delegate")
	}
	if len(m.Nullifiers) == 0 {
		return errors.Wrap(errors.ErrEmpty, "nullifiers")
	}
	if len(m.SettleOutputs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "settle outputs")
	}
	if len(m.RollbackOutputs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "rollback outputs")
	}
	return validateDigests(m.Nullifiers, m.SettleOutputs, m.RollbackOutputs)
}

func (SettleLockMsg) Path() string {
	return "zeto/settle_lock"
}

func (m *SettleLockMsg) Validate() error {
	if len(m.LockID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "lock id")
	}
	return nil
}

func (RollbackLockMsg) Path() string {
	return "zeto/rollback_lock"
}

func (m *RollbackLockMsg) Validate() error {
	if len(m.LockID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "lock id")
	}
	return nil
}

func (DelegateLockMsg) Path() string {
	return "zeto/delegate_lock"
}

func (m *DelegateLockMsg) Validate() error {
	if len(m.LockID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "lock id")
	}
	if err := m.NewDelegate.Validate(); err != nil {
		return errors.Wrap(err, "new delegate")
	}
	return nil
}

func validateDigests(groups ...[][]byte) error {
	for _, group := range groups {
		for _, d := range group {
			if len(d) == 0 {
				return errors.Wrap(errors.ErrEmpty, "digest")
			}
		}
	}
	return nil
}
