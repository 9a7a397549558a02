package zether

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
	return "zether/transfer"
}

func (m *TransferMsg) Validate() error {
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := m.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if len(m.Value) == 0 {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return nil
}

func (CreateLockMsg) Path() string {
	return "zether/create_lock"
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
	if len(m.Value) == 0 {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return nil
}

func (SettleLockMsg) Path() string {
	return "zether/settle_lock"
}

func (m *SettleLockMsg) Validate() error {
	if len(m.LockID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "lock id")
	}
	return nil
}

func (RollbackLockMsg) Path() string {
	return "zether/rollback_lock"
}

func (m *RollbackLockMsg) Validate() error {
	if len(m.LockID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "lock id")
	}
	return nil
}

func (DelegateLockMsg) Path() string {
	return "zether/delegate_lock"
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
