package atom

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

var _ pet.Msg = (*CreateMsg)(nil)
var _ pet.Msg = (*ApproveMsg)(nil)
var _ pet.Msg = (*ExecuteMsg)(nil)
var _ pet.Msg = (*CancelMsg)(nil)
var _ pet.Msg = (*AllowBalanceCheckMsg)(nil)

func (CreateMsg) Path() string {
	return "atom/create"
}

func (m *CreateMsg) Validate() error {
	if len(m.Operations) == 0 {
		return errors.Wrap(errors.ErrEmpty, "operations")
	}
	for i, op := range m.Operations {
		if op.Approved {
			return errors.Wrapf(errors.ErrInput, "operation %d pre-approved", i)
		}
		if err := op.Validate(); err != nil {
			return errors.Wrapf(err, "operation %d", i)
		}
	}
	return nil
}

func (ApproveMsg) Path() string {
	return "atom/approve"
}

func (m *ApproveMsg) Validate() error {
	if len(m.AtomID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "atom id")
	}
	return nil
}

func (ExecuteMsg) Path() string {
	return "atom/execute"
}

func (m *ExecuteMsg) Validate() error {
	if len(m.AtomID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "atom id")
	}
	return nil
}

func (CancelMsg) Path() string {
	return "atom/cancel"
}

func (m *CancelMsg) Validate() error {
	if len(m.AtomID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "atom id")
	}
	return nil
}

func (AllowBalanceCheckMsg) Path() string {
	return "atom/allow_balance_check"
}

func (m *AllowBalanceCheckMsg) Validate() error {
	if len(m.AtomID) == 0 {
		return errors.Wrap(errors.ErrEmpty, "atom id")
	}
	if len(m.Token) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token")
	}
	if err := m.Verifier.Validate(); err != nil {
		return errors.Wrap(err, "verifier")
	}
	return nil
}
