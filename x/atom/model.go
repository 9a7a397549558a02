package atom

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/orm"
)

var _ orm.Model = (*Atom)(nil)

// Validate ensures the instance can be persisted.
func (m *Atom) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.Status < StatusPending || m.Status > StatusCancelled {
		return errors.Wrapf(errors.ErrState, "invalid status %v", m.Status)
	}
	if len(m.Operations) == 0 {
		return errors.Wrap(errors.ErrEmpty, "operations")
	}
	for i, op := range m.Operations {
		if err := op.Validate(); err != nil {
			return errors.Wrapf(err, "operation %d", i)
		}
	}
	return nil
}

// Validate ensures the leg descriptor is complete for its kind.
func (m *Operation) Validate() error {
	if len(m.Token) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token")
	}
	if err := m.Approver.Validate(); err != nil {
		return errors.Wrap(err, "approver")
	}
	switch m.Kind {
	case KindLock:
		if len(m.LockID) == 0 {
			return errors.Wrap(errors.ErrEmpty, "lock id")
		}
	case KindTransfer:
		if err := m.Receiver.Validate(); err != nil {
			return errors.Wrap(err, "receiver")
		}
	default:
		return errors.Wrapf(errors.ErrInput, "invalid kind %v", m.Kind)
	}
	return nil
}

// AllApproved returns whether every operation carries an approval.
func (m *Atom) AllApproved() bool {
	for _, op := range m.Operations {
		if !op.Approved {
			return false
		}
	}
	return true
}

// Approvers returns the distinct approver addresses of all operations.
func (m *Atom) Approvers() []pet.Address {
	var res []pet.Address
	for _, op := range m.Operations {
		dup := false
		for _, a := range res {
			if a.Equals(op.Approver) {
				dup = true
				break
			}
		}
		if !dup {
			res = append(res, op.Approver)
		}
	}
	return res
}

// NewBucket returns the bucket holding all settlement instances.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("atoms", &Atom{})
}

// Condition returns the condition the instance acts under when it calls
// into token contracts as a lock delegate or custody account.
func Condition(atomID []byte) pet.Condition {
	return pet.NewCondition("atom", "seq", atomID)
}

// AtomAddr returns the instance's own address, derived from its id.
func AtomAddr(atomID []byte) pet.Address {
	return Condition(atomID).Address()
}
