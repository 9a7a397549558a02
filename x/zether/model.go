package zether

import (
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/orm"
)

var _ orm.Model = (*Account)(nil)

// Validate ensures the account can be persisted.
func (m *Account) Validate() error {
	if len(m.Balance) == 0 {
		return errors.Wrap(errors.ErrEmpty, "balance")
	}
	for i, v := range m.Viewers {
		if err := v.Validate(); err != nil {
			return errors.Wrapf(err, "viewer %d", i)
		}
	}
	return nil
}

// NewAccountBucket returns the bucket holding all encrypted accounts,
// keyed by address.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("zetheracc", &Account{})
}
