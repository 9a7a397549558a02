package zether

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ pet.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from the genesis and save it
// in the database. Balances come pre-encrypted; the chain never sees
// plaintext amounts, not even at genesis.
func (Initializer) FromGenesis(opts pet.Options, db pet.KVStore) error {
	accounts := []struct {
		Address pet.Address `json:"address"`
		Balance []byte      `json:"balance"`
	}{}
	if err := opts.ReadOptions("zether", &accounts); err != nil {
		return err
	}
	bucket := NewAccountBucket()
	for i, a := range accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		acct := Account{Balance: a.Balance}
		if err := bucket.Put(db, a.Address, &acct); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
