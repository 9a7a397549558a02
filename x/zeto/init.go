package zeto

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ pet.Initializer = (*Initializer)(nil)

// FromGenesis seeds the initial note commitment set. Note contents stay
// off-chain; the genesis carries only the commitment hashes.
func (Initializer) FromGenesis(opts pet.Options, db pet.KVStore) error {
	var commitments [][]byte
	if err := opts.ReadOptions("zeto", &commitments); err != nil {
		return err
	}
	for i, cm := range commitments {
		if len(cm) == 0 {
			return errors.Wrapf(errors.ErrEmpty, "commitment %d", i)
		}
		if err := db.Set(append(commitmentPrefix, cm...), present); err != nil {
			return err
		}
	}
	return nil
}
