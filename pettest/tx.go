package pettest

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// Tx represents a transaction carrying a single message to be processed.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg pet.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ pet.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (pet.Msg, error) {
	return tx.Msg, tx.Err
}
