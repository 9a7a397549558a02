package pettest

import (
	"crypto/rand"
	"encoding/binary"

	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// NewCondition returns a random, unique condition, standing in for a signer
// identity the same way a public key condition would.
func NewCondition() pet.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return pet.NewCondition("sigs", "ed25519", data)
}

// SequenceID returns an ID as generated by the n-th call to an orm.Sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// Wrap wraps the handler with one decorator and returns it as a single
// handler. Minimal version of a decorator chain for test cases.
func Wrap(d pet.Decorator, h pet.Handler) pet.Handler {
	return wrappedHandler{d: d, h: h}
}

type wrappedHandler struct {
	d pet.Decorator
	h pet.Handler
}

var _ pet.Handler = wrappedHandler{}

func (w wrappedHandler) Check(ctx pet.Context, store pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	return w.d.Check(ctx, store, tx, w.h)
}

func (w wrappedHandler) Deliver(ctx pet.Context, store pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	return w.d.Deliver(ctx, store, tx, w.h)
}
