package zeto

// NopVerifier accepts every spend proof. It exists for tests and local
// development chains; the nullifier double-spend check still applies.
type NopVerifier struct{}

var _ Verifier = NopVerifier{}

func (NopVerifier) VerifySpend(proof []byte, nullifiers, outputs [][]byte) error {
	return nil
}
