package zether

// Cipher is the homomorphic arithmetic over encrypted balances. The token
// never learns plaintext amounts, it only folds ciphertexts together.
//
// Implementations must satisfy Add(Sub(a, b), b) == a for any ciphertexts
// produced by the same keypair.
type Cipher interface {
	// Add returns the ciphertext of the sum of both encrypted amounts.
	Add(a, b []byte) ([]byte, error)

	// Sub returns the ciphertext of the difference of both encrypted
	// amounts.
	Sub(a, b []byte) ([]byte, error)

	// Zero returns the ciphertext of a zero balance.
	Zero() []byte
}

// Verifier checks the zero knowledge proof attached to a transfer: that the
// sender knows the plaintext of the moved value and that the remaining
// balance does not go negative. Proof systems are external, this interface
// is the only coupling point.
type Verifier interface {
	VerifyTransfer(proof, balance, value []byte) error
}
