package zether

import (
	"encoding/binary"

	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

// PlainCipher implements Cipher without any encryption: a "ciphertext" is
// the amount as 8 bytes big endian. It exists for tests and local
// development chains where confidentiality is not needed.
type PlainCipher struct{}

var _ Cipher = PlainCipher{}

// Amount turns a plaintext amount into its wire form.
func (PlainCipher) Amount(a uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, a)
	return bz
}

func (c PlainCipher) Add(a, b []byte) ([]byte, error) {
	x, err := c.decode(a)
	if err != nil {
		return nil, err
	}
	y, err := c.decode(b)
	if err != nil {
		return nil, err
	}
	return c.Amount(x + y), nil
}

func (c PlainCipher) Sub(a, b []byte) ([]byte, error) {
	x, err := c.decode(a)
	if err != nil {
		return nil, err
	}
	y, err := c.decode(b)
	if err != nil {
		return nil, err
	}
	if y > x {
		return nil, errors.Wrap(errors.ErrAmount, "insufficient balance")
	}
	return c.Amount(x - y), nil
}

func (c PlainCipher) Zero() []byte {
	return c.Amount(0)
}

func (PlainCipher) decode(bz []byte) (uint64, error) {
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "ciphertext length %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// NopVerifier accepts every transfer proof. Use only together with
// PlainCipher, where the overdraft check lives in the arithmetic itself.
type NopVerifier struct{}

var _ Verifier = NopVerifier{}

func (NopVerifier) VerifyTransfer(proof, balance, value []byte) error {
	return nil
}
