package pettest

import (
	"context"
	"fmt"

	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You can
// use either Signer or Signers (or both) attributes to reference
// conditions.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when creating an authentication method for
	// a single signer.
	Signer pet.Condition

	// Signers represents an authentication of multiple signers.
	Signers []pet.Condition
}

func (a *Auth) GetConditions(pet.Context) []pet.Condition {
	// Copy so that the caller cannot modify the Signers backing array
	// through the returned slice.
	conds := make([]pet.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx pet.Context, addr pet.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using the context to store and retrieve
// permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx pet.Context, permissions ...pet.Condition) pet.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx pet.Context) []pet.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]pet.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []pet.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx pet.Context, addr pet.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
