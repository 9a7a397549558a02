package x

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// one for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled.
	GetConditions(pet.Context) []pet.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(pet.Context, pet.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators.
func (m MultiAuth) GetConditions(ctx pet.Context) []pet.Condition {
	var res []pet.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx pet.Context, addr pet.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx pet.Context, auth Authenticator) []pet.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]pet.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx pet.Context, auth Authenticator) pet.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are also in the
// context.
func HasAllAddresses(ctx pet.Context, auth Authenticator, required []pet.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasAnyAddress returns true if at least one element in required is also in
// the context. Useful for "any listed approver may call" checks.
func HasAnyAddress(ctx pet.Context, auth Authenticator, required []pet.Address) bool {
	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			return true
		}
	}
	return false
}
