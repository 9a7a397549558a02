package lock

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// Capability is the generic finalization contract every participating token
// contract exposes. The settlement orchestrator is written against this
// interface alone and never inspects the token's value representation.
//
// The data argument is forwarded opaque. The note model requires the
// pre-committed output set there, the account model ignores it.
type Capability interface {
	// SettleLock finalizes the lock, delivering its committed value to the
	// receiver. Fails if actor is not the current delegate or the lock is
	// not Active.
	SettleLock(db pet.KVStore, actor pet.Address, lockID []byte, data []byte) error

	// RollbackLock reverses the lock, returning its committed value to the
	// owner. Same authorization and state preconditions as SettleLock.
	RollbackLock(db pet.KVStore, actor pet.Address, lockID []byte, data []byte) error
}

// Registry maps token contract names to their lock capability. The
// orchestrator resolves each operation's token through this map.
type Registry map[string]Capability
