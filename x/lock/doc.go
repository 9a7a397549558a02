/*
Package lock holds the shared one-time lock model that every participating
token contract reuses for atomic settlements.

A lock freezes a committed value so that only its delegate can move it, once,
to either the receiver (settle) or back to the owner (rollback). All fields
except the delegate are immutable after creation and the lock record itself
is never deleted, so settled and rolled back locks remain as audit records.

Token packages embed this model in their own bucket namespace and implement
the Capability interface on top of it, adding their value-moving semantics
(ciphertext balance arithmetic or note commitment insertion).
*/
package lock
