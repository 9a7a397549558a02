/*
Package zeto implements the note model confidential token: value lives in
disjoint notes represented on chain only by their commitment hashes.
Spending reveals a nullifier per consumed note and inserts fresh output
commitments, with a zero knowledge proof tying the two sets together.

Locks consume notes like a transfer would, but instead of inserting outputs
immediately they freeze two pre-committed output branches: the settle branch
paying the receiver and the rollback branch returning value to the owner.
Settle or rollback later inserts exactly one branch. Because both branches
are fixed and published at creation time, the counterparty can recompute the
expected output hashes and verify them before approving a trade.
*/
package zeto
