/*
Package atom implements the multi-leg settlement orchestrator. An atom is a
short lived, single use instance coordinating one trade: an ordered list of
operations, each naming a token, a pre-agreed lock id and the counterparty
whose approval it needs.

Lifecycle: creation records the operations verbatim and starts Pending;
per-operation approvals flip monotonic flags and the instance advances to
Approved by itself once the last one flips; any listed approver may then
execute, settling every leg in order inside one transaction, or cancel
beforehand, rolling back each leg independently and reporting per-leg
failures as events instead of aborting.

The orchestrator never touches token value representations. KindLock legs
go through the generic lock.Capability, KindTransfer legs through a
CustodyBank holding escrowed value in the instance's own account.
*/
package atom
