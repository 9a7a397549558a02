package atom

import (
	"github.com/gogo/protobuf/proto"

	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// Status is the state machine of a settlement instance.
type Status int32

const (
	StatusInvalid Status = 0
	// StatusPending means operations are recorded but not all approved.
	StatusPending Status = 1
	// StatusApproved is reached automatically the instant the last
	// operation is approved. There is no explicit transition call.
	StatusApproved Status = 2
	// StatusExecuted is terminal, reached only from Approved via execute.
	StatusExecuted Status = 3
	// StatusCancelled is terminal, reached from Pending or Approved via
	// cancel, never from Executed.
	StatusCancelled Status = 4
)

var statusName = map[int32]string{
	0: "INVALID",
	1: "PENDING",
	2: "APPROVED",
	3: "EXECUTED",
	4: "CANCELLED",
}

var statusValue = map[string]int32{
	"INVALID":   0,
	"PENDING":   1,
	"APPROVED":  2,
	"EXECUTED":  3,
	"CANCELLED": 4,
}

func (s Status) String() string {
	return proto.EnumName(statusName, int32(s))
}

// Kind tells how a leg commits its value.
type Kind int32

const (
	KindInvalid Kind = 0
	// KindLock is a leg backed by a native lock on the token contract.
	KindLock Kind = 1
	// KindTransfer is the escrowed variant for tokens without a lock
	// primitive: the value sits in the instance's own custody account and
	// is forwarded to the receiver at execution. There is no rollback path
	// for this kind.
	KindTransfer Kind = 2
)

var kindName = map[int32]string{
	0: "INVALID",
	1: "LOCK",
	2: "TRANSFER",
}

var kindValue = map[string]int32{
	"INVALID":  0,
	"LOCK":     1,
	"TRANSFER": 2,
}

func (k Kind) String() string {
	return proto.EnumName(kindName, int32(k))
}

// Operation is one leg of a trade. Recorded verbatim at instance creation
// and never removed; only the Approved flag flips, once.
type Operation struct {
	Kind Kind `protobuf:"varint,1,opt,name=kind,proto3,enum=atom.Kind" json:"kind,omitempty"`
	// Token names the lock capability or custody bank this leg runs on.
	Token string `protobuf:"bytes,2,opt,name=token,proto3" json:"token,omitempty"`
	// LockID is the pre-agreed lock identifier for KindLock legs. It is
	// fixed here before the lock exists on the token side, which lets the
	// counterparty create its lock afterwards naming this instance as
	// delegate.
	LockID   []byte      `protobuf:"bytes,3,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	Approver pet.Address `protobuf:"bytes,4,opt,name=approver,proto3" json:"approver,omitempty"`
	Approved bool        `protobuf:"varint,5,opt,name=approved,proto3" json:"approved,omitempty"`
	// Receiver is where a KindTransfer leg's custodied value goes at
	// execution.
	Receiver pet.Address `protobuf:"bytes,6,opt,name=receiver,proto3" json:"receiver,omitempty"`
	// Data is forwarded opaque to the token's settle and rollback calls.
	Data []byte `protobuf:"bytes,7,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *Operation) Reset()         { *m = Operation{} }
func (m *Operation) String() string { return proto.CompactTextString(m) }
func (*Operation) ProtoMessage()    {}

// Atom is a single-use settlement instance: one trade, one lifetime.
type Atom struct {
	Owner      pet.Address  `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Status     Status       `protobuf:"varint,2,opt,name=status,proto3,enum=atom.Status" json:"status,omitempty"`
	Operations []*Operation `protobuf:"bytes,3,rep,name=operations,proto3" json:"operations,omitempty"`
}

func (m *Atom) Reset()         { *m = Atom{} }
func (m *Atom) String() string { return proto.CompactTextString(m) }
func (*Atom) ProtoMessage()    {}

// CreateMsg deploys and initializes a settlement instance in one step, so
// there is never a window in which an uninitialized instance could be
// claimed with forged operations.
type CreateMsg struct {
	Operations []*Operation `protobuf:"bytes,1,rep,name=operations,proto3" json:"operations,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

// ApproveMsg marks one operation as approved by its designated approver.
type ApproveMsg struct {
	AtomID []byte `protobuf:"bytes,1,opt,name=atom_id,json=atomId,proto3" json:"atom_id,omitempty"`
	Index  uint32 `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

// ExecuteMsg settles every leg of an approved instance.
type ExecuteMsg struct {
	AtomID []byte `protobuf:"bytes,1,opt,name=atom_id,json=atomId,proto3" json:"atom_id,omitempty"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

// CancelMsg aborts an instance that was not executed yet, attempting a
// rollback of every leg independently.
type CancelMsg struct {
	AtomID []byte `protobuf:"bytes,1,opt,name=atom_id,json=atomId,proto3" json:"atom_id,omitempty"`
}

func (m *CancelMsg) Reset()         { *m = CancelMsg{} }
func (m *CancelMsg) String() string { return proto.CompactTextString(m) }
func (*CancelMsg) ProtoMessage()    {}

// AllowBalanceCheckMsg grants a verifier visibility into the instance's
// custody balance on the named token, so a counterparty can audit an
// escrowed transfer before approving.
type AllowBalanceCheckMsg struct {
	AtomID   []byte      `protobuf:"bytes,1,opt,name=atom_id,json=atomId,proto3" json:"atom_id,omitempty"`
	Token    string      `protobuf:"bytes,2,opt,name=token,proto3" json:"token,omitempty"`
	Verifier pet.Address `protobuf:"bytes,3,opt,name=verifier,proto3" json:"verifier,omitempty"`
}

func (m *AllowBalanceCheckMsg) Reset()         { *m = AllowBalanceCheckMsg{} }
func (m *AllowBalanceCheckMsg) String() string { return proto.CompactTextString(m) }
func (*AllowBalanceCheckMsg) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("atom.Status", statusName, statusValue)
	proto.RegisterEnum("atom.Kind", kindName, kindValue)
	proto.RegisterType((*Operation)(nil), "atom.Operation")
	proto.RegisterType((*Atom)(nil), "atom.Atom")
	proto.RegisterType((*CreateMsg)(nil), "atom.CreateMsg")
	proto.RegisterType((*ApproveMsg)(nil), "atom.ApproveMsg")
	proto.RegisterType((*ExecuteMsg)(nil), "atom.ExecuteMsg")
	proto.RegisterType((*CancelMsg)(nil), "atom.CancelMsg")
	proto.RegisterType((*AllowBalanceCheckMsg)(nil), "atom.AllowBalanceCheckMsg")
}
