package zeto

import (
	"github.com/gogo/protobuf/proto"

	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// Outputs is a pre-committed set of note commitments. Marshalled into the
// lock's settle and rollback specifications so the exact output notes of
// both branches are frozen at lock creation time.
type Outputs struct {
	Commitments [][]byte `protobuf:"bytes,1,rep,name=commitments,proto3" json:"commitments,omitempty"`
}

func (m *Outputs) Reset()         { *m = Outputs{} }
func (m *Outputs) String() string { return proto.CompactTextString(m) }
func (*Outputs) ProtoMessage()    {}

// TransferMsg spends the notes behind the given nullifiers and creates the
// output commitments. The proof demonstrates value conservation without
// revealing amounts.
type TransferMsg struct {
	Nullifiers [][]byte `protobuf:"bytes,1,rep,name=nullifiers,proto3" json:"nullifiers,omitempty"`
	Outputs    [][]byte `protobuf:"bytes,2,rep,name=outputs,proto3" json:"outputs,omitempty"`
	Proof      []byte   `protobuf:"bytes,3,opt,name=proof,proto3" json:"proof,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

// CreateLockMsg consumes the notes behind the given nullifiers and freezes
// their value under a new lock. Both possible futures are committed up
// front: settlement inserts SettleOutputs, rollback inserts RollbackOutputs.
type CreateLockMsg struct {
	LockID          []byte      `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	Src             pet.Address `protobuf:"bytes,2,opt,name=src,proto3" json:"src,omitempty"`
	Receiver        pet.Address `protobuf:"bytes,3,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Delegate        pet.Address `protobuf:"bytes,4,opt,name=delegate,proto3" json:"delegate,omitempty"`
	Nullifiers      [][]byte    `protobuf:"bytes,5,rep,name=nullifiers,proto3" json:"nullifiers,omitempty"`
	SettleOutputs   [][]byte    `protobuf:"bytes,6,rep,name=settle_outputs,json=settleOutputs,proto3" json:"settle_outputs,omitempty"`
	RollbackOutputs [][]byte    `protobuf:"bytes,7,rep,name=rollback_outputs,json=rollbackOutputs,proto3" json:"rollback_outputs,omitempty"`
	Proof           []byte      `protobuf:"bytes,8,opt,name=proof,proto3" json:"proof,omitempty"`
}

func (m *CreateLockMsg) Reset()         { *m = CreateLockMsg{} }
func (m *CreateLockMsg) String() string { return proto.CompactTextString(m) }
func (*CreateLockMsg) ProtoMessage()    {}

// SettleLockMsg finalizes a lock, inserting its pre-committed settle
// outputs. Only the current delegate can deliver this.
type SettleLockMsg struct {
	LockID []byte `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	Data   []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *SettleLockMsg) Reset()         { *m = SettleLockMsg{} }
func (m *SettleLockMsg) String() string { return proto.CompactTextString(m) }
func (*SettleLockMsg) ProtoMessage()    {}

// RollbackLockMsg reverses a lock, inserting its pre-committed rollback
// outputs. Only the current delegate can deliver this.
type RollbackLockMsg struct {
	LockID []byte `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	Data   []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *RollbackLockMsg) Reset()         { *m = RollbackLockMsg{} }
func (m *RollbackLockMsg) String() string { return proto.CompactTextString(m) }
func (*RollbackLockMsg) ProtoMessage()    {}

// DelegateLockMsg reassigns the delegate of an existing lock without
// touching the committed outputs.
type DelegateLockMsg struct {
	LockID      []byte      `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	NewDelegate pet.Address `protobuf:"bytes,2,opt,name=new_delegate,json=newDelegate,proto3" json:"new_delegate,omitempty"`
}

func (m *DelegateLockMsg) Reset()         { *m = DelegateLockMsg{} }
func (m *DelegateLockMsg) String() string { return proto.CompactTextString(m) }
func (*DelegateLockMsg) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Outputs)(nil), "zeto.Outputs")
	proto.RegisterType((*TransferMsg)(nil), "zeto.TransferMsg")
	proto.RegisterType((*CreateLockMsg)(nil), "zeto.CreateLockMsg")
	proto.RegisterType((*SettleLockMsg)(nil), "zeto.SettleLockMsg")
	proto.RegisterType((*RollbackLockMsg)(nil), "zeto.RollbackLockMsg")
	proto.RegisterType((*DelegateLockMsg)(nil), "zeto.DelegateLockMsg")
}
