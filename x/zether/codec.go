package zether

import (
	"github.com/gogo/protobuf/proto"

	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// Account holds a single encrypted running balance. Viewers are the
// addresses allowed to request decryption of the balance off-protocol.
type Account struct {
	Balance []byte        `protobuf:"bytes,1,opt,name=balance,proto3" json:"balance,omitempty"`
	Viewers []pet.Address `protobuf:"bytes,2,rep,name=viewers,proto3" json:"viewers,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

// TransferMsg moves an encrypted value between two accounts. The proof must
// show the sender holds at least the transferred value.
type TransferMsg struct {
	Src   pet.Address `protobuf:"bytes,1,opt,name=src,proto3" json:"src,omitempty"`
	Dest  pet.Address `protobuf:"bytes,2,opt,name=dest,proto3" json:"dest,omitempty"`
	Value []byte      `protobuf:"bytes,3,opt,name=value,proto3" json:"value,omitempty"`
	Proof []byte      `protobuf:"bytes,4,opt,name=proof,proto3" json:"proof,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

// CreateLockMsg debits the sender's balance by the given encrypted value and
// freezes it under a new lock. Settlement pays the full value to Receiver,
// rollback returns it to Src, so no explicit settle or rollback
// specification is carried.
type CreateLockMsg struct {
	LockID   []byte      `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	Src      pet.Address `protobuf:"bytes,2,opt,name=src,proto3" json:"src,omitempty"`
	Receiver pet.Address `protobuf:"bytes,3,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Delegate pet.Address `protobuf:"bytes,4,opt,name=delegate,proto3" json:"delegate,omitempty"`
	Value    []byte      `protobuf:"bytes,5,opt,name=value,proto3" json:"value,omitempty"`
	Proof    []byte      `protobuf:"bytes,6,opt,name=proof,proto3" json:"proof,omitempty"`
}

func (m *CreateLockMsg) Reset()         { *m = CreateLockMsg{} }
func (m *CreateLockMsg) String() string { return proto.CompactTextString(m) }
func (*CreateLockMsg) ProtoMessage()    {}

// SettleLockMsg finalizes a lock, crediting the receiver. Only the current
// delegate can deliver this.
type SettleLockMsg struct {
	LockID []byte `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	Data   []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *SettleLockMsg) Reset()         { *m = SettleLockMsg{} }
func (m *SettleLockMsg) String() string { return proto.CompactTextString(m) }
func (*SettleLockMsg) ProtoMessage()    {}

// RollbackLockMsg reverses a lock, crediting the owner back. Only the
// current delegate can deliver this.
type RollbackLockMsg struct {
	LockID []byte `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	Data   []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *RollbackLockMsg) Reset()         { *m = RollbackLockMsg{} }
func (m *RollbackLockMsg) String() string { return proto.CompactTextString(m) }
func (*RollbackLockMsg) ProtoMessage()    {}

// DelegateLockMsg reassigns the delegate of an existing lock without
// touching the committed value.
type DelegateLockMsg struct {
	LockID      []byte      `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	NewDelegate pet.Address `protobuf:"bytes,2,opt,name=new_delegate,json=newDelegate,proto3" json:"new_delegate,omitempty"`
}

func (m *DelegateLockMsg) Reset()         { *m = DelegateLockMsg{} }
func (m *DelegateLockMsg) String() string { return proto.CompactTextString(m) }
func (*DelegateLockMsg) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Account)(nil), "zether.Account")
	proto.RegisterType((*TransferMsg)(nil), "zether.TransferMsg")
	proto.RegisterType((*CreateLockMsg)(nil), "zether.CreateLockMsg")
	proto.RegisterType((*SettleLockMsg)(nil), "zether.SettleLockMsg")
	proto.RegisterType((*RollbackLockMsg)(nil), "zether.RollbackLockMsg")
	proto.RegisterType((*DelegateLockMsg)(nil), "zether.DelegateLockMsg")
}
