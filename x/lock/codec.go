package lock

import (
	"github.com/gogo/protobuf/proto"

	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// State represents the lifecycle stage of a lock.
type State int32

const (
	StateInvalid State = 0
	// StateActive means the committed value is held and can leave only via
	// a settle or rollback call of the delegate.
	StateActive State = 1
	// StateSettled means the committed value was delivered to the receiver.
	StateSettled State = 2
	// StateRolledBack means the committed value was returned to the owner.
	StateRolledBack State = 3
)

var stateName = map[int32]string{
	0: "INVALID",
	1: "ACTIVE",
	2: "SETTLED",
	3: "ROLLED_BACK",
}

var stateValue = map[string]int32{
	"INVALID":     0,
	"ACTIVE":      1,
	"SETTLED":     2,
	"ROLLED_BACK": 3,
}

func (s State) String() string {
	return proto.EnumName(stateName, int32(s))
}

// Lock is a one-time commitment of asset value held by a token contract.
// Everything except Delegate is frozen at creation time. CommittedValue,
// SettleSpec and RollbackSpec are opaque to everyone but the owning token
// contract.
type Lock struct {
	LockID         []byte      `protobuf:"bytes,1,opt,name=lock_id,json=lockId,proto3" json:"lock_id,omitempty"`
	Owner          pet.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Receiver       pet.Address `protobuf:"bytes,3,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Delegate       pet.Address `protobuf:"bytes,4,opt,name=delegate,proto3" json:"delegate,omitempty"`
	CommittedValue []byte      `protobuf:"bytes,5,opt,name=committed_value,json=committedValue,proto3" json:"committed_value,omitempty"`
	SettleSpec     []byte      `protobuf:"bytes,6,opt,name=settle_spec,json=settleSpec,proto3" json:"settle_spec,omitempty"`
	RollbackSpec   []byte      `protobuf:"bytes,7,opt,name=rollback_spec,json=rollbackSpec,proto3" json:"rollback_spec,omitempty"`
	State          State       `protobuf:"varint,8,opt,name=state,proto3,enum=lock.State" json:"state,omitempty"`
}

func (m *Lock) Reset()         { *m = Lock{} }
func (m *Lock) String() string { return proto.CompactTextString(m) }
func (*Lock) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("lock.State", stateName, stateValue)
	proto.RegisterType((*Lock)(nil), "lock.Lock")
}
