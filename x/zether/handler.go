package zether

import (
	"github.com/tendermint/tendermint/libs/common"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/x"
)

const (
	transferCost     int64 = 200
	createLockCost   int64 = 300
	finalizeLockCost int64 = 100
	delegateLockCost int64 = 0
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r pet.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&TransferMsg{}, TransferHandler{auth, ctrl})
	r.Handle(&CreateLockMsg{}, CreateLockHandler{auth, ctrl})
	r.Handle(&SettleLockMsg{}, SettleLockHandler{auth, ctrl})
	r.Handle(&RollbackLockMsg{}, RollbackLockHandler{auth, ctrl})
	r.Handle(&DelegateLockMsg{}, DelegateLockHandler{auth, ctrl})
}

// TransferHandler moves an encrypted value between accounts.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ pet.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Move(db, msg.Src, msg.Dest, msg.Value, msg.Proof); err != nil {
		return nil, err
	}
	return &pet.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h TransferHandler) validate(ctx pet.Context, tx pet.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Sender must authorize this.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.ErrUnauthorized
	}
	return &msg, nil
}

// CreateLockHandler freezes part of the sender's balance under a new lock.
type CreateLockHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ pet.Handler = CreateLockHandler{}

func (h CreateLockHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: createLockCost}, nil
}

func (h CreateLockHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	l, err := h.ctrl.CreateLock(db, msg)
	if err != nil {
		return nil, err
	}
	// The ciphertext handle is part of the event so a counterparty with
	// decrypt rights can audit the committed amount before approving.
	return &pet.DeliverResult{
		Data: l.LockID,
		Tags: []common.KVPair{
			{Key: []byte("zether:lock"), Value: l.LockID},
			{Key: []byte("zether:receiver"), Value: []byte(l.Receiver.String())},
			{Key: []byte("zether:delegate"), Value: []byte(l.Delegate.String())},
			{Key: []byte("zether:value"), Value: l.CommittedValue},
		},
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateLockHandler) validate(ctx pet.Context, tx pet.Tx) (*CreateLockMsg, error) {
	var msg CreateLockMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Only the owner of the balance can commit it.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.ErrUnauthorized
	}
	return &msg, nil
}

// SettleLockHandler delivers the committed value to the receiver. The
// controller rejects any signer that is not the current delegate.
type SettleLockHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ pet.Handler = SettleLockHandler{}

func (h SettleLockHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: finalizeLockCost}, nil
}

func (h SettleLockHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, actor, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SettleLock(db, actor, msg.LockID, msg.Data); err != nil {
		return nil, err
	}
	return &pet.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("zether:settled"), Value: msg.LockID},
		},
	}, nil
}

func (h SettleLockHandler) validate(ctx pet.Context, tx pet.Tx) (*SettleLockMsg, pet.Address, error) {
	var msg SettleLockMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer.Address(), nil
}

// RollbackLockHandler returns the committed value to the owner. The
// controller rejects any signer that is not the current delegate.
type RollbackLockHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ pet.Handler = RollbackLockHandler{}

func (h RollbackLockHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: finalizeLockCost}, nil
}

func (h RollbackLockHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, actor, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.RollbackLock(db, actor, msg.LockID, msg.Data); err != nil {
		return nil, err
	}
	return &pet.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("zether:rolledback"), Value: msg.LockID},
		},
	}, nil
}

func (h RollbackLockHandler) validate(ctx pet.Context, tx pet.Tx) (*RollbackLockMsg, pet.Address, error) {
	var msg RollbackLockMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer.Address(), nil
}

// DelegateLockHandler hands control of a lock to a new delegate, typically a
// freshly created settlement instance.
type DelegateLockHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ pet.Handler = DelegateLockHandler{}

func (h DelegateLockHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: delegateLockCost}, nil
}

func (h DelegateLockHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, actor, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	l, err := h.ctrl.Redelegate(db, actor, msg.LockID, msg.NewDelegate)
	if err != nil {
		return nil, err
	}
	return &pet.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("zether:lock"), Value: l.LockID},
			{Key: []byte("zether:delegate"), Value: []byte(l.Delegate.String())},
		},
	}, nil
}

func (h DelegateLockHandler) validate(ctx pet.Context, tx pet.Tx) (*DelegateLockMsg, pet.Address, error) {
	var msg DelegateLockMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer.Address(), nil
}
