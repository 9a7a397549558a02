package zeto

import (
	"github.com/tendermint/tendermint/libs/common"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/x"
)

const (
	transferCost     int64 = 400
	createLockCost   int64 = 500
	finalizeLockCost int64 = 200
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

// TransferHandler spends notes and creates new commitments. Possession of a
// valid spend proof is the authorization; the submitting signer is not
// inspected.
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
	if err := h.ctrl.Transfer(db, msg); err != nil {
		return nil, err
	}
	return &pet.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx pet.Context, tx pet.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// CreateLockHandler consumes notes and freezes their value under a new
// lock. The claimed owner must sign, so the rollback branch cannot be
// pointed at a stranger.
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
	// Both pre-committed output branches are part of the event so the
	// counterparty can recompute and compare the expected note hashes
	// before approving.
	return &pet.DeliverResult{
		Data: l.LockID,
		Tags: []common.KVPair{
			{Key: []byte("zeto:lock"), Value: l.LockID},
			{Key: []byte("zeto:receiver"), Value: []byte(l.Receiver.String())},
			{Key: []byte("zeto:delegate"), Value: []byte(l.Delegate.String())},
			{Key: []byte("zeto:settle_spec"), Value: l.SettleSpec},
			{Key: []byte("zeto:rollback_spec"), Value: l.RollbackSpec},
		},
	}, nil
}

func (h CreateLockHandler) validate(ctx pet.Context, tx pet.Tx) (*CreateLockMsg, error) {
	var msg CreateLockMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.ErrUnauthorized
	}
	return &msg, nil
}

// SettleLockHandler inserts the settle branch outputs. The controller
// rejects any signer that is not the current delegate.
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
			{Key: []byte("zeto:settled"), Value: msg.LockID},
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

// RollbackLockHandler inserts the rollback branch outputs. The controller
// rejects any signer that is not the current delegate.
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
			{Key: []byte("zeto:rolledback"), Value: msg.LockID},
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

// DelegateLockHandler hands control of a lock to a new delegate.
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
			{Key: []byte("zeto:lock"), Value: l.LockID},
			{Key: []byte("zeto:delegate"), Value: []byte(l.Delegate.String())},
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
