package atom

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/common"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/orm"
	"github.com/kaleido-io/PET-atomic-settlements/x"
	"github.com/kaleido-io/PET-atomic-settlements/x/lock"
)

const (
	createCost  int64 = 300
	approveCost int64 = 100
	executeCost int64 = 500
	cancelCost  int64 = 500
)

// CustodyBank is the slice of a token contract the escrowed transfer
// variant needs: forwarding whatever sits in the instance's custody account
// and disclosing that balance to a verifier.
type CustodyBank interface {
	MoveAll(db pet.KVStore, src, dest pet.Address) error
	AllowView(db pet.KVStore, account, verifier pet.Address) error
}

// RegisterRoutes will instantiate and register all handlers in this
// package. locks resolves KindLock legs, banks resolves KindTransfer legs
// and balance disclosure.
func RegisterRoutes(r pet.Registry, auth x.Authenticator, locks lock.Registry, banks map[string]CustodyBank) {
	bucket := NewBucket()
	seq := orm.NewSequence("atom", "id")

	r.Handle(&CreateMsg{}, CreateHandler{auth, bucket, seq, locks, banks})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth, bucket})
	r.Handle(&ExecuteMsg{}, ExecuteHandler{auth, bucket, locks, banks})
	r.Handle(&CancelMsg{}, CancelHandler{auth, bucket, locks})
	r.Handle(&AllowBalanceCheckMsg{}, AllowBalanceCheckHandler{auth, bucket, banks})
}

// CreateHandler deploys and initializes a settlement instance in a single
// delivery. The operation list is recorded verbatim and the instance starts
// Pending, so no separately initialized (and hijackable) instance ever
// exists.
type CreateHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	seq    orm.Sequence
	locks  lock.Registry
	banks  map[string]CustodyBank
}

var _ pet.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: createCost}, nil
}

func (h CreateHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	atomID, err := h.seq.NextVal(db)
	if err != nil {
		return nil, err
	}
	instance := &Atom{
		Owner:      owner,
		Status:     StatusPending,
		Operations: msg.Operations,
	}
	if err := h.bucket.Put(db, atomID, instance); err != nil {
		return nil, err
	}

	return &pet.DeliverResult{
		Data: atomID,
		Tags: []common.KVPair{
			{Key: []byte("atom:created"), Value: atomID},
			{Key: []byte("atom:address"), Value: []byte(AtomAddr(atomID).String())},
		},
	}, nil
}

func (h CreateHandler) validate(ctx pet.Context, tx pet.Tx) (*CreateMsg, pet.Address, error) {
	var msg CreateMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner := x.MainSigner(ctx, h.auth)
	if owner == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	// Every leg must name a token this chain can actually resolve.
	for i, op := range msg.Operations {
		switch op.Kind {
		case KindLock:
			if _, ok := h.locks[op.Token]; !ok {
				return nil, nil, errors.Wrapf(errors.ErrNotFound, "operation %d: no lock capability %q", i, op.Token)
			}
		case KindTransfer:
			if _, ok := h.banks[op.Token]; !ok {
				return nil, nil, errors.Wrapf(errors.ErrNotFound, "operation %d: no custody bank %q", i, op.Token)
			}
		}
	}
	return &msg, owner.Address(), nil
}

// ApproveHandler flips one operation's approval flag. When the last flag
// flips the whole instance advances to Approved on its own.
type ApproveHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ pet.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, instance, op, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Approving twice is a noop, not an error.
	if !op.Approved {
		op.Approved = true
		if instance.AllApproved() {
			instance.Status = StatusApproved
		}
		if err := h.bucket.Put(db, msg.AtomID, instance); err != nil {
			return nil, err
		}
	}

	return &pet.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("atom:approved"), Value: msg.AtomID},
			{Key: []byte("atom:operation"), Value: []byte(fmt.Sprint(msg.Index))},
		},
	}, nil
}

func (h ApproveHandler) validate(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*ApproveMsg, *Atom, *Operation, error) {
	var msg ApproveMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	instance, err := loadAtom(h.bucket, db, msg.AtomID)
	if err != nil {
		return nil, nil, nil, err
	}
	if instance.Status != StatusPending && instance.Status != StatusApproved {
		return nil, nil, nil, errors.Wrapf(errors.ErrState, "atom is %v", instance.Status)
	}
	if int(msg.Index) >= len(instance.Operations) {
		return nil, nil, nil, errors.Wrapf(errors.ErrInput, "no operation %d", msg.Index)
	}
	op := instance.Operations[msg.Index]
	if !h.auth.HasAddress(ctx, op.Approver) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the operation approver")
	}
	return &msg, instance, op, nil
}

// ExecuteHandler settles every leg of a fully approved instance. The
// Executed status is written before any external call, so a reentrant
// execute observes the terminal status and fails. Leg failures are not
// caught: one failing leg aborts the whole delivery and the surrounding
// savepoint discards every already applied effect, including the status
// write. That transaction level reversion is what makes the multi-token
// settlement atomic without a commit protocol of its own.
type ExecuteHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	locks  lock.Registry
	banks  map[string]CustodyBank
}

var _ pet.Handler = ExecuteHandler{}

func (h ExecuteHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: executeCost}, nil
}

func (h ExecuteHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, instance, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	instance.Status = StatusExecuted
	if err := h.bucket.Put(db, msg.AtomID, instance); err != nil {
		return nil, err
	}

	self := AtomAddr(msg.AtomID)
	tags := []common.KVPair{
		{Key: []byte("atom:executed"), Value: msg.AtomID},
	}
	for i, op := range instance.Operations {
		switch op.Kind {
		case KindLock:
			cap, ok := h.locks[op.Token]
			if !ok {
				return nil, errors.Wrapf(errors.ErrNotFound, "no lock capability %q", op.Token)
			}
			if err := cap.SettleLock(db, self, op.LockID, op.Data); err != nil {
				return nil, errors.Wrapf(err, "operation %d", i)
			}
		case KindTransfer:
			bank, ok := h.banks[op.Token]
			if !ok {
				return nil, errors.Wrapf(errors.ErrNotFound, "no custody bank %q", op.Token)
			}
			if err := bank.MoveAll(db, self, op.Receiver); err != nil {
				return nil, errors.Wrapf(err, "operation %d", i)
			}
		}
		tags = append(tags, common.KVPair{
			Key:   []byte("atom:settled"),
			Value: []byte(fmt.Sprintf("%d/%s", i, op.Token)),
		})
	}

	return &pet.DeliverResult{Tags: tags}, nil
}

func (h ExecuteHandler) validate(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*ExecuteMsg, *Atom, error) {
	var msg ExecuteMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	instance, err := loadAtom(h.bucket, db, msg.AtomID)
	if err != nil {
		return nil, nil, err
	}
	if instance.Status != StatusApproved {
		return nil, nil, errors.Wrapf(errors.ErrState, "atom is %v", instance.Status)
	}
	if !x.HasAnyAddress(ctx, h.auth, instance.Approvers()) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not a listed approver")
	}
	return &msg, instance, nil
}

// CancelHandler aborts a not yet executed instance. Cancellation is
// expected to run against a partially set up trade, so every leg's rollback
// is attempted inside its own nested savepoint: a leg whose lock was never
// created (or whose rollback fails for any reason) is reported as a failure
// event while the remaining legs still roll back and the cancellation
// itself still commits.
type CancelHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	locks  lock.Registry
}

var _ pet.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: cancelCost}, nil
}

func (h CancelHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, instance, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	instance.Status = StatusCancelled
	if err := h.bucket.Put(db, msg.AtomID, instance); err != nil {
		return nil, err
	}

	cacheable, ok := db.(pet.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store cannot be cache wrapped")
	}

	self := AtomAddr(msg.AtomID)
	tags := []common.KVPair{
		{Key: []byte("atom:cancelled"), Value: msg.AtomID},
	}
	for i, op := range instance.Operations {
		tags = append(tags, h.rollbackLeg(cacheable, self, i, op))
	}

	return &pet.DeliverResult{Tags: tags}, nil
}

// rollbackLeg attempts the rollback of a single leg in isolation and
// reports the outcome as an event.
func (h CancelHandler) rollbackLeg(db pet.CacheableKVStore, self pet.Address, index int, op *Operation) common.KVPair {
	fail := func(reason string) common.KVPair {
		return common.KVPair{
			Key:   []byte("atom:rollback_failed"),
			Value: []byte(fmt.Sprintf("%d/%s: %s", index, op.Token, reason)),
		}
	}

	if op.Kind == KindTransfer {
		// Escrowed value sits in the instance's custody account with no
		// recorded origin to return it to.
		return fail("transfer leg has no rollback path")
	}

	cap, ok := h.locks[op.Token]
	if !ok {
		return fail(fmt.Sprintf("no lock capability %q", op.Token))
	}

	cache := db.CacheWrap()
	if err := cap.RollbackLock(cache, self, op.LockID, op.Data); err != nil {
		cache.Discard()
		return fail(err.Error())
	}
	if err := cache.Write(); err != nil {
		return fail(err.Error())
	}
	return common.KVPair{
		Key:   []byte("atom:rolledback"),
		Value: []byte(fmt.Sprintf("%d/%s", index, op.Token)),
	}
}

func (h CancelHandler) validate(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*CancelMsg, *Atom, error) {
	var msg CancelMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	instance, err := loadAtom(h.bucket, db, msg.AtomID)
	if err != nil {
		return nil, nil, err
	}
	if instance.Status == StatusExecuted || instance.Status == StatusCancelled {
		return nil, nil, errors.Wrapf(errors.ErrState, "atom is %v", instance.Status)
	}
	if !x.HasAnyAddress(ctx, h.auth, instance.Approvers()) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not a listed approver")
	}
	return &msg, instance, nil
}

// AllowBalanceCheckHandler lets a counterparty audit the value escrowed in
// the instance's custody account before deciding to approve.
type AllowBalanceCheckHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	banks  map[string]CustodyBank
}

var _ pet.Handler = AllowBalanceCheckHandler{}

func (h AllowBalanceCheckHandler) Check(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pet.CheckResult{GasAllocated: approveCost}, nil
}

func (h AllowBalanceCheckHandler) Deliver(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	msg, _, bank, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := bank.AllowView(db, AtomAddr(msg.AtomID), msg.Verifier); err != nil {
		return nil, err
	}
	return &pet.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte("atom:disclosure"), Value: msg.AtomID},
			{Key: []byte("atom:verifier"), Value: []byte(msg.Verifier.String())},
		},
	}, nil
}

func (h AllowBalanceCheckHandler) validate(ctx pet.Context, db pet.KVStore, tx pet.Tx) (*AllowBalanceCheckMsg, *Atom, CustodyBank, error) {
	var msg AllowBalanceCheckMsg
	if err := pet.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	instance, err := loadAtom(h.bucket, db, msg.AtomID)
	if err != nil {
		return nil, nil, nil, err
	}
	if instance.Status != StatusPending && instance.Status != StatusApproved {
		return nil, nil, nil, errors.Wrapf(errors.ErrState, "atom is %v", instance.Status)
	}
	if !x.HasAnyAddress(ctx, h.auth, instance.Approvers()) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "not a listed approver")
	}
	bank, ok := h.banks[msg.Token]
	if !ok {
		return nil, nil, nil, errors.Wrapf(errors.ErrNotFound, "no custody bank %q", msg.Token)
	}
	return &msg, instance, bank, nil
}

func loadAtom(bucket orm.ModelBucket, db pet.KVStore, atomID []byte) (*Atom, error) {
	var instance Atom
	if err := bucket.One(db, atomID, &instance); err != nil {
		return nil, errors.Wrapf(err, "atom %X", atomID)
	}
	return &instance, nil
}
