package pettest

import (
	pet "github.com/kaleido-io/PET-atomic-settlements"
)

// Handler implements pet.Handler and records all calls, returning
// preconfigured results. Zero value returns empty results and no errors.
type Handler struct {
	CheckResult   pet.CheckResult
	CheckErr      error
	DeliverResult pet.DeliverResult
	DeliverErr    error

	checkCall   int
	deliverCall int
}

var _ pet.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx pet.Context, store pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx pet.Context, store pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns the number of times Check was called.
func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

// DeliverCallCount returns the number of times Deliver was called.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// CallCount returns the total number of calls.
func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
