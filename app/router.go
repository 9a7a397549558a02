package app

import (
	"fmt"
	"regexp"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

// isPath is the RegExp to ensure the routes are valid.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router maps message paths to handlers. It implements both the Registry
// used during setup and the Handler used during execution.
type Router struct {
	routes map[string]pet.Handler
}

var _ pet.Registry = (*Router)(nil)
var _ pet.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]pet.Handler),
	}
}

// Handle adds a route for the given message. Panics on duplicate or invalid
// paths, as this is a programmer error done during the setup phase.
func (r *Router) Handle(m pet.Msg, h pet.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this message path, or a
// noSuchPathHandler when no handler was registered.
func (r *Router) handler(tx pet.Tx) pet.Handler {
	path := pet.GetPath(tx)
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path}
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx pet.Context, store pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	return r.handler(tx).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx pet.Context, store pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	return r.handler(tx).Deliver(ctx, store, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ pet.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(ctx pet.Context, store pet.KVStore, tx pet.Tx) (*pet.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrMsg, "no handler for path %q", h.path)
}

func (h noSuchPathHandler) Deliver(ctx pet.Context, store pet.KVStore, tx pet.Tx) (*pet.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrMsg, "no handler for path %q", h.path)
}
