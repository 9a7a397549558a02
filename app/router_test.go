package app

import (
	"context"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaleido-io/PET-atomic-settlements/errors"
	"github.com/kaleido-io/PET-atomic-settlements/pettest"
)

// routedMsg is a minimal message with a configurable path.
type routedMsg struct {
	path    string
	Payload []byte `protobuf:"bytes,1,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *routedMsg) Reset()          { m.Payload = nil }
func (m *routedMsg) String() string  { return proto.CompactTextString(m) }
func (*routedMsg) ProtoMessage()     {}
func (m *routedMsg) Validate() error { return nil }
func (m *routedMsg) Path() string    { return m.path }

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	good := &pettest.Handler{}
	other := &pettest.Handler{}
	r.Handle(&routedMsg{path: "good/path"}, good)
	r.Handle(&routedMsg{path: "other/path"}, other)

	tx := &pettest.Tx{Msg: &routedMsg{path: "good/path"}}
	_, err := r.Check(context.Background(), nil, tx)
	require.NoError(t, err)
	_, err = r.Deliver(context.Background(), nil, tx)
	require.NoError(t, err)

	assert.Equal(t, 1, good.CheckCallCount())
	assert.Equal(t, 1, good.DeliverCallCount())
	assert.Equal(t, 0, other.CallCount())
}

func TestRouterNoSuchPath(t *testing.T) {
	r := NewRouter()
	tx := &pettest.Tx{Msg: &routedMsg{path: "not/registered"}}

	_, err := r.Check(context.Background(), nil, tx)
	assert.True(t, errors.ErrMsg.Is(err), "got %+v", err)
	_, err = r.Deliver(context.Background(), nil, tx)
	assert.True(t, errors.ErrMsg.Is(err), "got %+v", err)
}

func TestRouterRegistrationPanics(t *testing.T) {
	r := NewRouter()
	r.Handle(&routedMsg{path: "dup/path"}, &pettest.Handler{})

	assert.Panics(t, func() {
		r.Handle(&routedMsg{path: "dup/path"}, &pettest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle(&routedMsg{path: "bad path!"}, &pettest.Handler{})
	})
}
