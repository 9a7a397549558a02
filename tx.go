package pet

import (
	"reflect"

	"github.com/gogo/protobuf/proto"

	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

// Msg is a message for the ledger to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	proto.Message

	// Validate makes sure basic rules are enforced upon input data.
	Validate() error

	// Path returns the message path. It is used by the Router to locate
	// the proper Handler. Msg should be created alongside the Handler
	// that corresponds to it.
	//
	// Must be alphanumeric [0-9a-zA-Z_/]+
	Path() string
}

// Tx represents the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender,
// which is passed through middleware and exposed via x.Authenticator.
type Tx interface {
	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, makes sure it is valid
// and loads it into given destination structure. The destination must be of
// the same type as the transported message or ErrType is returned.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	rdest := reflect.ValueOf(destination)
	if rdest.Kind() != reflect.Ptr {
		return errors.Wrapf(errors.ErrType, "%T is not a pointer", destination)
	}
	rmsg := reflect.ValueOf(msg)
	if !rmsg.Type().AssignableTo(rdest.Type()) {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	rdest.Elem().Set(rmsg.Elem())
	return nil
}
