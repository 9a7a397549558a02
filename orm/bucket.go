package orm

import (
	"reflect"

	"github.com/gogo/protobuf/proto"

	pet "github.com/kaleido-io/PET-atomic-settlements"
	"github.com/kaleido-io/PET-atomic-settlements/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
// Serialization is protobuf, validation must pass before any write.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket is a prefixed namespace inside a KVStore that operates on
// Models.
type ModelBucket interface {
	// One queries the database for a single model instance. Lookup is
	// done by the primary key. The result is loaded into the given
	// destination model.
	// This method returns ErrNotFound if the entity does not exist in
	// the database.
	// If the given model type cannot be used to contain the stored
	// entity, ErrType is returned.
	One(db pet.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the database under the given key.
	Put(db pet.KVStore, key []byte, m Model) error

	// Has returns whether an entity with the given primary key exists.
	Has(db pet.ReadOnlyKVStore, key []byte) (bool, error)

	// Delete removes an entity with given primary key from the
	// database. It returns ErrNotFound if an entity with given key does
	// not exist.
	Delete(db pet.KVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket instance storing entities of the
// same type as the given model under the "<name>:" key prefix.
func NewModelBucket(name string, model Model) ModelBucket {
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(model),
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db pet.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%v cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(err, "cannot unmarshal model")
	}
	return nil
}

func (mb *modelBucket) Put(db pet.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "%v cannot store %T", mb.model, m)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "cannot marshal model")
	}
	return db.Set(mb.dbKey(key), raw)
}

func (mb *modelBucket) Has(db pet.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(mb.dbKey(key))
}

func (mb *modelBucket) Delete(db pet.KVStore, key []byte) error {
	dbKey := mb.dbKey(key)
	ok, err := db.Has(dbKey)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "key %X", key)
	}
	return db.Delete(dbKey)
}
