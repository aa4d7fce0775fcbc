package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	stake.Persistent
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model Because of Go type system, using []Model type would not work for
// us. Instead we use a placeholder type and the validation is done during the
// runtime.
type ModelSlicePtr interface{}

// ModelBucket stores models of a single type under a name prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db stake.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if an entity with given primary key exists.
	Has(db stake.ReadOnlyKVStore, key []byte) (bool, error)

	// ByIndex returns all models that are referenced by the given index
	// value. Result is appended to the destination, which must be a
	// pointer to a slice of models. The primary keys are returned in the
	// same order.
	ByIndex(db stake.ReadOnlyKVStore, indexName string, value []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put saves given model in the database and updates all indexes.
	Put(db stake.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db stake.KVStore, key []byte) error

	// Register registers the bucket and all its indexes for queries.
	Register(name string, r stake.QueryRouter)
}

// NewModelBucket returns a ModelBucket storing models of the same type as
// the given prototype.
func NewModelBucket(name string, proto Model, opts ...BucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	mb := &modelBucket{
		name:      name,
		prefix:    append([]byte(name), ':'),
		modelType: reflect.TypeOf(proto).Elem(),
		indexes:   make(map[string]*nativeIndex),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

// BucketOption is implemented by any function that can configure
// ModelBucket during creation.
type BucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer MultiKeyIndexer, unique bool) BucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("index %q registered twice", name))
		}
		mb.indexes[name] = newNativeIndex(mb.name, name, indexer, unique)
	}
}

type modelBucket struct {
	name      string
	prefix    []byte
	modelType reflect.Type
	indexes   map[string]*nativeIndex
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) One(db stake.ReadOnlyKVStore, key []byte, dest Model) error {
	if t := reflect.TypeOf(dest); t.Kind() != reflect.Ptr || t.Elem() != mb.modelType {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.modelType)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.modelType)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal: %s", err)
	}
	return nil
}

func (mb *modelBucket) Has(db stake.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(mb.dbKey(key))
}

func (mb *modelBucket) ByIndex(db stake.ReadOnlyKVStore, indexName string, value []byte, dest ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "unknown index %q", indexName)
	}

	slice := reflect.ValueOf(dest)
	if slice.Kind() != reflect.Ptr || slice.IsNil() || slice.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to slice, got %T", dest)
	}
	elem := slice.Elem().Type().Elem()
	if elem != mb.modelType && elem != reflect.PtrTo(mb.modelType) {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot hold %s", elem, mb.modelType)
	}

	keys, err := idx.keys(db, value)
	if err != nil {
		return nil, err
	}
	out := slice.Elem()
	for _, key := range keys {
		m := reflect.New(mb.modelType)
		if err := mb.One(db, key, m.Interface().(Model)); err != nil {
			return nil, errors.Wrapf(err, "index %q references a missing entity", indexName)
		}
		if elem == mb.modelType {
			out = reflect.Append(out, m.Elem())
		} else {
			out = reflect.Append(out, m)
		}
	}
	slice.Elem().Set(out)
	return keys, nil
}

func (mb *modelBucket) Put(db stake.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, "cannot marshal")
	}
	if raw == nil {
		// A zero model may serialize to nothing. Stores treat a nil
		// value as a missing one.
		raw = []byte{}
	}

	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "cannot update %q index", idx.name)
		}
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db stake.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.modelType)
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "cannot update %q index", idx.name)
		}
	}
	return db.Delete(mb.dbKey(key))
}

// load returns the stored model or nil if there is none.
func (mb *modelBucket) load(db stake.ReadOnlyKVStore, key []byte) (Model, error) {
	m := reflect.New(mb.modelType).Interface().(Model)
	switch err := mb.One(db, key, m); {
	case err == nil:
		return m, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

func (mb *modelBucket) Register(name string, r stake.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	root := "/" + name
	r.Register(root, mb)
	for idxName, idx := range mb.indexes {
		r.Register(root+"/"+idxName, indexQuery{bucket: mb, index: idx})
	}
}

// Query handles queries from the QueryRouter
func (mb *modelBucket) Query(db stake.ReadOnlyKVStore, mod string, data []byte) ([]stake.Model, error) {
	switch mod {
	case stake.KeyQueryMod:
		key := mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []stake.Model{stake.Pair(key, value)}, nil
	case stake.PrefixQueryMod:
		return queryPrefix(db, mb.dbKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
