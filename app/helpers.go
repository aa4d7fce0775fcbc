package app

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Querier is the query half of an abci.Application. StoreApp and BaseApp
// both implement it.
type Querier interface {
	Query(abci.RequestQuery) abci.ResponseQuery
}

var _ Querier = (*StoreApp)(nil)

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore. It
// requires the raw store query to be registered under "/".
type ABCIStore struct {
	app Querier
}

var _ stake.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a read only view of the committed application state.
func NewABCIStore(app Querier) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
// This can be wrapped with a bucket to reuse key/index/parse logic
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query failed with code %d: %s", query.Code, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal result set")
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for a single key", len(value.Results))
	}
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return val != nil, err
}

// Iterator attempts to do a range iteration over the store.
// Only prefix queries are supported by the abci server, so this client
// only supports listing everything.
func (a *ABCIStore) Iterator(start, end []byte) (stake.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "iterator only implemented for entire range")
	}

	query := a.app.Query(abci.RequestQuery{
		Path: "/?" + stake.PrefixQueryMod,
		Data: nil,
	})
	if query.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query failed with code %d: %s", query.Code, query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		return nil, errors.Wrap(err, "cannot convert to model")
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator is not supported over abci queries.
func (a *ABCIStore) ReverseIterator(start, end []byte) (stake.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "reverse iterator not implemented")
}

func toModels(keys, values []byte) ([]stake.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
