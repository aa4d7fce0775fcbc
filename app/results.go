package app

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// ResultSet is one half of a query response. The keys and the values of
// the matched models travel as two sets of equal length.
type ResultSet struct {
	Results [][]byte
}

func (r *ResultSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

// Unmarshal accepts empty input as an empty set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	*r = ResultSet{}
	if len(raw) == 0 {
		return nil
	}
	return cdc.UnmarshalBinaryBare(raw, r)
}

func ResultsFromKeys(models []stake.Model) *ResultSet {
	return project(models, func(m stake.Model) []byte { return m.Key })
}

func ResultsFromValues(models []stake.Model) *ResultSet {
	return project(models, func(m stake.Model) []byte { return m.Value })
}

func project(models []stake.Model, field func(stake.Model) []byte) *ResultSet {
	out := make([][]byte, len(models))
	for i, m := range models {
		out[i] = field(m)
	}
	return &ResultSet{Results: out}
}

// JoinResults zips keys and values back into models.
func JoinResults(keys, values *ResultSet) ([]stake.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys for %d values", len(keys.Results), len(values.Results))
	}
	models := make([]stake.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = stake.Pair(k, values.Results[i])
	}
	return models, nil
}

// DeliverOrError builds the DeliverTx response. Tags are only emitted on
// success.
func DeliverOrError(res *stake.DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return abci.ResponseDeliverTx{
		Data:      res.Data,
		Log:       res.Log,
		Tags:      res.Tags,
		GasUsed:   res.GasUsed,
		GasWanted: res.GasUsed,
	}
}

func CheckOrError(res *stake.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

// DeliverTxError reports err with its registered code. Outside debug mode
// unregistered errors and panics are redacted.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}
