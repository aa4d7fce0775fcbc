package utils

import (
	"strings"

	"github.com/iov-one/stake"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys appended by the ActionTagger.
const (
	ActionKey = "action"
	ModuleKey = "module"
	RefKey    = "ref"
)

// Referencer is implemented by messages that act on an existing entity,
// for example a bet record.
type Referencer interface {
	Reference() stake.Address
}

// ActionTagger tags every successfully delivered transaction with its
// message path and the extension that handled it. Messages implementing
// Referencer are also tagged with the referenced address, so that a
// client can subscribe to everything happening to a single bet.
type ActionTagger struct{}

var _ stake.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Checker) (*stake.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx, next stake.Deliverer) (*stake.DeliverResult, error) {
	// Fail before dispatching if the message cannot be read.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, msgTags(msg)...)
	return res, nil
}

func msgTags(msg stake.Msg) []common.KVPair {
	path := msg.Path()
	tags := []common.KVPair{
		{Key: []byte(ActionKey), Value: []byte(path)},
		{Key: []byte(ModuleKey), Value: []byte(strings.SplitN(path, "/", 2)[0])},
	}
	if r, ok := msg.(Referencer); ok {
		if ref := r.Reference(); len(ref) != 0 {
			tags = append(tags, common.KVPair{Key: []byte(RefKey), Value: []byte(ref.String())})
		}
	}
	return tags
}
