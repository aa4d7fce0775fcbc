package weavetest

import "github.com/iov-one/stake"

// Handler is a mock counting its calls and returning preconfigured results.
type Handler struct {
	checkCall   int
	CheckResult stake.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult stake.DeliverResult
	DeliverErr    error
}

var _ stake.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the key value pair to the store before returning the
// configured error. Use it to verify that failed transactions are rolled
// back.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ stake.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &stake.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &stake.DeliverResult{}, nil
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

var _ stake.Handler = PanicHandler{}

func (h PanicHandler) Check(stake.Context, stake.KVStore, stake.Tx) (*stake.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(stake.Context, stake.KVStore, stake.Tx) (*stake.DeliverResult, error) {
	panic(h.Msg)
}
