package cash

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

// Ensure we implement the Msg interface
var _ stake.Msg = (*SendMsg)(nil)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize = 128
)

// SendMsg moves Amount from Source to Destination. The Source must sign
// the transaction.
type SendMsg struct {
	Source      stake.Address `json:"source"`
	Destination stake.Address `json:"destination"`
	Amount      uint64        `json:"amount"`
	Memo        string        `json:"memo,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var err error
	if s.Amount == 0 {
		err = errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	err = errors.Append(err, errors.Wrap(s.Source.Validate(), "source"))
	err = errors.Append(err, errors.Wrap(s.Destination.Validate(), "destination"))
	if len(s.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return err
}
