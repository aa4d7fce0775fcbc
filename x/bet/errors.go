package bet

import (
	"github.com/iov-one/stake/errors"
)

// ABCI Response Codes
// x/bet reserves 1100 ~ 1109.
var (
	ErrDuplicateBet             = errors.Register(1100, "duplicate bet")
	ErrRecordNotFound           = errors.Register(1101, "bet record not found")
	ErrTakerAlreadyDeposited    = errors.Register(1102, "taker already deposited")
	ErrPlayersNotDeposited      = errors.Register(1103, "players not deposited")
	ErrInsufficientVaultBalance = errors.Register(1104, "insufficient vault balance")
)
