package bet

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

const (
	pathMakeMsg    = "bet/make"
	pathCancelMsg  = "bet/cancel"
	pathTakeMsg    = "bet/take"
	pathDeclineMsg = "bet/decline"
	pathSettleMsg  = "bet/settle"
	pathReclaimMsg = "bet/reclaim"
)

// Winner selects who receives the vault when a bet is settled. Any value
// other than WinnerMaker and WinnerTaker refunds both players.
type Winner uint32

const (
	WinnerNone Winner = iota
	WinnerMaker
	WinnerTaker
)

func (w Winner) String() string {
	switch w {
	case WinnerMaker:
		return "maker"
	case WinnerTaker:
		return "taker"
	default:
		return "none"
	}
}

var (
	_ stake.Msg = (*MakeMsg)(nil)
	_ stake.Msg = (*CancelMsg)(nil)
	_ stake.Msg = (*TakeMsg)(nil)
	_ stake.Msg = (*DeclineMsg)(nil)
	_ stake.Msg = (*SettleMsg)(nil)
	_ stake.Msg = (*ReclaimMsg)(nil)
)

// MakeMsg proposes a new bet. The maker stake is moved to the vault
// immediately.
type MakeMsg struct {
	Maker       stake.Address  `json:"maker"`
	Opponent    stake.Address  `json:"opponent"`
	Judge       stake.Address  `json:"judge"`
	Description string         `json:"description"`
	Amount      uint64         `json:"amount"`
	Deadline    stake.UnixTime `json:"deadline,omitempty"`
}

func (MakeMsg) Path() string {
	return pathMakeMsg
}

func (m *MakeMsg) Validate() error {
	var err error
	err = errors.Append(err, errors.Wrap(m.Maker.Validate(), "maker"))
	err = errors.Append(err, errors.Wrap(m.Opponent.Validate(), "opponent"))
	err = errors.Append(err, errors.Wrap(m.Judge.Validate(), "judge"))
	if len(m.Maker) != 0 && m.Maker.Equals(m.Opponent) {
		err = errors.Append(err, errors.Wrap(errors.ErrMsg, "maker cannot be the opponent"))
	}
	if m.Amount == 0 {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "non-positive amount"))
	}
	if n := len(m.Description); n == 0 || n > maxDescriptionLength {
		err = errors.Append(err, errors.Wrapf(errors.ErrInput, "description must be 1 to %d bytes", maxDescriptionLength))
	}
	if m.Deadline != 0 {
		err = errors.Append(err, errors.Wrap(m.Deadline.Validate(), "deadline"))
	}
	return err
}

// CancelMsg withdraws an offer that was not taken yet.
type CancelMsg struct {
	BetID stake.Address `json:"bet_id"`
}

func (m CancelMsg) Reference() stake.Address {
	return m.BetID
}

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m *CancelMsg) Validate() error {
	return errors.Wrap(m.BetID.Validate(), "bet id")
}

// TakeMsg matches the maker stake. The judge must be repeated to protect
// the opponent from a substituted record.
type TakeMsg struct {
	BetID stake.Address `json:"bet_id"`
	Judge stake.Address `json:"judge"`
}

func (m TakeMsg) Reference() stake.Address {
	return m.BetID
}

func (TakeMsg) Path() string {
	return pathTakeMsg
}

func (m *TakeMsg) Validate() error {
	return errors.Append(
		errors.Wrap(m.BetID.Validate(), "bet id"),
		errors.Wrap(m.Judge.Validate(), "judge"),
	)
}

// DeclineMsg rejects an offer and refunds the maker.
type DeclineMsg struct {
	BetID stake.Address `json:"bet_id"`
}

func (m DeclineMsg) Reference() stake.Address {
	return m.BetID
}

func (DeclineMsg) Path() string {
	return pathDeclineMsg
}

func (m *DeclineMsg) Validate() error {
	return errors.Wrap(m.BetID.Validate(), "bet id")
}

// SettleMsg is the judge decision.
type SettleMsg struct {
	BetID  stake.Address `json:"bet_id"`
	Winner Winner        `json:"winner"`
}

func (m SettleMsg) Reference() stake.Address {
	return m.BetID
}

func (SettleMsg) Path() string {
	return pathSettleMsg
}

func (m *SettleMsg) Validate() error {
	return errors.Wrap(m.BetID.Validate(), "bet id")
}

// ReclaimMsg returns the stakes to both players once the deadline passed.
type ReclaimMsg struct {
	BetID stake.Address `json:"bet_id"`
}

func (m ReclaimMsg) Reference() stake.Address {
	return m.BetID
}

func (ReclaimMsg) Path() string {
	return pathReclaimMsg
}

func (m *ReclaimMsg) Validate() error {
	return errors.Wrap(m.BetID.Validate(), "bet id")
}
