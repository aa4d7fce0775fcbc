package bet

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/x"
	"github.com/iov-one/stake/x/cash"
)

const (
	makeBetCost    int64 = 300
	takeBetCost    int64 = 100
	closeBetCost   int64 = 50
	settleBetCost  int64 = 50
	reclaimBetCost int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r stake.Registry, auth x.Authenticator, bank cash.Controller) {
	ctrl := NewController(NewBucket(), bank)

	r.Handle(pathMakeMsg, MakeHandler{auth, ctrl})
	r.Handle(pathCancelMsg, CancelHandler{auth, ctrl})
	r.Handle(pathTakeMsg, TakeHandler{auth, ctrl})
	r.Handle(pathDeclineMsg, DeclineHandler{auth, ctrl})
	r.Handle(pathSettleMsg, SettleHandler{auth, ctrl})
	r.Handle(pathReclaimMsg, ReclaimHandler{auth, ctrl})
}

// MakeHandler creates a bet record and deposits the maker stake.
type MakeHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ stake.Handler = MakeHandler{}

func (h MakeHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &stake.CheckResult{GasAllocated: makeBetCost}, nil
}

func (h MakeHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	betID, b, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.ctrl.bucket.Put(db, betID, b); err != nil {
		return nil, errors.Wrap(err, "cannot store bet")
	}
	if b.Collateral > 0 {
		if err := h.ctrl.bank.MoveCoins(db, b.Maker, betID, b.Collateral); err != nil {
			return nil, errors.Wrap(err, "collateral")
		}
	}
	if err := vault.deposit(db, b.Maker, b.Amount); err != nil {
		return nil, errors.Wrap(err, "maker stake")
	}

	stake.GetLogger(ctx).Info("bet made", "bet", betID, "state", b.State, "amount", b.Amount)
	return &stake.DeliverResult{Data: betID}, nil
}

// validate does all common pre-processing between Check and Deliver. It
// returns the record to be stored, its address and its empty vault.
func (h MakeHandler) validate(ctx stake.Context, db stake.KVStore, tx stake.Tx) (stake.Address, *Bet, *vaultAuthority, error) {
	var msg MakeMsg
	if err := stake.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	if err := authorize(ctx, h.auth, msg.Maker, "maker"); err != nil {
		return nil, nil, nil, err
	}
	if msg.Deadline != 0 && stake.IsExpired(ctx, msg.Deadline) {
		return nil, nil, nil, errors.Wrap(errors.ErrInput, "deadline in the past")
	}

	betID, recordSalt, err := DeriveBetAddress(msg.Maker, msg.Opponent, msg.Judge, msg.Description)
	if err != nil {
		return nil, nil, nil, err
	}
	switch exists, err := h.ctrl.bucket.Has(db, betID); {
	case err != nil:
		return nil, nil, nil, errors.Wrap(err, "cannot check bet")
	case exists:
		return nil, nil, nil, errors.Wrapf(ErrDuplicateBet, "bet %s", betID)
	}
	vaultAddr, vaultSalt, err := DeriveVaultAddress(betID)
	if err != nil {
		return nil, nil, nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, nil, err
	}

	b := &Bet{
		Maker:       msg.Maker,
		Opponent:    msg.Opponent,
		Judge:       msg.Judge,
		Amount:      msg.Amount,
		Description: msg.Description,
		State:       StateOpen,
		RecordSalt:  recordSalt,
		VaultSalt:   vaultSalt,
		Vault:       vaultAddr,
		Collateral:  conf.RecordCollateral,
		Deadline:    msg.Deadline,
	}
	vault, err := newVaultAuthority(h.ctrl.bank, betID, b)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := vault.expect(db, 0); err != nil {
		return nil, nil, nil, errors.Wrap(err, "vault of a new bet must be empty")
	}
	return betID, b, vault, nil
}

// CancelHandler lets the maker withdraw an offer that was not taken.
type CancelHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ stake.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &stake.CheckResult{GasAllocated: closeBetCost}, nil
}

func (h CancelHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	msg, b, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	refund, err := vault.releaseAll(db, b.Maker)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.closeRecord(db, msg.BetID, b, b.Maker); err != nil {
		return nil, err
	}
	stake.GetLogger(ctx).Info("bet cancelled", "bet", msg.BetID, "state", StateClosed, "refund", refund)
	return &stake.DeliverResult{Data: msg.BetID}, nil
}

func (h CancelHandler) validate(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*CancelMsg, *Bet, *vaultAuthority, error) {
	var msg CancelMsg
	if err := stake.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	b, vault, err := h.ctrl.loadLive(db, msg.BetID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := authorize(ctx, h.auth, b.Maker, "maker"); err != nil {
		return nil, nil, nil, err
	}
	if b.Deposited() {
		return nil, nil, nil, errors.Wrap(ErrTakerAlreadyDeposited, "cannot cancel")
	}
	return &msg, b, vault, nil
}

// TakeHandler deposits the opponent stake and accepts the bet.
type TakeHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ stake.Handler = TakeHandler{}

func (h TakeHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &stake.CheckResult{GasAllocated: takeBetCost}, nil
}

func (h TakeHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	msg, b, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := vault.deposit(db, b.Opponent, b.Amount); err != nil {
		return nil, errors.Wrap(err, "opponent stake")
	}
	b.State = StateAccepted
	if err := h.ctrl.bucket.Put(db, msg.BetID, b); err != nil {
		return nil, errors.Wrap(err, "cannot store bet")
	}
	stake.GetLogger(ctx).Info("bet taken", "bet", msg.BetID, "state", b.State)
	return &stake.DeliverResult{Data: msg.BetID}, nil
}

func (h TakeHandler) validate(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*TakeMsg, *Bet, *vaultAuthority, error) {
	var msg TakeMsg
	if err := stake.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	b, vault, err := h.ctrl.loadLive(db, msg.BetID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := authorize(ctx, h.auth, b.Opponent, "opponent"); err != nil {
		return nil, nil, nil, err
	}
	if !msg.Judge.Equals(b.Judge) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "judge mismatch")
	}
	if b.Deposited() {
		return nil, nil, nil, errors.Wrap(ErrTakerAlreadyDeposited, "already taken")
	}
	if b.Deadline != 0 && stake.IsExpired(ctx, b.Deadline) {
		return nil, nil, nil, errors.Wrapf(errors.ErrExpired, "bet expired %v", b.Deadline)
	}
	return &msg, b, vault, nil
}

// DeclineHandler lets the opponent reject an offer.
type DeclineHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ stake.Handler = DeclineHandler{}

func (h DeclineHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &stake.CheckResult{GasAllocated: closeBetCost}, nil
}

func (h DeclineHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	msg, b, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	refund, err := vault.releaseAll(db, b.Maker)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.closeRecord(db, msg.BetID, b, b.Maker); err != nil {
		return nil, err
	}
	stake.GetLogger(ctx).Info("bet declined", "bet", msg.BetID, "state", StateClosed, "refund", refund)
	return &stake.DeliverResult{Data: msg.BetID}, nil
}

func (h DeclineHandler) validate(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*DeclineMsg, *Bet, *vaultAuthority, error) {
	var msg DeclineMsg
	if err := stake.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	b, vault, err := h.ctrl.loadLive(db, msg.BetID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := authorize(ctx, h.auth, b.Opponent, "opponent"); err != nil {
		return nil, nil, nil, err
	}
	if b.Deposited() {
		return nil, nil, nil, errors.Wrap(ErrTakerAlreadyDeposited, "cannot decline")
	}
	return &msg, b, vault, nil
}

// SettleHandler executes the judge decision.
type SettleHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ stake.Handler = SettleHandler{}

func (h SettleHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &stake.CheckResult{GasAllocated: settleBetCost}, nil
}

func (h SettleHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	msg, b, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	switch msg.Winner {
	case WinnerMaker:
		if _, err := vault.releaseAll(db, b.Maker); err != nil {
			return nil, err
		}
	case WinnerTaker:
		if _, err := vault.releaseAll(db, b.Opponent); err != nil {
			return nil, err
		}
	default:
		if err := vault.release(db, b.Maker, b.Amount); err != nil {
			return nil, errors.Wrap(err, "maker refund")
		}
		if err := vault.release(db, b.Opponent, b.Amount); err != nil {
			return nil, errors.Wrap(err, "opponent refund")
		}
	}
	if err := h.ctrl.closeRecord(db, msg.BetID, b, b.Maker); err != nil {
		return nil, err
	}
	stake.GetLogger(ctx).Info("bet settled", "bet", msg.BetID, "state", StateClosed, "winner", msg.Winner)
	return &stake.DeliverResult{Data: msg.BetID}, nil
}

func (h SettleHandler) validate(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*SettleMsg, *Bet, *vaultAuthority, error) {
	var msg SettleMsg
	if err := stake.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	b, vault, err := h.ctrl.loadLive(db, msg.BetID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := authorize(ctx, h.auth, b.Judge, "judge"); err != nil {
		return nil, nil, nil, err
	}
	if !b.Deposited() {
		if msg.Winner == WinnerMaker || msg.Winner == WinnerTaker {
			return nil, nil, nil, errors.Wrapf(ErrPlayersNotDeposited, "cannot pick the %s", msg.Winner)
		}
		return nil, nil, nil, errors.Wrap(ErrInsufficientVaultBalance, "refund needs both stakes, vault holds only the maker stake")
	}
	return &msg, b, vault, nil
}

// ReclaimHandler returns the stakes once the bet deadline passed without a
// decision.
type ReclaimHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ stake.Handler = ReclaimHandler{}

func (h ReclaimHandler) Check(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &stake.CheckResult{GasAllocated: reclaimBetCost}, nil
}

func (h ReclaimHandler) Deliver(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*stake.DeliverResult, error) {
	msg, b, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := vault.release(db, b.Maker, b.Amount); err != nil {
		return nil, errors.Wrap(err, "maker refund")
	}
	if b.Deposited() {
		if err := vault.release(db, b.Opponent, b.Amount); err != nil {
			return nil, errors.Wrap(err, "opponent refund")
		}
	}
	if err := h.ctrl.closeRecord(db, msg.BetID, b, b.Maker); err != nil {
		return nil, err
	}
	stake.GetLogger(ctx).Info("bet reclaimed", "bet", msg.BetID, "state", StateClosed)
	return &stake.DeliverResult{Data: msg.BetID}, nil
}

func (h ReclaimHandler) validate(ctx stake.Context, db stake.KVStore, tx stake.Tx) (*ReclaimMsg, *Bet, *vaultAuthority, error) {
	var msg ReclaimMsg
	if err := stake.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	b, vault, err := h.ctrl.loadLive(db, msg.BetID)
	if err != nil {
		return nil, nil, nil, err
	}
	if _, ok := x.HasAnyAddress(ctx, h.auth, b.Maker, b.Opponent); !ok {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "player signature missing")
	}
	if b.Deadline == 0 || !stake.IsExpired(ctx, b.Deadline) {
		return nil, nil, nil, errors.Wrap(errors.ErrState, "not expired")
	}
	return &msg, b, vault, nil
}
