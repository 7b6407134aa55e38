package engine

import "errors"

var (
	ErrInvalidPhase      = errors.New("action not allowed in this phase")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrInvalidDiceCount  = errors.New("invalid dice count")
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrSoldOut           = errors.New("sold out")
	ErrNotInMarket       = errors.New("not offered in the market")
	ErrAlreadyBuilt      = errors.New("landmark already built")
	ErrAlreadyOwned      = errors.New("major establishment already owned")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrPurchaseLimit     = errors.New("purchase limit reached")
	ErrInvalidConfig     = errors.New("invalid configuration")

	// Fatal: once returned by Apply the session refuses further actions.
	ErrUnknownCard = errors.New("unknown card")
	ErrInvariant   = errors.New("state invariant violated")
)

// IsFatal reports whether err leaves the session unusable.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnknownCard) || errors.Is(err, ErrInvariant)
}
