package orderbookerrors

import "errors"

// Orderbook errors
var (
	ErrInvalidPrice           = errors.New("invalid price")
	ErrLocationTooHigh        = errors.New("location too high")
	ErrLocationTooLow         = errors.New("location too low")
	ErrIterationLimitExceeded = errors.New("iteration limit exceeded")
	ErrBidNotFound            = errors.New("bid not found")
	ErrBidExists              = errors.New("bid already exists for card")
	ErrNoBids                 = errors.New("no bids found for card")
	ErrCardLocked             = errors.New("card is locked")
	ErrCorruptList            = errors.New("card list is corrupt")
)

// market errors
var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInsufficientDeposit = errors.New("insufficient deposit")
)

// IsLocation reports whether err is a hint rejection the caller can fix by
// recomputing the hint
func IsLocation(err error) bool {
	return errors.Is(err, ErrLocationTooHigh) || errors.Is(err, ErrLocationTooLow)
}
