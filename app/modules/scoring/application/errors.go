package scoringservice

import "errors"

var (
	// ErrUnknownTarget reports a target value outside {house, player}. This
	// is a programming error at the call site, not a user-facing rejection,
	// so it surfaces as a Go error rather than a domain failure.
	ErrUnknownTarget = errors.New("target must be \"house\" or \"player\"")

	// ErrInvalidHouse reports a malformed house key on a house target.
	ErrInvalidHouse = errors.New("unknown house key")
)
