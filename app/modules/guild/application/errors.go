package guildservice

import "errors"

var (
	// ErrInvalidRounding reports an unknown rounding mode name.
	ErrInvalidRounding = errors.New("rounding must be one of round, floor, ceil")

	// ErrInvalidHouse reports a house key outside the two known houses.
	ErrInvalidHouse = errors.New("unknown house key")
)
