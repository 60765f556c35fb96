package service

import "errors"

var (
	// ErrNoWordsAvailable means the requested pool is exhausted. It is a terminal
	// outcome for the caller, not a fault.
	ErrNoWordsAvailable = errors.New("no words available")

	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidCount      = errors.New("invalid count")
)
