package fee

import "errors"

var (
	// ErrInsufficientFunds means no candidate fee coin is covered by the payer's
	// balances. This is terminal: callers report it, they do not retry.
	ErrInsufficientFunds = errors.New("no fee candidate has sufficient balance")

	// ErrNoCandidates means simulation produced an empty candidate set, which is
	// a distinct failure from an affordable-but-empty fee.
	ErrNoCandidates = errors.New("no fee candidates to resolve")
)
