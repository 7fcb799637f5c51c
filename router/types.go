package router

import (
	"cosmossdk.io/math"
)

// Hop is one swap through a single pool.
type Hop struct {
	PoolID      uint64
	PoolAddress string

	OutputDenom string
	SwapFee     math.LegacyDec
}

// Route is an ordered list of hops from a source denom to a destination denom.
// Length is 1 for a direct pool and 2 when bridged through a hub denom.
type Route struct {
	Hops []Hop

	// ExpectedOutput is advisory: the estimate computed against the cache
	// snapshot at resolution time.
	ExpectedOutput math.Int

	// MinimumOutput is the slippage floor the swap message must carry. The
	// swap must be rejected on chain if it would return less.
	MinimumOutput math.Int
}
