package router

import "errors"

var (
	// ErrNoLiquidity means no pool or hub path met the depth thresholds.
	// Callers must not proceed with a swap.
	ErrNoLiquidity = errors.New("no pool or path has sufficient liquidity")

	// ErrPrecisionMismatch means an asset on the route is not present in the
	// asset registry, so its precision is unknown.
	ErrPrecisionMismatch = errors.New("asset precision is unknown to the registry")
)
