package router

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/geoffmunn/utility-scripts-sub000/pools"
)

// estimateHopOutput converts an incoming amount to the hop's output denom at
// the pool's implied price, less the pool's swap fee, adjusted for any
// difference in asset precision. Both results are floored to integers in the
// destination asset's smallest unit: expected is advisory, minimum further
// subtracts the slippage allowance and guards the actual swap message.
func (r *Resolver) estimateHopOutput(pool *pools.Pool, fromDenom, toDenom string, amount math.Int) (expected math.Int, minimum math.Int, err error) {
	fromAsset, found := pool.Asset(fromDenom)
	if !found {
		return math.Int{}, math.Int{}, fmt.Errorf("pool %d does not hold %s", pool.ID, fromDenom)
	}
	toAsset, found := pool.Asset(toDenom)
	if !found {
		return math.Int{}, math.Int{}, fmt.Errorf("pool %d does not hold %s", pool.ID, toDenom)
	}

	fromDecimals, err := r.registry.Decimals(fromDenom)
	if err != nil {
		return math.Int{}, math.Int{}, fmt.Errorf("%w: %s", ErrPrecisionMismatch, fromDenom)
	}
	toDecimals, err := r.registry.Decimals(toDenom)
	if err != nil {
		return math.Int{}, math.Int{}, fmt.Errorf("%w: %s", ErrPrecisionMismatch, toDenom)
	}

	impliedPrice := math.LegacyNewDecFromInt(toAsset.Amount).Quo(math.LegacyNewDecFromInt(fromAsset.Amount))

	output := math.LegacyNewDecFromInt(amount).Mul(impliedPrice)
	output = output.Mul(math.LegacyOneDec().Sub(pool.SwapFee))

	// Scale across differing precision. Scale down when the target precision
	// is lower, up only when it is higher.
	if toDecimals < fromDecimals {
		output = output.Quo(math.LegacyNewDec(10).Power(uint64(fromDecimals - toDecimals)))
	} else if toDecimals > fromDecimals {
		output = output.Mul(math.LegacyNewDec(10).Power(uint64(toDecimals - fromDecimals)))
	}

	guarded := output.Mul(math.LegacyOneDec().Sub(r.maxSlippage))

	return output.TruncateInt(), guarded.TruncateInt(), nil
}
