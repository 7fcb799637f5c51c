package router

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/geoffmunn/utility-scripts-sub000/arrays"
	"github.com/geoffmunn/utility-scripts-sub000/log"
	"github.com/geoffmunn/utility-scripts-sub000/oracle"
	"github.com/geoffmunn/utility-scripts-sub000/pools"
	"github.com/geoffmunn/utility-scripts-sub000/registry"
)

// Liquidity screens applied to every candidate pool.
const (
	// A pool must hold at least this multiple of the incoming amount on the
	// same side as the swap.
	minDepthMultiple = 10

	// The destination side must be worth at least this much in USD.
	minDepthUSD = 100.0
)

// Resolver finds the best direct or two-hop path between two denoms through
// the cached pool snapshot. Resolution is deterministic for a fixed snapshot
// and fixed inputs.
type Resolver struct {
	store    pools.Store
	prices   oracle.PriceClient
	registry *registry.AssetRegistry

	// hubDenoms are the policy-selected bridge assets tried, in order, when no
	// direct pool qualifies.
	hubDenoms []string

	// maxSlippage is the tolerance subtracted when estimating hop output.
	maxSlippage math.LegacyDec

	logger *log.Logger
}

func NewResolver(
	store pools.Store,
	prices oracle.PriceClient,
	assetRegistry *registry.AssetRegistry,
	hubDenoms []string,
	maxSlippage math.LegacyDec,
	logger *log.Logger,
) (*Resolver, error) {
	return &Resolver{
		store:    store,
		prices:   prices,
		registry: assetRegistry,

		hubDenoms:   hubDenoms,
		maxSlippage: maxSlippage,

		logger: logger,
	}, nil
}

// ResolveRoute finds a route carrying the given amount from fromDenom to
// toDenom, or fails with ErrNoLiquidity when no direct or hub path qualifies.
func (r *Resolver) ResolveRoute(ctx context.Context, fromDenom, toDenom string, amount math.Int) (*Route, error) {
	logger := r.logger.With("from_denom", fromDenom, "to_denom", toDenom, "amount", amount.String())

	// Direct pool first.
	directPool, err := r.bestPool(ctx, fromDenom, toDenom, amount)
	if err != nil {
		return nil, err
	}
	if directPool != nil {
		expected, minimum, err := r.estimateHopOutput(directPool, fromDenom, toDenom, amount)
		if err != nil {
			return nil, err
		}

		logger.Debug("resolved direct route", "pool_id", directPool.ID, "minimum_output", minimum.String())
		return &Route{
			Hops: []Hop{{
				PoolID:      directPool.ID,
				PoolAddress: directPool.Address,
				OutputDenom: toDenom,
				SwapFee:     directPool.SwapFee,
			}},
			ExpectedOutput: expected,
			MinimumOutput:  minimum,
		}, nil
	}
	logger.Debug("no direct pool qualifies, trying hub denoms", "num_hubs", len(r.hubDenoms))

	// Two-hop fallback through each hub denom in order.
	for _, hubDenom := range r.hubDenoms {
		if hubDenom == fromDenom || hubDenom == toDenom {
			continue
		}

		route, err := r.resolveTwoHop(ctx, fromDenom, hubDenom, toDenom, amount)
		if err != nil {
			return nil, err
		}
		if route != nil {
			logger.Debug("resolved two-hop route", "hub_denom", hubDenom, "minimum_output", route.MinimumOutput.String())
			return route, nil
		}
	}

	logger.Debug("no route found")
	return nil, ErrNoLiquidity
}

// resolveTwoHop attempts fromDenom → hubDenom → toDenom. Returns (nil, nil)
// when the path does not qualify.
func (r *Resolver) resolveTwoHop(ctx context.Context, fromDenom, hubDenom, toDenom string, amount math.Int) (*Route, error) {
	firstPool, err := r.bestPool(ctx, fromDenom, hubDenom, amount)
	if err != nil {
		return nil, err
	}
	if firstPool == nil {
		return nil, nil
	}

	// The guarded hub amount feeds the second hop, keeping the final minimum
	// honest when both hops slip.
	_, hubAmount, err := r.estimateHopOutput(firstPool, fromDenom, hubDenom, amount)
	if err != nil {
		return nil, err
	}

	secondPool, err := r.bestPool(ctx, hubDenom, toDenom, hubAmount)
	if err != nil {
		return nil, err
	}
	if secondPool == nil {
		return nil, nil
	}

	expected, minimum, err := r.estimateHopOutput(secondPool, hubDenom, toDenom, hubAmount)
	if err != nil {
		return nil, err
	}

	return &Route{
		Hops: []Hop{
			{
				PoolID:      firstPool.ID,
				PoolAddress: firstPool.Address,
				OutputDenom: hubDenom,
				SwapFee:     firstPool.SwapFee,
			},
			{
				PoolID:      secondPool.ID,
				PoolAddress: secondPool.Address,
				OutputDenom: toDenom,
				SwapFee:     secondPool.SwapFee,
			},
		},
		ExpectedOutput: expected,
		MinimumOutput:  minimum,
	}, nil
}

// bestPool returns the qualifying pool with the lowest swap fee for the pair,
// or nil when none qualifies. Ties break toward the lower pool id, since the
// store returns pools in id order.
func (r *Resolver) bestPool(ctx context.Context, fromDenom, toDenom string, amount math.Int) (*pools.Pool, error) {
	containing, err := r.store.PoolsContaining(fromDenom)
	if err != nil {
		return nil, err
	}
	candidates := arrays.Filter(containing, func(pool pools.Pool) bool {
		return pool.Contains(toDenom)
	})

	var best *pools.Pool
	for i := range candidates {
		pool := candidates[i]

		qualifies, err := r.qualifies(ctx, &pool, fromDenom, toDenom, amount)
		if err != nil {
			return nil, err
		}
		if !qualifies {
			continue
		}

		if best == nil || pool.SwapFee.LT(best.SwapFee) {
			best = &candidates[i]
		}
	}

	return best, nil
}

// qualifies applies the depth screens: same-side liquidity of at least
// minDepthMultiple × amount, and a destination side worth at least minDepthUSD.
func (r *Resolver) qualifies(ctx context.Context, pool *pools.Pool, fromDenom, toDenom string, amount math.Int) (bool, error) {
	fromAsset, _ := pool.Asset(fromDenom)
	toAsset, _ := pool.Asset(toDenom)

	if fromAsset.Amount.LT(amount.MulRaw(minDepthMultiple)) {
		r.logger.Debug("pool fails same-side depth screen", "pool_id", pool.ID, "denom", fromDenom)
		return false, nil
	}

	depth, err := r.usdValue(ctx, toAsset.Denom, toAsset.Amount)
	if err != nil {
		return false, err
	}
	if depth < minDepthUSD {
		r.logger.Debug("pool fails destination depth screen", "pool_id", pool.ID, "denom", toDenom, "usd_depth", depth)
		return false, nil
	}

	return true, nil
}

// usdValue prices an on-chain amount in USD via the oracle.
func (r *Resolver) usdValue(ctx context.Context, denom string, amount math.Int) (float64, error) {
	asset, err := r.registry.Asset(denom)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrPrecisionMismatch, denom)
	}
	if asset.CoingeckoID == "" {
		// No listing: the asset can't be valued, so it can never clear the
		// USD depth floor.
		return 0, nil
	}

	price, err := r.prices.Price(ctx, asset.CoingeckoID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", oracle.ErrPriceUnavailable, denom)
	}

	humanUnits := math.LegacyNewDecFromInt(amount).Quo(math.LegacyNewDec(10).Power(uint64(asset.Decimals)))
	value, err := humanUnits.Float64()
	if err != nil {
		return 0, err
	}

	return value * price, nil
}
