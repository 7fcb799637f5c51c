package router_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoffmunn/utility-scripts-sub000/log"
	"github.com/geoffmunn/utility-scripts-sub000/oracle"
	"github.com/geoffmunn/utility-scripts-sub000/pools"
	"github.com/geoffmunn/utility-scripts-sub000/registry"
	"github.com/geoffmunn/utility-scripts-sub000/router"
)

// staticPrices serves fixed USD prices without a network.
type staticPrices map[string]float64

func (p staticPrices) Prices(ctx context.Context, ids []string) (map[string]float64, error) {
	result := make(map[string]float64)
	for _, id := range ids {
		if price, found := p[id]; found {
			result[id] = price
		}
	}
	return result, nil
}

func (p staticPrices) Price(ctx context.Context, id string) (float64, error) {
	price, found := p[id]
	if !found {
		return 0, oracle.ErrPriceUnavailable
	}
	return price, nil
}

func newResolver(t *testing.T, snapshot []pools.Pool, prices staticPrices, hubDenoms []string) *router.Resolver {
	t.Helper()

	store, err := pools.NewInMemoryStore()
	require.NoError(t, err)
	require.NoError(t, store.ReplaceAll(snapshot))

	resolver, err := router.NewResolver(
		store,
		prices,
		registry.NewOfflineAssetRegistry(),
		hubDenoms,
		math.LegacyMustNewDecFromStr("0.01"),
		log.Default(),
	)
	require.NoError(t, err)
	return resolver
}

func pool(id uint64, swapFee string, assets ...pools.PoolAsset) pools.Pool {
	return pools.Pool{
		ID:      id,
		Address: "terra1pool",
		SwapFee: math.LegacyMustNewDecFromStr(swapFee),
		Assets:  assets,
	}
}

func asset(denom string, amount int64) pools.PoolAsset {
	return pools.PoolAsset{Denom: denom, Amount: math.NewInt(amount), Weight: math.NewInt(1)}
}

var testPrices = staticPrices{
	"terra-luna": 0.0001,
	"terrausd":   1.0,
	"osmosis":    0.61,
	"cosmos":     5.0,
}

func TestResolveRoute_DirectPool(t *testing.T) {
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.003", asset("uluna", 100_000_000_000), asset("uusd", 200_000_000_000)),
	}, testPrices, nil)

	route, err := resolver.ResolveRoute(context.Background(), "uluna", "uusd", math.NewInt(1000))
	require.NoError(t, err)

	require.Len(t, route.Hops, 1)
	assert.Equal(t, uint64(1), route.Hops[0].PoolID)
	assert.Equal(t, "uusd", route.Hops[0].OutputDenom)

	// Expected: 1000 × 2 × (1 - 0.003) = 1994. Minimum further applies the
	// 1% slippage allowance: 1994 × 0.99 = 1974.06, floored.
	assert.True(t, route.ExpectedOutput.Equal(math.NewInt(1994)), "got %s", route.ExpectedOutput)
	assert.True(t, route.MinimumOutput.Equal(math.NewInt(1974)), "got %s", route.MinimumOutput)
}

func TestResolveRoute_BelowDepthMultiple(t *testing.T) {
	// Same-side liquidity is only 5× the requested amount; the floor is 10×.
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.003", asset("uluna", 5000), asset("uusd", 5000)),
	}, testPrices, nil)

	_, err := resolver.ResolveRoute(context.Background(), "uluna", "uusd", math.NewInt(1000))
	assert.ErrorIs(t, err, router.ErrNoLiquidity)
}

func TestResolveRoute_BelowUSDFloor(t *testing.T) {
	// Deep enough on the input side, but the destination side is worth well
	// under 100 USD.
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.003", asset("uluna", 100_000_000), asset("uusd", 50_000_000)),
	}, testPrices, nil)

	_, err := resolver.ResolveRoute(context.Background(), "uluna", "uusd", math.NewInt(1000))
	assert.ErrorIs(t, err, router.ErrNoLiquidity)
}

func TestResolveRoute_PicksLowestSwapFee(t *testing.T) {
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.005", asset("uluna", 100_000_000_000), asset("uusd", 200_000_000_000)),
		pool(2, "0.002", asset("uluna", 100_000_000_000), asset("uusd", 200_000_000_000)),
		pool(3, "0.002", asset("uluna", 100_000_000_000), asset("uusd", 200_000_000_000)),
	}, testPrices, nil)

	route, err := resolver.ResolveRoute(context.Background(), "uluna", "uusd", math.NewInt(1000))
	require.NoError(t, err)

	// Pool 2 and 3 tie on fee; the first encountered wins.
	assert.Equal(t, uint64(2), route.Hops[0].PoolID)
}

func TestResolveRoute_Deterministic(t *testing.T) {
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.003", asset("uluna", 100_000_000_000), asset("uusd", 200_000_000_000)),
		pool(2, "0.003", asset("uluna", 100_000_000_000), asset("uusd", 200_000_000_000)),
	}, testPrices, nil)

	first, err := resolver.ResolveRoute(context.Background(), "uluna", "uusd", math.NewInt(1000))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := resolver.ResolveRoute(context.Background(), "uluna", "uusd", math.NewInt(1000))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveRoute_TwoHopFallback(t *testing.T) {
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.002", asset("uluna", 100_000_000_000), asset("uosmo", 50_000_000_000)),
		pool(2, "0.003", asset("uosmo", 80_000_000_000), asset("uatom", 10_000_000_000)),
	}, testPrices, []string{"uosmo"})

	route, err := resolver.ResolveRoute(context.Background(), "uluna", "uatom", math.NewInt(100_000))
	require.NoError(t, err)

	require.Len(t, route.Hops, 2)
	assert.Equal(t, "uosmo", route.Hops[0].OutputDenom)
	assert.Equal(t, "uatom", route.Hops[1].OutputDenom)
	assert.True(t, route.MinimumOutput.IsPositive())

	// Every hop's same-side liquidity is at least 10× the amount entering it.
	firstPool := pool(1, "0.002", asset("uluna", 100_000_000_000), asset("uosmo", 50_000_000_000))
	fromAsset, _ := firstPool.Asset("uluna")
	assert.True(t, fromAsset.Amount.GTE(math.NewInt(100_000).MulRaw(10)))
}

func TestResolveRoute_SecondHubTried(t *testing.T) {
	// No uusd hub pools exist, so routing falls through to the uosmo hub.
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.002", asset("uluna", 100_000_000_000), asset("uosmo", 50_000_000_000)),
		pool(2, "0.003", asset("uosmo", 80_000_000_000), asset("uatom", 10_000_000_000)),
	}, testPrices, []string{"uusd", "uosmo"})

	route, err := resolver.ResolveRoute(context.Background(), "uluna", "uatom", math.NewInt(100_000))
	require.NoError(t, err)
	require.Len(t, route.Hops, 2)
	assert.Equal(t, "uosmo", route.Hops[0].OutputDenom)
}

func TestResolveRoute_NoPath(t *testing.T) {
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.002", asset("uluna", 100_000_000_000), asset("uosmo", 50_000_000_000)),
	}, testPrices, []string{"uosmo"})

	_, err := resolver.ResolveRoute(context.Background(), "uluna", "uatom", math.NewInt(100_000))
	assert.ErrorIs(t, err, router.ErrNoLiquidity)
}

func TestResolveRoute_UnknownAsset(t *testing.T) {
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.003", asset("uluna", 100_000_000_000), asset("ufoo", 200_000_000_000)),
	}, testPrices, nil)

	_, err := resolver.ResolveRoute(context.Background(), "uluna", "ufoo", math.NewInt(1000))
	assert.ErrorIs(t, err, router.ErrPrecisionMismatch)
}

func TestResolveRoute_PriceUnavailable(t *testing.T) {
	// The oracle has no price for terrausd here.
	resolver := newResolver(t, []pools.Pool{
		pool(1, "0.003", asset("uluna", 100_000_000_000), asset("uusd", 200_000_000_000)),
	}, staticPrices{"terra-luna": 0.0001}, nil)

	_, err := resolver.ResolveRoute(context.Background(), "uluna", "uusd", math.NewInt(1000))
	assert.ErrorIs(t, err, oracle.ErrPriceUnavailable)
}
