package pools_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoffmunn/utility-scripts-sub000/log"
	"github.com/geoffmunn/utility-scripts-sub000/pools"
)

const poolPageOne = `{
	"pools": [
		{
			"id": "1",
			"address": "osmo1mw0ac6rwlp5r8wapwk3zs6g29h8fcscxqakdzw9emkne6c8wjp9q0t3v8t",
			"pool_params": {"swap_fee": "0.002000000000000000"},
			"pool_assets": [
				{"token": {"denom": "uosmo", "amount": "5000000"}, "weight": "536870912"},
				{"token": {"denom": "uluna", "amount": "7000000"}, "weight": "536870912"}
			]
		}
	],
	"pagination": {"next_key": "AAAA"}
}`

const poolPageTwo = `{
	"pools": [
		{
			"id": "2",
			"address": "osmo1500w9dspz9m3sfaqwuy5hkh2pyt85u0pewkyxqzvpsrmvmmz9xls2cmkr9",
			"pool_params": {"swap_fee": "0.003000000000000000"},
			"pool_assets": [
				{"token": {"denom": "uosmo", "amount": "900000"}, "weight": "536870912"},
				{"token": {"denom": "uusd", "amount": "800000"}, "weight": "536870912"}
			]
		}
	],
	"pagination": {"next_key": ""}
}`

func TestLcdFetcher_WalksPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pagination.key") == "AAAA" {
			w.Write([]byte(poolPageTwo))
			return
		}
		w.Write([]byte(poolPageOne))
	}))
	defer server.Close()

	fetcher := pools.NewLcdFetcher(server.URL, log.Default())

	fetched, err := fetcher.FetchPools(context.Background())
	require.NoError(t, err)
	require.Len(t, fetched, 2)

	assert.Equal(t, uint64(1), fetched[0].ID)
	assert.True(t, fetched[0].SwapFee.Equal(math.LegacyMustNewDecFromStr("0.002")))

	asset, found := fetched[0].Asset("uluna")
	require.True(t, found)
	assert.True(t, asset.Amount.Equal(math.NewInt(7000000)))

	assert.Equal(t, uint64(2), fetched[1].ID)
}

func TestRefresher_KeepsSnapshotOnFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store, err := pools.NewInMemoryStore()
	require.NoError(t, err)
	require.NoError(t, store.ReplaceAll([]pools.Pool{makePool(1, "0.003", makeAsset("uluna", 10), makeAsset("uusd", 10))}))

	refresher, err := pools.NewRefresher(pools.NewLcdFetcher(server.URL, log.Default()), store, log.Default())
	require.NoError(t, err)

	err = refresher.Refresh(context.Background())
	assert.Error(t, err)

	// Prior snapshot is untouched
	all, err := store.AllPools()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
