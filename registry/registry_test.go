package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoffmunn/utility-scripts-sub000/registry"
)

func TestOfflineRegistry_KnownAsset(t *testing.T) {
	r := registry.NewOfflineAssetRegistry()

	asset, err := r.Asset(registry.DenomLuna)
	require.NoError(t, err)

	assert.Equal(t, "LUNC", asset.Symbol)
	assert.Equal(t, 6, asset.Decimals)
	assert.Equal(t, "terra-luna", asset.CoingeckoID)
	assert.False(t, asset.TaxExempt)
}

func TestOfflineRegistry_UnknownAsset(t *testing.T) {
	r := registry.NewOfflineAssetRegistry()

	_, err := r.Asset("ufoo")
	assert.ErrorIs(t, err, registry.ErrUnknownAsset)
}

func TestOfflineRegistry_Symbols(t *testing.T) {
	r := registry.NewOfflineAssetRegistry()

	asset, err := r.AssetBySymbol("ustc")
	require.NoError(t, err)
	assert.Equal(t, registry.DenomUSTC, asset.Denom)
}

func TestOfflineRegistry_TaxExemption(t *testing.T) {
	r := registry.NewOfflineAssetRegistry()

	// Native and stable assets are taxed.
	assert.False(t, r.IsTaxExempt(registry.DenomLuna))
	assert.False(t, r.IsTaxExempt(registry.DenomUSTC))

	// IBC representations are never taxed.
	assert.True(t, r.IsTaxExempt("ibc/0471F1C4E7AFD3F07702BEF6DC365268D64570F7C1FDC98EA6098DD6DE59817B"))

	// Unknown assets have no tax rate.
	assert.True(t, r.IsTaxExempt("ufoo"))
}

func TestRegistry_Denoms_StableOrder(t *testing.T) {
	r := registry.NewOfflineAssetRegistry()

	first := r.Denoms()
	second := r.Denoms()
	assert.Equal(t, first, second)
}
