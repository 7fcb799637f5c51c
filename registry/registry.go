package registry

import (
	"sort"
	"strings"
)

// Well known denoms. The engine treats the native staking token and the chain's
// stable token specially when resolving fees and taxes.
const (
	DenomLuna = "uluna"
	DenomUSTC = "uusd"
	DenomKRTC = "ukrw"
	DenomOsmo = "uosmo"
	DenomAtom = "uatom"
)

// AssetRegistry is a static table of assets, keyed by denom. It is a leaf
// dependency: every other component resolves precision and price ids here.
type AssetRegistry struct {
	assetsByDenom  map[string]*Asset
	assetsBySymbol map[string]*Asset

	nativeDenom string
	stableDenom string
}

// NewOfflineAssetRegistry provides asset data for the chains the wallet tooling
// operates on, without needing everything under the sun from a hosted registry.
func NewOfflineAssetRegistry() *AssetRegistry {
	r := &AssetRegistry{
		assetsByDenom:  make(map[string]*Asset),
		assetsBySymbol: make(map[string]*Asset),

		nativeDenom: DenomLuna,
		stableDenom: DenomUSTC,
	}

	r.add(DenomLuna, "LUNC", "Luna Classic", 6, "terra", "terra-luna", false)
	r.add(DenomUSTC, "USTC", "TerraClassicUSD", 6, "terra", "terrausd", false)
	r.add(DenomKRTC, "KRTC", "TerraClassicKRW", 6, "terra", "terrakrw", false)
	r.add(DenomOsmo, "OSMO", "Osmosis", 6, "osmosis", "osmosis", true)
	r.add(DenomAtom, "ATOM", "Cosmos Hub Atom", 6, "cosmoshub", "cosmos", true)
	r.add("ibc/0471F1C4E7AFD3F07702BEF6DC365268D64570F7C1FDC98EA6098DD6DE59817B", "OSMO", "Osmosis (IBC)", 6, "terra", "osmosis", true)
	r.add("ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2", "ATOM", "Cosmos Hub Atom (IBC)", 6, "terra", "cosmos", true)

	return r
}

// NewAssetRegistry builds a registry from an explicit asset set. The first
// asset is not special; native and stable denoms are named explicitly.
func NewAssetRegistry(assets []Asset, nativeDenom, stableDenom string) *AssetRegistry {
	r := &AssetRegistry{
		assetsByDenom:  make(map[string]*Asset),
		assetsBySymbol: make(map[string]*Asset),

		nativeDenom: nativeDenom,
		stableDenom: stableDenom,
	}

	for i := range assets {
		asset := assets[i]
		r.assetsByDenom[asset.Denom] = &asset
		r.assetsBySymbol[strings.ToUpper(asset.Symbol)] = &asset
	}

	return r
}

func (r *AssetRegistry) add(denom, symbol, name string, decimals int, chainName, coingeckoID string, taxExempt bool) {
	asset := &Asset{
		Denom:       denom,
		Symbol:      symbol,
		Name:        name,
		Decimals:    decimals,
		ChainName:   chainName,
		CoingeckoID: coingeckoID,
		TaxExempt:   taxExempt,
	}

	r.assetsByDenom[denom] = asset
	r.assetsBySymbol[strings.ToUpper(symbol)] = asset
}

// Asset returns the asset for the given denom.
func (r *AssetRegistry) Asset(denom string) (*Asset, error) {
	asset, found := r.assetsByDenom[denom]
	if !found {
		return nil, ErrUnknownAsset
	}
	return asset, nil
}

// AssetBySymbol returns the asset for a display symbol, ignoring case.
func (r *AssetRegistry) AssetBySymbol(symbol string) (*Asset, error) {
	asset, found := r.assetsBySymbol[strings.ToUpper(symbol)]
	if !found {
		return nil, ErrUnknownAsset
	}
	return asset, nil
}

// Decimals returns the precision for a denom.
func (r *AssetRegistry) Decimals(denom string) (int, error) {
	asset, err := r.Asset(denom)
	if err != nil {
		return 0, err
	}
	return asset.Decimals, nil
}

// CoingeckoID returns the external price id for a denom.
func (r *AssetRegistry) CoingeckoID(denom string) (string, error) {
	asset, err := r.Asset(denom)
	if err != nil {
		return "", err
	}
	return asset.CoingeckoID, nil
}

// IsTaxExempt reports whether chain policy exempts the denom from transfer tax.
// Unknown assets are treated as exempt since no tax rate applies to them.
func (r *AssetRegistry) IsTaxExempt(denom string) bool {
	asset, err := r.Asset(denom)
	if err != nil {
		return true
	}
	return asset.TaxExempt || asset.IsIBC()
}

func (r *AssetRegistry) NativeDenom() string {
	return r.nativeDenom
}

func (r *AssetRegistry) StableDenom() string {
	return r.stableDenom
}

// Denoms returns all registered denoms in a stable order.
func (r *AssetRegistry) Denoms() []string {
	denoms := make([]string, 0, len(r.assetsByDenom))
	for denom := range r.assetsByDenom {
		denoms = append(denoms, denom)
	}
	sort.Strings(denoms)
	return denoms
}
