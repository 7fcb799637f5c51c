package registry

// Asset describes a single fungible asset the engine knows how to handle.
type Asset struct {
	// Denom is the canonical on-chain identifier, ex. "uluna" or "ibc/0471F1C4E7AF...".
	Denom string

	Symbol string
	Name   string

	// Decimals is the precision of the asset's smallest unit.
	Decimals int

	// ChainName names the chain the asset is native to.
	ChainName string

	// CoingeckoID is the external id used for USD price lookups. Empty when no
	// listing exists, in which case depth screening treats the asset as unpriceable.
	CoingeckoID string

	// TaxExempt marks synthetic / contract-issued assets that are exempted from
	// the proportional transfer tax by chain policy.
	TaxExempt bool
}

// IsIBC reports whether the denom is a cross-chain (IBC) representation.
func (a Asset) IsIBC() bool {
	return len(a.Denom) > 4 && a.Denom[:4] == "ibc/"
}
