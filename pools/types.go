package pools

import (
	"cosmossdk.io/math"
)

// PoolAsset is one side of an AMM pool.
type PoolAsset struct {
	Denom  string
	Amount math.Int
	Weight math.Int
}

// Pool is a read-only snapshot of an AMM pool's composition. Staleness is
// bounded only by an explicit refresh of the store holding it.
type Pool struct {
	ID      uint64
	Address string

	// SwapFee is a fraction in [0, 1].
	SwapFee math.LegacyDec

	Assets []PoolAsset
}

// Asset returns the pool asset for the given denom, if present.
func (p *Pool) Asset(denom string) (*PoolAsset, bool) {
	for i := range p.Assets {
		if p.Assets[i].Denom == denom {
			return &p.Assets[i], true
		}
	}
	return nil, false
}

// Contains reports whether the pool holds the given denom.
func (p *Pool) Contains(denom string) bool {
	_, found := p.Asset(denom)
	return found
}

// ContainsPair reports whether the pool holds both denoms.
func (p *Pool) ContainsPair(denomA, denomB string) bool {
	return p.Contains(denomA) && p.Contains(denomB)
}
