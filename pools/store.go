package pools

import "errors"

var ErrPoolNotFound = errors.New("pool is not present in the cache")

// Store is the repository for locally cached pool snapshots. ReplaceAll swaps
// the entire table atomically; between replacements the store is read-only.
// Liquidity and fee screening deliberately does not live here — the route
// resolver owns that logic and the store only answers containment queries.
type Store interface {
	// ReplaceAll deletes the previous snapshot and installs the new one.
	// Readers observe either the full old snapshot or the full new one.
	ReplaceAll(pools []Pool) error

	// Pool returns a pool by id.
	Pool(id uint64) (*Pool, error)

	// PoolsContaining returns all pools holding the denom, ordered by pool id.
	PoolsContaining(denom string) ([]Pool, error)

	// AllPools returns the full snapshot, ordered by pool id.
	AllPools() ([]Pool, error)
}
