package pools

import (
	"sort"
	"sync"
)

// InMemoryStore keeps the pool snapshot in process memory. Replacement builds
// a fresh index and swaps it under the lock, so readers never observe a
// half-written table.
type InMemoryStore struct {
	poolsByID    map[uint64]Pool
	poolsByDenom map[string][]uint64

	lock *sync.RWMutex
}

var _ Store = (*InMemoryStore)(nil)

func NewInMemoryStore() (*InMemoryStore, error) {
	store := &InMemoryStore{
		poolsByID:    make(map[uint64]Pool),
		poolsByDenom: make(map[string][]uint64),

		lock: &sync.RWMutex{},
	}
	return store, nil
}

// Store interface

func (s *InMemoryStore) ReplaceAll(pools []Pool) error {
	poolsByID := make(map[uint64]Pool, len(pools))
	poolsByDenom := make(map[string][]uint64)

	for _, pool := range pools {
		poolsByID[pool.ID] = pool
		for _, asset := range pool.Assets {
			poolsByDenom[asset.Denom] = append(poolsByDenom[asset.Denom], pool.ID)
		}
	}

	for denom := range poolsByDenom {
		ids := poolsByDenom[denom]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.poolsByID = poolsByID
	s.poolsByDenom = poolsByDenom
	return nil
}

func (s *InMemoryStore) Pool(id uint64) (*Pool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	pool, found := s.poolsByID[id]
	if !found {
		return nil, ErrPoolNotFound
	}
	return &pool, nil
}

func (s *InMemoryStore) PoolsContaining(denom string) ([]Pool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := s.poolsByDenom[denom]
	result := make([]Pool, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.poolsByID[id])
	}
	return result, nil
}

func (s *InMemoryStore) AllPools() ([]Pool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	result := make([]Pool, 0, len(s.poolsByID))
	for _, pool := range s.poolsByID {
		result = append(result, pool)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
