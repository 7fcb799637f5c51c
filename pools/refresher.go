package pools

import (
	"context"

	"github.com/geoffmunn/utility-scripts-sub000/log"
)

// Refresher replaces a store's snapshot from a fetcher. No incremental updates
// are supported; callers refresh before route-critical operations.
type Refresher struct {
	fetcher Fetcher
	store   Store

	logger *log.Logger
}

func NewRefresher(fetcher Fetcher, store Store, logger *log.Logger) (*Refresher, error) {
	return &Refresher{
		fetcher: fetcher,
		store:   store,

		logger: logger,
	}, nil
}

// Refresh fetches the full pool list and installs it wholesale. On fetch
// failure the prior snapshot is left untouched.
func (r *Refresher) Refresh(ctx context.Context) error {
	pools, err := r.fetcher.FetchPools(ctx)
	if err != nil {
		r.logger.Error("failed to fetch pools for refresh, keeping prior snapshot", "error", err.Error())
		return err
	}

	if err := r.store.ReplaceAll(pools); err != nil {
		return err
	}

	r.logger.Info("refreshed pool cache", "num_pools", len(pools))
	return nil
}
