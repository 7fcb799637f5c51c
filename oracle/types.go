package oracle

import (
	"context"
	"errors"
)

// PriceClient fetches spot USD prices for assets by their external ids.
type PriceClient interface {
	// Prices returns a USD price per requested id. Ids without a listing are
	// absent from the result rather than reported as zero.
	Prices(ctx context.Context, ids []string) (map[string]float64, error)

	// Price returns the USD price for a single id.
	Price(ctx context.Context, id string) (float64, error)
}

// ErrPriceUnavailable is returned when the oracle could not produce a price,
// including after the retry budget is exhausted.
var ErrPriceUnavailable = errors.New("price is unavailable from the oracle")
