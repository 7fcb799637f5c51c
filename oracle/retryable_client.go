package oracle

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"

	"github.com/geoffmunn/utility-scripts-sub000/log"
)

// Default retry budget for the price API.
const (
	DefaultRetryAttempts = uint(10)
	DefaultRetryDelay    = 1 * time.Second
)

// Implements a retryable price client and returns the last error.
type retryablePriceClient struct {
	wrappedClient PriceClient

	attempts retry.Option
	delay    retry.Option

	logger *log.Logger
}

// Ensure that retryablePriceClient implements PriceClient
var _ PriceClient = (*retryablePriceClient)(nil)

// NewRetryablePriceClient returns a new retryablePriceClient. Callers that
// exhaust the budget should treat the oracle as unavailable rather than retry
// further themselves.
func NewRetryablePriceClient(attempts uint, delay time.Duration, priceClient PriceClient, logger *log.Logger) (PriceClient, error) {
	return &retryablePriceClient{
		wrappedClient: priceClient,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),

		logger: logger,
	}, nil
}

// PriceClient Interface

func (r *retryablePriceClient) Prices(ctx context.Context, ids []string) (map[string]float64, error) {
	var result map[string]float64
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.Prices(ctx, ids)
		if err != nil {
			r.logger.Error("failed call to price oracle, will retry", "error", err.Error(), "method", "prices")
		}
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		// If err is an error from a context, unwrapping will write out nil
		unwrappedErr := errors.Unwrap(err)
		if unwrappedErr != nil {
			return result, unwrappedErr
		}
		return result, err
	}

	return result, nil
}

func (r *retryablePriceClient) Price(ctx context.Context, id string) (float64, error) {
	var result float64
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.Price(ctx, id)
		if err != nil {
			r.logger.Error("failed call to price oracle, will retry", "error", err.Error(), "method", "price")
		}
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		unwrappedErr := errors.Unwrap(err)
		if unwrappedErr != nil {
			return result, unwrappedErr
		}
		return result, err
	}

	return result, nil
}
