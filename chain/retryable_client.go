package chain

import (
	"context"
	"errors"
	"time"

	retry "github.com/avast/retry-go/v4"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// Implements retryable chain calls and returns the last error.
type retryableClient struct {
	wrappedClient Client

	attempts retry.Option
	delay    retry.Option
}

// Ensure that retryableClient implements Client
var _ Client = (*retryableClient)(nil)

// NewRetryableClient returns a new retryableClient.
func NewRetryableClient(attempts uint, delay time.Duration, client Client) (Client, error) {
	return &retryableClient{
		wrappedClient: client,

		attempts: retry.Attempts(attempts),
		delay:    retry.Delay(delay),
	}, nil
}

// Client Interface

func (r *retryableClient) Simulate(ctx context.Context, txBytes []byte) (*txtypes.SimulateResponse, error) {
	var result *txtypes.SimulateResponse
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.Simulate(ctx, txBytes)
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		err = unwrapRetryError(err)
	}

	return result, err
}

func (r *retryableClient) Broadcast(ctx context.Context, txBytes []byte) (*txtypes.BroadcastTxResponse, error) {
	var result *txtypes.BroadcastTxResponse
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.Broadcast(ctx, txBytes)
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		err = unwrapRetryError(err)
	}

	return result, err
}

func (r *retryableClient) GetTxStatus(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error) {
	var result *txtypes.GetTxResponse
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.GetTxStatus(ctx, txHash)
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		err = unwrapRetryError(err)
	}

	return result, err
}

func (r *retryableClient) Account(ctx context.Context, address string) (authtypes.AccountI, error) {
	var result authtypes.AccountI
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.Account(ctx, address)
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		err = unwrapRetryError(err)
	}

	return result, err
}

func (r *retryableClient) Balances(ctx context.Context, address string) (sdk.Coins, error) {
	var result sdk.Coins
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.Balances(ctx, address)
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		err = unwrapRetryError(err)
	}

	return result, err
}

func (r *retryableClient) GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error) {
	var result *sdk.Coin
	var err error

	err = retry.Do(func() error {
		result, err = r.wrappedClient.GetBalance(ctx, address, denom)
		return err
	}, r.delay, r.attempts, retry.Context(ctx))
	if err != nil {
		err = unwrapRetryError(err)
	}

	return result, err
}

// retry-go wraps the terminal error; context errors unwrap to nil.
func unwrapRetryError(err error) error {
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil {
		return unwrapped
	}
	return err
}
