package chain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"github.com/geoffmunn/utility-scripts-sub000/chain"
)

var errNodeDown = errors.New("node down")

// flakyClient fails a fixed number of times before succeeding.
type flakyClient struct {
	failuresRemaining int
	calls             int
}

var _ chain.Client = (*flakyClient)(nil)

func (f *flakyClient) attempt() error {
	f.calls++
	if f.failuresRemaining > 0 {
		f.failuresRemaining--
		return errNodeDown
	}
	return nil
}

func (f *flakyClient) Simulate(_ context.Context, _ []byte) (*txtypes.SimulateResponse, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return &txtypes.SimulateResponse{GasInfo: &sdk.GasInfo{GasUsed: 50000}}, nil
}

func (f *flakyClient) Broadcast(_ context.Context, _ []byte) (*txtypes.BroadcastTxResponse, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return &txtypes.BroadcastTxResponse{TxResponse: &sdk.TxResponse{}}, nil
}

func (f *flakyClient) GetTxStatus(_ context.Context, _ string) (*txtypes.GetTxResponse, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return &txtypes.GetTxResponse{TxResponse: &sdk.TxResponse{}}, nil
}

func (f *flakyClient) Account(_ context.Context, _ string) (authtypes.AccountI, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return &authtypes.BaseAccount{Sequence: 3}, nil
}

func (f *flakyClient) Balances(_ context.Context, _ string) (sdk.Coins, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return sdk.NewCoins(sdk.NewInt64Coin("uluna", 100)), nil
}

func (f *flakyClient) GetBalance(_ context.Context, _, denom string) (*sdk.Coin, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	coin := sdk.NewInt64Coin(denom, 100)
	return &coin, nil
}

func newRetryable(t *testing.T, wrapped chain.Client, attempts uint) chain.Client {
	client, err := chain.NewRetryableClient(attempts, 1*time.Millisecond, wrapped)
	require.NoError(t, err)
	return client
}

func TestRetryableClientRetriesUntilSuccess(t *testing.T) {
	wrapped := &flakyClient{failuresRemaining: 2}
	client := newRetryable(t, wrapped, 3)

	account, err := client.Account(context.Background(), "terra1addr")

	require.NoError(t, err)
	require.Equal(t, uint64(3), account.GetSequence())
	require.Equal(t, 3, wrapped.calls)
}

func TestRetryableClientReturnsLastError(t *testing.T) {
	wrapped := &flakyClient{failuresRemaining: 10}
	client := newRetryable(t, wrapped, 3)

	_, err := client.Balances(context.Background(), "terra1addr")

	require.ErrorIs(t, err, errNodeDown)
	require.Equal(t, 3, wrapped.calls)
}

func TestRetryableClientPassesThroughSuccess(t *testing.T) {
	wrapped := &flakyClient{}
	client := newRetryable(t, wrapped, 3)

	response, err := client.Simulate(context.Background(), []byte("tx"))

	require.NoError(t, err)
	require.Equal(t, uint64(50000), response.GasInfo.GasUsed)
	require.Equal(t, 1, wrapped.calls)
}
