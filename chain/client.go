package chain

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// Client is the engine's view of the chain. It owns the wire formats; the
// engine is a pure orchestration layer over it.
type Client interface {
	// Simulate dry-runs encoded transaction bytes and reports gas usage.
	Simulate(ctx context.Context, txBytes []byte) (*txtypes.SimulateResponse, error)

	// Broadcast submits signed transaction bytes and returns the sync result.
	Broadcast(ctx context.Context, txBytes []byte) (*txtypes.BroadcastTxResponse, error)

	// GetTxStatus looks a transaction up by hash once it may have settled.
	GetTxStatus(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error)

	// Account returns account number and sequence for an address.
	Account(ctx context.Context, address string) (authtypes.AccountI, error)

	// Balances returns the full balance snapshot for an address.
	Balances(ctx context.Context, address string) (sdk.Coins, error)

	// GetBalance returns the balance of a single denom for an address.
	GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error)
}
