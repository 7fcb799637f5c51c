package chain

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/geoffmunn/utility-scripts-sub000/grpc"
	"github.com/geoffmunn/utility-scripts-sub000/log"
	"github.com/geoffmunn/utility-scripts-sub000/util"
)

// Page size to use when walking paginated queries.
const pageSize = 100

// grpcClient is the private and default implementation of Client.
type grpcClient struct {
	cdc *codec.ProtoCodec

	authClient authtypes.QueryClient
	bankClient banktypes.QueryClient
	txClient   txtypes.ServiceClient

	log *log.Logger
}

// A page of data that came back from an RPC query.
type paginatedRpcResponse[dataType any] struct {
	data    []dataType
	nextKey []byte
}

// Ensure that grpcClient implements Client
var _ Client = (*grpcClient)(nil)

// NewGrpcClient makes a new Client over a node's gRPC endpoint.
func NewGrpcClient(nodeGrpcUri string, cdc *codec.ProtoCodec, log *log.Logger) (Client, error) {
	conn, err := grpc.GetGrpcConnection(nodeGrpcUri)
	if err != nil {
		log.Error("unable to connect to gRPC", "grpc_url", nodeGrpcUri)
		return nil, err
	}

	return &grpcClient{
		cdc: cdc,

		authClient: authtypes.NewQueryClient(conn),
		bankClient: banktypes.NewQueryClient(conn),
		txClient:   txtypes.NewServiceClient(conn),

		log: log,
	}, nil
}

// Client interface

func (c *grpcClient) Simulate(ctx context.Context, txBytes []byte) (*txtypes.SimulateResponse, error) {
	request := &txtypes.SimulateRequest{
		TxBytes: txBytes,
	}
	return c.txClient.Simulate(ctx, request)
}

func (c *grpcClient) Broadcast(ctx context.Context, txBytes []byte) (*txtypes.BroadcastTxResponse, error) {
	request := &txtypes.BroadcastTxRequest{
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
		TxBytes: txBytes,
	}
	return c.txClient.BroadcastTx(ctx, request)
}

func (c *grpcClient) GetTxStatus(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error) {
	request := &txtypes.GetTxRequest{Hash: txHash}
	return c.txClient.GetTx(ctx, request)
}

func (c *grpcClient) Account(ctx context.Context, address string) (authtypes.AccountI, error) {
	request := &authtypes.QueryAccountRequest{Address: address}
	response, err := c.authClient.Account(ctx, request)
	if err != nil {
		return nil, err
	}

	var account authtypes.AccountI
	if err := c.cdc.UnpackAny(response.Account, &account); err != nil {
		return nil, err
	}

	return account, nil
}

func (c *grpcClient) Balances(ctx context.Context, address string) (sdk.Coins, error) {
	fetchBalancesPage := func(ctx context.Context, pageKey []byte) (*paginatedRpcResponse[sdk.Coin], error) {
		pagination := &query.PageRequest{
			Key:   pageKey,
			Limit: pageSize,
		}

		request := &banktypes.QueryAllBalancesRequest{
			Address:    address,
			Pagination: pagination,
		}

		response, err := c.bankClient.AllBalances(ctx, request)
		if err != nil {
			return nil, err
		}

		return &paginatedRpcResponse[sdk.Coin]{
			data:    response.Balances,
			nextKey: response.Pagination.NextKey,
		}, nil
	}

	balances, err := retrievePaginatedData(ctx, c, "balances", fetchBalancesPage)
	if err != nil {
		return nil, err
	}
	c.log.Debug("retrieved balances", "num_balances", len(balances), "address", address)

	return sdk.NewCoins(balances...), nil
}

func (c *grpcClient) GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error) {
	balances, err := c.Balances(ctx, address)
	if err != nil {
		return nil, err
	}

	return util.ExtractCoin(denom, balances)
}

// Pagination
// NOTE: Implemented as a private standalone func since go doesn't seem to support generics on struct methods.
func retrievePaginatedData[DataType any](
	ctx context.Context,
	c *grpcClient,
	noun string,
	retrievePageFn func(
		ctx context.Context,
		nextKey []byte,
	) (*paginatedRpcResponse[DataType], error),
) ([]DataType, error) {
	data := []DataType{}

	var nextKey []byte
	for {
		rpcResponse, err := retrievePageFn(ctx, nextKey)
		if err != nil {
			return nil, err
		}

		data = append(data, rpcResponse.data...)
		c.log.Debug(fmt.Sprintf("fetched page of %s", noun), "num_in_page", len(rpcResponse.data), "total_fetched", len(data))

		if len(rpcResponse.nextKey) == 0 {
			break
		}
		nextKey = rpcResponse.nextKey
	}

	return data, nil
}
