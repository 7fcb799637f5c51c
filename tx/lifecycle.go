package tx

import (
	"context"
	"fmt"
	stdmath "math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/geoffmunn/utility-scripts-sub000/chain"
	"github.com/geoffmunn/utility-scripts-sub000/fee"
	"github.com/geoffmunn/utility-scripts-sub000/log"
)

// DefaultMaxSequenceRetries bounds how many times Execute will re-sign with a
// bumped sequence after a mismatch.
const DefaultMaxSequenceRetries = 5

// Lifecycle drives an intent through simulate, fee resolution, broadcast and
// confirmation. Callers must not run two Executes for the same account
// concurrently; sequence correction assumes a single in-flight transaction.
type Lifecycle struct {
	address   string
	gasFactor float64
	gasPrices sdk.DecCoins

	maxSequenceRetries uint

	chainClient      chain.Client
	feeResolver      *fee.Resolver
	logger           *log.Logger
	metadataProvider *SigningMetadataProvider
	poller           *ConfirmationPoller
	provider         TxProvider
}

func NewLifecycle(
	address string,
	gasFactor float64,
	gasPrices sdk.DecCoins,
	maxSequenceRetries uint,
	chainClient chain.Client,
	feeResolver *fee.Resolver,
	logger *log.Logger,
	metadataProvider *SigningMetadataProvider,
	poller *ConfirmationPoller,
	provider TxProvider,
) (*Lifecycle, error) {
	if gasFactor < 1.0 {
		return nil, fmt.Errorf("gas factor must be at least 1.0, got %f", gasFactor)
	}

	return &Lifecycle{
		address:   address,
		gasFactor: gasFactor,
		gasPrices: gasPrices,

		maxSequenceRetries: maxSequenceRetries,

		chainClient:      chainClient,
		feeResolver:      feeResolver,
		logger:           logger.ApplyPrefix("[LIFECYCLE]"),
		metadataProvider: metadataProvider,
		poller:           poller,
		provider:         provider,
	}, nil
}

// Simulate dry-runs the intent and derives a gas limit plus one candidate fee
// coin per configured gas price. Nothing is signed with a real fee and nothing
// reaches the chain's mempool.
func (l *Lifecycle) Simulate(ctx context.Context, intent *Intent) (*SimulationResult, error) {
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	metadata, err := l.metadataProvider.SigningMetadataForAccount(ctx, l.address)
	if err != nil {
		return nil, err
	}
	sequence := l.sequenceFor(intent, metadata)

	txBytes, err := l.provider.ProvideSimulationTxBytes(intent, metadata, sequence)
	if err != nil {
		return nil, err
	}

	simulationResponse, err := l.chainClient.Simulate(ctx, txBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSimulationFailed, err.Error())
	}

	gasUsed := simulationResponse.GasInfo.GasUsed
	gasLimit := uint64(stdmath.Ceil(float64(gasUsed) * l.gasFactor))
	l.logger.Debug("simulated intent", "gas_used", gasUsed, "gas_limit", gasLimit)

	candidates := sdk.NewCoins()
	for _, gasPrice := range l.gasPrices {
		amount := gasPrice.Amount.MulInt64(int64(gasLimit)).Ceil().TruncateInt()
		candidates = candidates.Add(sdk.NewCoin(gasPrice.Denom, amount))
	}

	return &SimulationResult{
		GasLimit:      gasLimit,
		FeeCandidates: candidates,
	}, nil
}

// ResolveFee picks the fee coin for a simulated intent out of the payer's
// balances.
func (l *Lifecycle) ResolveFee(ctx context.Context, simulation *SimulationResult, opts fee.Options) (*fee.Fee, error) {
	balances, err := l.chainClient.Balances(ctx, l.address)
	if err != nil {
		return nil, err
	}

	return l.feeResolver.Resolve(simulation.FeeCandidates, balances, simulation.GasLimit, opts)
}

// Execute signs and broadcasts the intent with its resolved fee. On a
// sequence mismatch it re-signs with the next sequence, up to the configured
// cap; the corrected sequence is threaded through explicitly rather than
// stored.
func (l *Lifecycle) Execute(ctx context.Context, intent *Intent) (*BroadcastResult, error) {
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	if intent.Fee == nil {
		return nil, ErrNoFee
	}

	metadata, err := l.metadataProvider.SigningMetadataForAccount(ctx, l.address)
	if err != nil {
		return nil, err
	}
	sequence := l.sequenceFor(intent, metadata)

	for attempt := uint(0); attempt <= l.maxSequenceRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		signedBytes, err := l.provider.ProvideSignedTxBytes(ctx, intent, intent.Fee, metadata, sequence)
		if err != nil {
			return nil, err
		}

		broadcastResponse, err := l.chainClient.Broadcast(ctx, signedBytes)
		if err != nil {
			return nil, err
		}

		txResponse := broadcastResponse.TxResponse
		result := &BroadcastResult{
			TxHash:    txResponse.TxHash,
			Code:      txResponse.Code,
			Codespace: txResponse.Codespace,
			RawLog:    txResponse.RawLog,
			Height:    txResponse.Height,
		}

		if result.Succeeded() {
			l.logger.Info("broadcast accepted", "tx_hash", result.TxHash, "sequence", sequence)
			return result, nil
		}

		if IsSequenceMismatchError(result.Codespace, result.Code) {
			l.logger.Warn("sequence mismatch, will re-sign", "sequence", sequence, "raw_log", result.RawLog)
			sequence++
			continue
		}

		l.logger.Error("broadcast rejected", "codespace", result.Codespace, "code", result.Code, "raw_log", result.RawLog)
		return result, fmt.Errorf("%w: %s", ErrBroadcastRejected, result.RawLog)
	}

	return nil, ErrSequenceRetriesExhausted
}

// Confirm polls until the broadcast transaction lands, definitively fails, or
// the polling budget runs out.
func (l *Lifecycle) Confirm(ctx context.Context, txHash string) (*Confirmation, error) {
	return l.poller.Await(ctx, txHash)
}

// sequenceFor returns the intent's explicit sequence if set, otherwise the
// account's reported one.
func (l *Lifecycle) sequenceFor(intent *Intent, metadata *SigningMetadata) uint64 {
	if intent.Sequence != nil {
		return *intent.Sequence
	}
	return metadata.Sequence()
}
