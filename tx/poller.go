package tx

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/geoffmunn/utility-scripts-sub000/chain"
	"github.com/geoffmunn/utility-scripts-sub000/coding"
	"github.com/geoffmunn/utility-scripts-sub000/log"
)

// Defaults give a transaction roughly half a minute to land.
const (
	DefaultPollAttempts = uint(30)
	DefaultPollDelay    = 1 * time.Second
)

// ConfirmationPoller watches for a broadcast transaction to land in a block.
type ConfirmationPoller struct {
	attempts uint
	delay    time.Duration

	chainClient chain.Client
	logger      *log.Logger
}

func NewConfirmationPoller(attempts uint, delay time.Duration, chainClient chain.Client, logger *log.Logger) (*ConfirmationPoller, error) {
	return &ConfirmationPoller{
		attempts: attempts,
		delay:    delay,

		chainClient: chainClient,
		logger:      logger.ApplyPrefix("[POLLER]"),
	}, nil
}

// Await polls for the transaction until it lands, definitively fails, or the
// budget runs out. A transaction not yet indexed reads as not found, so "not
// found" only becomes a terminal answer once the budget is spent, and even
// then it stays ambiguous rather than an error.
func (p *ConfirmationPoller) Await(ctx context.Context, txHash string) (*Confirmation, error) {
	normalized := coding.NormalizeTxHash(txHash)
	logger := p.logger.With("tx_hash", normalized)

	for attempt := uint(0); attempt < p.attempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		response, err := p.chainClient.GetTxStatus(ctx, normalized)
		if err != nil {
			if isNotFound(err) {
				logger.Debug("transaction not yet found", "attempt", attempt+1)
				time.Sleep(p.delay)
				continue
			}
			return nil, err
		}

		txResponse := response.TxResponse
		if txResponse.Code == 0 {
			logger.Info("transaction confirmed", "height", txResponse.Height)
			return &Confirmation{
				Status: StatusConfirmed,
				TxHash: normalized,
				RawLog: txResponse.RawLog,
				Height: txResponse.Height,
			}, nil
		}

		logger.Error("transaction landed but failed", "code", txResponse.Code, "raw_log", txResponse.RawLog)
		return &Confirmation{
			Status: StatusChainRejected,
			TxHash: normalized,
			Code:   txResponse.Code,
			RawLog: txResponse.RawLog,
			Height: txResponse.Height,
		}, nil
	}

	logger.Warn("transaction not found within polling budget")
	return &Confirmation{
		Status: StatusNotFound,
		TxHash: normalized,
	}, nil
}

func isNotFound(err error) bool {
	grpcStatus, ok := status.FromError(err)
	return ok && grpcStatus.Code() == codes.NotFound
}
