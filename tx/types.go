package tx

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/geoffmunn/utility-scripts-sub000/fee"
)

// MaxMemoLength bounds the memo field.
const MaxMemoLength = 255

// Intent is a transaction a caller wants settled. The caller owns it until it
// is handed to the lifecycle; the lifecycle never retains it past the call
// that consumes it.
type Intent struct {
	Messages []sdk.Msg
	Memo     string

	// Sequence, when set, overrides the account's reported sequence.
	Sequence *uint64

	// Fee, when set, is the resolved fee to execute with.
	Fee *fee.Fee
}

// Validate checks the intent's own fields, not chain acceptance.
func (i *Intent) Validate() error {
	if len(i.Messages) == 0 {
		return ErrNoMessages
	}
	if len(i.Memo) > MaxMemoLength {
		return ErrMemoTooLong
	}
	return nil
}

// SimulationResult is what a dry-run produces: a gas limit and the candidate
// fee coins the chain would accept for it.
type SimulationResult struct {
	GasLimit      uint64
	FeeCandidates sdk.Coins
}

// BroadcastResult reports the chain's answer to a broadcast. Immutable once
// returned.
type BroadcastResult struct {
	TxHash    string
	Code      uint32
	Codespace string
	RawLog    string
	Height    int64
}

// Succeeded reports whether the chain accepted the transaction.
func (r *BroadcastResult) Succeeded() bool {
	return r.Code == 0
}

// ConfirmationStatus is the terminal state of inclusion polling.
type ConfirmationStatus int

const (
	// StatusConfirmed means the transaction landed with result code 0.
	StatusConfirmed ConfirmationStatus = iota

	// StatusChainRejected means the transaction landed with a definitive
	// non-zero code. Not retried further.
	StatusChainRejected

	// StatusNotFound means the transaction was not seen within the polling
	// budget. Ambiguous: a later transaction might fail due to unconfirmed
	// funds.
	StatusNotFound
)

// Confirmation is the outcome of polling for a broadcast transaction.
type Confirmation struct {
	Status ConfirmationStatus

	TxHash string
	Code   uint32
	RawLog string
	Height int64
}

// SigningMetadata carries the account data needed to sign.
type SigningMetadata struct {
	address       string
	accountNumber uint64
	sequence      uint64
	chainID       string
}

func (sm *SigningMetadata) Address() string {
	return sm.address
}

func (sm *SigningMetadata) AccountNumber() uint64 {
	return sm.accountNumber
}

func (sm *SigningMetadata) Sequence() uint64 {
	return sm.sequence
}

func (sm *SigningMetadata) ChainID() string {
	return sm.chainID
}
