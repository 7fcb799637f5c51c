package tx

import "errors"

var (
	ErrNoMessages  = errors.New("intent contains no messages")
	ErrMemoTooLong = errors.New("memo exceeds maximum length")

	ErrNoFee = errors.New("no fee resolved for execution")

	ErrSimulationFailed         = errors.New("transaction simulation was rejected")
	ErrBroadcastRejected        = errors.New("transaction rejected at broadcast")
	ErrSequenceRetriesExhausted = errors.New("exhausted sequence mismatch retries")
)

// Codespace and code the SDK reports for an account sequence mismatch.
const (
	sdkCodespace         = "sdk"
	sequenceMismatchCode = uint32(32)
)

// IsSequenceMismatchError returns true if the code indicates the signed
// sequence did not match the account's on-chain sequence.
func IsSequenceMismatchError(codespace string, code uint32) bool {
	return codespace == sdkCodespace && code == sequenceMismatchCode
}
