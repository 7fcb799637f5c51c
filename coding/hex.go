package coding

import (
	"encoding/hex"
	"strings"
)

// NormalizeTxHash strips an optional 0x prefix and uppercases a transaction hash,
// which is the form the tx search endpoints expect.
func NormalizeTxHash(input string) string {
	normalized := input
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		normalized = normalized[2:]
	}

	return strings.ToUpper(normalized)
}

// UppercaseHex encodes bytes as uppercase hex with no prefix.
func UppercaseHex(input []byte) string {
	return strings.ToUpper(hex.EncodeToString(input))
}

func DecodeHex(in string) ([]byte, error) {
	normalized := in
	if strings.HasPrefix(in, "0x") || strings.HasPrefix(in, "0X") {
		normalized = normalized[2:]
	}

	return hex.DecodeString(normalized)
}
