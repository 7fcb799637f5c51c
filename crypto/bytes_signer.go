package crypto

import cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

// BytesSigner is an opaque signing credential. The engine never inspects or
// logs the material behind it.
type BytesSigner interface {
	GetAddress(prefix string) string
	SignBytes(
		bytesToSign []byte,
	) ([]byte, error)
	GetPublicKey() cryptotypes.PubKey
}
