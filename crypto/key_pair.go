package crypto

import (
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// SLIP44 coin type the wallet family uses by default.
const defaultCoinType = 330

type KeyPair struct {
	Public  cryptotypes.PubKey
	Private cryptotypes.PrivKey
}

var _ BytesSigner = (*KeyPair)(nil)

// NewKeyPairFromMnemonic returns a key pair derived from the given mnemonic
// at the wallet's default coin type.
func NewKeyPairFromMnemonic(mnemonic string) *KeyPair {
	return NewKeyPairFromMnemonicWithCoinType(mnemonic, defaultCoinType)
}

// NewKeyPairFromMnemonicWithCoinType derives a key pair at an explicit SLIP44
// coin type, for wallets held on other chains (ex. 118 for cosmos).
func NewKeyPairFromMnemonicWithCoinType(mnemonic string, coinType uint32) *KeyPair {
	// Futz with the config but reset it so that future calls aren't confused.
	config := sdk.GetConfig()
	config.SetCoinType(coinType)
	bip44Path := config.GetFullBIP44Path()
	config.SetCoinType(defaultCoinType)

	return newKeyPairFromMnemonic(mnemonic, bip44Path)
}

func newKeyPairFromMnemonic(mnemonic, bip44Path string) *KeyPair {
	algo := hd.Secp256k1
	derivedPriv, _ := algo.Derive()(mnemonic, keyring.DefaultBIP39Passphrase, bip44Path)
	privKey := algo.Generate()(derivedPriv)
	pubKey := privKey.PubKey()

	return &KeyPair{
		Public:  pubKey,
		Private: privKey,
	}
}

func (kp *KeyPair) GetAddress(prefix string) string {
	address := sdk.AccAddress(kp.Public.Address())
	encoded, _ := bech32.ConvertAndEncode(prefix, address)
	return encoded
}

func (kp *KeyPair) SignBytes(
	bytesToSign []byte,
) ([]byte, error) {
	return kp.Private.Sign(bytesToSign)
}

func (kp *KeyPair) GetPublicKey() cryptotypes.PubKey {
	return kp.Public
}
