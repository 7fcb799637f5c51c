package tx

import (
	"context"

	"github.com/cosmos/cosmos-sdk/client"
	cosmostx "github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"

	"github.com/geoffmunn/utility-scripts-sub000/crypto"
	"github.com/geoffmunn/utility-scripts-sub000/fee"
)

// TxProvider encodes an intent into transaction bytes. The sequence is always
// passed explicitly so retries can thread a corrected value without touching
// shared state.
type TxProvider interface {
	// ProvideSimulationTxBytes encodes the intent with a placeholder signature
	// and zero fee, suitable only for simulation.
	ProvideSimulationTxBytes(intent *Intent, metadata *SigningMetadata, sequence uint64) ([]byte, error)

	// ProvideSignedTxBytes encodes and signs the intent with the given fee.
	ProvideSignedTxBytes(ctx context.Context, intent *Intent, f *fee.Fee, metadata *SigningMetadata, sequence uint64) ([]byte, error)
}

// txProvider is the default implementation of TxProvider.
type txProvider struct {
	bytesSigner crypto.BytesSigner

	txConfig  client.TxConfig
	txFactory cosmostx.Factory
}

// Assert type conformance
var _ TxProvider = (*txProvider)(nil)

func NewTxProvider(bytesSigner crypto.BytesSigner, chainID string, txConfig client.TxConfig) (TxProvider, error) {
	txFactory := cosmostx.Factory{}.WithChainID(chainID).WithTxConfig(txConfig)

	return &txProvider{
		bytesSigner: bytesSigner,

		txConfig:  txConfig,
		txFactory: txFactory,
	}, nil
}

// TxProvider interface

func (txp *txProvider) ProvideSimulationTxBytes(intent *Intent, metadata *SigningMetadata, sequence uint64) ([]byte, error) {
	txb, err := txp.buildTx(intent, sequence)
	if err != nil {
		return nil, err
	}

	encoder := txp.txConfig.TxEncoder()
	return encoder(txb.GetTx())
}

func (txp *txProvider) ProvideSignedTxBytes(ctx context.Context, intent *Intent, f *fee.Fee, metadata *SigningMetadata, sequence uint64) ([]byte, error) {
	txb, err := txp.buildTx(intent, sequence)
	if err != nil {
		return nil, err
	}

	txb.SetGasLimit(f.GasLimit)
	txb.SetFeeAmount(f.Amount)

	// Shim metadata into the format Cosmos SDK wants. The sequence comes from
	// the caller, not the metadata, since retries advance it.
	signerData := authsigning.SignerData{
		ChainID:       metadata.ChainID(),
		AccountNumber: metadata.AccountNumber(),
		Sequence:      sequence,
	}

	signMode := signing.SignMode_SIGN_MODE_DIRECT
	unsignedTxBytes, err := txp.txConfig.SignModeHandler().GetSignBytes(signMode, signerData, txb.GetTx())
	if err != nil {
		return nil, err
	}

	signatureBytes, err := txp.bytesSigner.SignBytes(unsignedTxBytes)
	if err != nil {
		return nil, err
	}

	signatureData := &signing.SingleSignatureData{
		SignMode:  signMode,
		Signature: signatureBytes,
	}
	signatureProto := signing.SignatureV2{
		PubKey:   txp.bytesSigner.GetPublicKey(),
		Data:     signatureData,
		Sequence: sequence,
	}
	err = txb.SetSignatures(signatureProto)
	if err != nil {
		return nil, err
	}

	encoder := txp.txConfig.TxEncoder()
	return encoder(txb.GetTx())
}

// buildTx assembles an unsigned tx carrying the intent's messages, memo and a
// placeholder signature at the given sequence.
func (txp *txProvider) buildTx(intent *Intent, sequence uint64) (client.TxBuilder, error) {
	txb, err := txp.txFactory.BuildUnsignedTx(intent.Messages...)
	if err != nil {
		return nil, err
	}

	txb.SetMemo(intent.Memo)

	signatureProto := signing.SignatureV2{
		PubKey: txp.bytesSigner.GetPublicKey(),
		Data: &signing.SingleSignatureData{
			SignMode:  signing.SignMode_SIGN_MODE_DIRECT,
			Signature: nil,
		},
		Sequence: sequence,
	}
	err = txb.SetSignatures(signatureProto)
	if err != nil {
		return nil, err
	}

	return txb, nil
}
