package tx

import (
	"context"

	"github.com/geoffmunn/utility-scripts-sub000/chain"
)

// SigningMetadataProvider fetches the account data needed to sign for an
// address.
type SigningMetadataProvider struct {
	chainID string

	chainClient chain.Client
}

func NewSigningMetadataProvider(chainID string, chainClient chain.Client) (*SigningMetadataProvider, error) {
	return &SigningMetadataProvider{
		chainID: chainID,

		chainClient: chainClient,
	}, nil
}

func (smp *SigningMetadataProvider) SigningMetadataForAccount(ctx context.Context, address string) (*SigningMetadata, error) {
	account, err := smp.chainClient.Account(ctx, address)
	if err != nil {
		return nil, err
	}

	return &SigningMetadata{
		address:       address,
		accountNumber: account.GetAccountNumber(),
		sequence:      account.GetSequence(),
		chainID:       smp.chainID,
	}, nil
}
