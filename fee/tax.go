package fee

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/geoffmunn/utility-scripts-sub000/registry"
)

// TaxPolicy computes the proportional tax the chain levies on transfers of
// native assets. Synthetic / contract-issued assets and cross-chain transfers
// are exempt.
type TaxPolicy struct {
	rate     math.LegacyDec
	registry *registry.AssetRegistry
}

func NewTaxPolicy(rate math.LegacyDec, assetRegistry *registry.AssetRegistry) *TaxPolicy {
	return &TaxPolicy{
		rate:     rate,
		registry: assetRegistry,
	}
}

func (p *TaxPolicy) Rate() math.LegacyDec {
	return p.rate
}

// Tax returns ceil(amount × rate) for taxable denoms and zero otherwise.
func (p *TaxPolicy) Tax(amount math.Int, denom string) math.Int {
	if p.registry.IsTaxExempt(denom) {
		return math.ZeroInt()
	}

	return p.rate.MulInt(amount).Ceil().TruncateInt()
}

// TaxForTransfer is Tax, forced to zero for cross-chain transfers regardless
// of the denom being sent.
func (p *TaxPolicy) TaxForTransfer(amount math.Int, denom string, crossChain bool) math.Int {
	if crossChain {
		return math.ZeroInt()
	}
	return p.Tax(amount, denom)
}

// Deductible is the amount that must be subtracted from a requested transfer
// so that fee plus tax cannot overdraw the balance.
//
// When fee and tax share a denom the answer is exact: fee + tax. When they
// differ, the stable-fee/native-tax pairing charges tax alone; every other
// mismatched pairing charges 2 × tax as a buffer, since fee and tax are drawn
// from different pools and double counting is the safe default.
func Deductible(feeCoin sdk.Coin, taxAmount math.Int, taxDenom, nativeDenom, stableDenom string) math.Int {
	if feeCoin.Denom == taxDenom {
		return feeCoin.Amount.Add(taxAmount)
	}

	if feeCoin.Denom == stableDenom && taxDenom == nativeDenom {
		return taxAmount
	}

	return taxAmount.MulRaw(2)
}
