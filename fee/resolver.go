package fee

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/geoffmunn/utility-scripts-sub000/log"
	"github.com/geoffmunn/utility-scripts-sub000/registry"
)

// Fee is a resolved transaction fee. It always contains at least one coin;
// failure to resolve is an error, never an empty fee.
type Fee struct {
	Amount   sdk.Coins
	GasLimit uint64
}

// Options tune a single resolution.
type Options struct {
	// SpecificDenom forces the fee to be paid in the given denom, using that
	// denom's required amount from the candidate set.
	SpecificDenom string

	// ConvertToIBC rewrites a native fee denom to its cross-chain
	// representation over IBCChannel. The amount is unchanged.
	ConvertToIBC bool
	IBCChannel   string
}

// Resolver selects the coin that will actually pay for a transaction from the
// candidates the chain suggests, given what the payer holds.
type Resolver struct {
	registry *registry.AssetRegistry

	logger *log.Logger
}

func NewResolver(assetRegistry *registry.AssetRegistry, logger *log.Logger) (*Resolver, error) {
	return &Resolver{
		registry: assetRegistry,

		logger: logger,
	}, nil
}

// Resolve picks the fee coin. Preference order among affordable candidates:
// any minor coin first, then the native coin, then the stable coin.
func (r *Resolver) Resolve(candidates sdk.Coins, balances sdk.Coins, gasLimit uint64, opts Options) (*Fee, error) {
	if candidates.Empty() {
		return nil, ErrNoCandidates
	}

	nativeDenom := r.registry.NativeDenom()
	stableDenom := r.registry.StableDenom()

	// Partition candidates, retaining only those the payer can cover.
	var nativeCoin *sdk.Coin
	var stableCoin *sdk.Coin
	var minorCoins []sdk.Coin

	for _, candidate := range candidates {
		if balances.AmountOf(candidate.Denom).LT(candidate.Amount) {
			continue
		}

		coin := candidate
		switch candidate.Denom {
		case nativeDenom:
			nativeCoin = &coin
		case stableDenom:
			stableCoin = &coin
		default:
			minorCoins = append(minorCoins, coin)
		}
	}

	var chosen *sdk.Coin
	switch {
	case len(minorCoins) > 0:
		chosen = &minorCoins[0]
	case nativeCoin != nil:
		chosen = nativeCoin
	case stableCoin != nil:
		chosen = stableCoin
	default:
		r.logger.Debug("no affordable fee candidate", "num_candidates", len(candidates))
		return nil, ErrInsufficientFunds
	}

	// A specific denom takes precedence over the preference order, but only
	// once affordability has been established above.
	if opts.SpecificDenom != "" {
		required := candidates.AmountOf(opts.SpecificDenom)
		if required.IsZero() {
			return nil, ErrInsufficientFunds
		}
		if balances.AmountOf(opts.SpecificDenom).LT(required) {
			return nil, ErrInsufficientFunds
		}

		overridden := sdk.NewCoin(opts.SpecificDenom, required)
		chosen = &overridden
	}

	// Rewrite the native denom to its IBC representation when requested.
	if opts.ConvertToIBC && chosen.Denom == nativeDenom {
		rewritten := sdk.NewCoin(IBCDenom(opts.IBCChannel, chosen.Denom), chosen.Amount)
		chosen = &rewritten
	}

	r.logger.Debug("resolved fee", "denom", chosen.Denom, "amount", chosen.Amount.String(), "gas_limit", gasLimit)

	return &Fee{
		Amount:   sdk.NewCoins(*chosen),
		GasLimit: gasLimit,
	}, nil
}
