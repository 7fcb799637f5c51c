package util

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ExtractCoin pulls the coin for a denom out of a balance set.
func ExtractCoin(targetDenom string, coins sdk.Coins) (*sdk.Coin, error) {
	for _, coin := range coins {
		if strings.EqualFold(targetDenom, coin.Denom) {
			extracted := coin
			return &extracted, nil
		}
	}
	return nil, fmt.Errorf("unable to find denom: %s", targetDenom)
}
