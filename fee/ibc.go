package fee

import (
	"crypto/sha256"
	"fmt"

	"github.com/geoffmunn/utility-scripts-sub000/coding"
)

// IBCDenom derives the cross-chain representation of a denom as it appears on
// the far side of a transfer channel: sha256 of the canonical trace path,
// rendered as uppercase hex under the ibc/ prefix.
func IBCDenom(channel, denom string) string {
	trace := fmt.Sprintf("transfer/%s/%s", channel, denom)
	hash := sha256.Sum256([]byte(trace))
	return "ibc/" + coding.UppercaseHex(hash[:])
}
