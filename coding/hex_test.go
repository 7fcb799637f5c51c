package coding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geoffmunn/utility-scripts-sub000/coding"
)

func TestNormalizeTxHash(t *testing.T) {
	require.Equal(t, "ABCDEF01", coding.NormalizeTxHash("0xabcdef01"))
	require.Equal(t, "ABCDEF01", coding.NormalizeTxHash("abcdef01"))
	require.Equal(t, "ABCDEF01", coding.NormalizeTxHash("ABCDEF01"))
}

func TestUppercaseHex(t *testing.T) {
	require.Equal(t, "00FF10", coding.UppercaseHex([]byte{0x00, 0xff, 0x10}))
}

func TestDecodeHex(t *testing.T) {
	decoded, err := coding.DecodeHex("0x00ff")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xff}, decoded)

	_, err = coding.DecodeHex("zz")
	require.Error(t, err)
}
