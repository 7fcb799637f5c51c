package arrays_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geoffmunn/utility-scripts-sub000/arrays"
)

func TestMap(t *testing.T) {
	arr := []string{"uluna", "uusd"}
	upperFunc := func(input string) string { return strings.ToUpper(input) }

	transformed := arrays.Map(arr, upperFunc)

	require.Equal(t, transformed[0], "ULUNA")
	require.Equal(t, transformed[1], "UUSD")
}

func TestFilter(t *testing.T) {
	arr := []int{1, 2, 3, 4, 5}
	evenOnlyFunc := func(input int) bool { return input%2 == 0 }

	transformed := arrays.Filter(arr, evenOnlyFunc)

	require.Equal(t, len(transformed), 2)
	require.Equal(t, transformed[0], 2)
	require.Equal(t, transformed[1], 4)
}

func TestReduce(t *testing.T) {
	arr := []int{1, 2, 3}
	sumFunc := func(a, b int) int { return a + b }

	transformed := arrays.Reduce(arr, sumFunc, 0)

	require.Equal(t, transformed, 6)
}
