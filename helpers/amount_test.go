package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gear-dapps/nft-marketplace/types"
)

func TestParseAmount(t *testing.T) {
	require := require.New(t)

	di := DenominationInfo{
		Symbol:   "TEST",
		Decimals: 9,
	}

	for _, tc := range []struct {
		amount   string
		valid    bool
		expected uint64
	}{
		{"", false, 0},
		{"0", true, 0},
		{"0.0", true, 0},
		{"0.0.0", false, 0},
		{"0.1", true, 100_000_000},
		{"1", true, 1_000_000_000},
		{"10", true, 10_000_000_000},
		{"10.123", true, 10_123_000_000},
		{"10.999999999", true, 10_999_999_999},
		{"10.9999999991", true, 10_999_999_999},
		{"10.999999999123456", true, 10_999_999_999},
	} {
		amount, err := ParseAmount(&di, tc.amount)
		if tc.valid {
			require.NoError(err, tc.amount)
			require.EqualValues(types.NewFromUint64(tc.expected), amount, tc.amount)
		} else {
			require.Error(err, tc.amount)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	require := require.New(t)

	di := DenominationInfo{
		Symbol:   "TEST",
		Decimals: 9,
	}

	for _, tc := range []struct {
		amount   uint64
		expected string
	}{
		{0, "0.0 TEST"},
		{1, "0.000000001 TEST"},
		{1_000_000, "0.001 TEST"},
		{1_000_000_000, "1.0 TEST"},
		{10_000_000_000, "10.0 TEST"},
		{10_123_000_000, "10.123 TEST"},
		{10_123_456_789, "10.123456789 TEST"},
	} {
		require.EqualValues(tc.expected, FormatAmount(&di, *types.NewFromUint64(tc.amount)), "%d", tc.amount)
	}
}
