package decimals

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustU128(t *testing.T, s string) uint128.Uint128 {
	t.Helper()
	v, err := uint128.FromString(s)
	require.NoError(t, err)
	return v
}

func TestToMinimal(t *testing.T) {
	type testcase struct {
		name     string
		display  string
		decimals uint8
		expected uint128.Uint128
		wantErr  bool
	}

	testcases := []testcase{
		{name: "whole number", display: "5", decimals: 6, expected: uint128.From64(5000000)},
		{name: "fractional", display: "12.5", decimals: 6, expected: uint128.From64(12500000)},
		{name: "full precision", display: "0.000001", decimals: 6, expected: uint128.From64(1)},
		{name: "no drift at 10^15", display: "1000000000000000", decimals: 6, expected: mustU128(t, "1000000000000000000000")},
		{name: "zero rejected", display: "0", decimals: 6, wantErr: true},
		{name: "negative rejected", display: "-3", decimals: 6, wantErr: true},
		{name: "sub-minimal remainder rejected", display: "0.0000001", decimals: 6, wantErr: true},
		{name: "not a number", display: "five", decimals: 6, wantErr: true},
		{name: "empty", display: "", decimals: 6, wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ToMinimal(tc.display, tc.decimals)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestToDecimal(t *testing.T) {
	result := ToDecimal(uint128.From64(12500000), uint8(6))
	assert.Equal(t, "12.5", result.String())
}
