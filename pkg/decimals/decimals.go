package decimals

import (
	"math/big"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"

	"github.com/aria-network/rwa-gateway/common/errs"
)

const (
	DefaultDivPrecision = 36
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// ToDecimal converts an amount in minimal units to its display-unit decimal
// representation (safety floating point).
func ToDecimal[T constraints.Integer](ivalue any, decimals T) decimal.Decimal {
	value := new(big.Int)
	switch v := ivalue.(type) {
	case string:
		value.SetString(v, 10)
	case *big.Int:
		value = v
	case int64:
		value = big.NewInt(v)
	case uint64:
		value = big.NewInt(0).SetUint64(v)
	case uint128.Uint128:
		value = v.Big()
	}
	return decimal.NewFromBigInt(value, -int32(decimals))
}

// ToMinimal converts a user-entered display-unit amount (a decimal string)
// to an exact integer amount of minimal units. All arithmetic is on
// arbitrary-precision decimals; floating point never touches the value.
//
// The amount must be strictly positive and must not carry more fractional
// digits than the denomination supports.
func ToMinimal(display string, decimals uint8) (uint128.Uint128, error) {
	amount, err := decimal.NewFromString(display)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %q is not a number", display)
	}
	if !amount.IsPositive() {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %q must be positive", display)
	}

	shifted := amount.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %q has more than %d decimal places", display, decimals)
	}

	result, err := uint128.FromString(shifted.String())
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidArgument, "amount %q overflows minimal units", display)
	}
	return result, nil
}
