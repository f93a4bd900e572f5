package core

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
)

// Coin is an amount of a single denomination in minimal units.
// Amounts cross the chain boundary as decimal strings and must round-trip
// exactly, so the wire form always carries Amount.String().
type Coin struct {
	Denom  string
	Amount uint128.Uint128
}

type coinJSON struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// ParseAmount parses a base-10 minimal-unit amount string.
// uint128.FromString stops at the first non-digit instead of rejecting the
// input ("1.5" parses as 1), so the string is checked digit-by-digit first.
func ParseAmount(s string) (uint128.Uint128, error) {
	if s == "" {
		return uint128.Zero, errors.New("empty amount")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return uint128.Zero, errors.Errorf("invalid amount %q", s)
		}
	}
	value, err := uint128.FromString(s)
	if err != nil {
		return uint128.Zero, errors.Wrapf(err, "invalid amount %q", s)
	}
	return value, nil
}

func (c Coin) MarshalJSON() ([]byte, error) {
	out, err := json.Marshal(coinJSON{Denom: c.Denom, Amount: c.Amount.String()})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

func (c *Coin) UnmarshalJSON(data []byte) error {
	var raw coinJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WithStack(err)
	}
	amount, err := ParseAmount(raw.Amount)
	if err != nil {
		return errors.Wrap(err, "can't parse coin amount")
	}
	c.Denom = raw.Denom
	c.Amount = amount
	return nil
}

// TxResult is the outcome of a broadcast contract execution.
// Code != 0 means the node accepted the transaction but the contract
// rejected it; RawLog then carries the contract's failure text.
type TxResult struct {
	TransactionHash string `json:"transactionHash"`
	Code            uint32 `json:"code"`
	RawLog          string `json:"rawLog,omitempty"`
	GasUsed         int64  `json:"gasUsed,omitempty"`
}

func (r TxResult) Failed() bool {
	return r.Code != 0
}
