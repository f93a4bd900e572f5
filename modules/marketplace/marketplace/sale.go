package marketplace

import (
	"encoding/json"

	"github.com/gaze-network/uint128"
)

// SaleStatusOpen is the only on-chain sale status that makes a listing
// visible. Comparison is case-insensitive.
const SaleStatusOpen = "open"

// Metadata is the off-chain token document resolved from the token's
// content URI.
type Metadata struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
}

// SaleRecord is one open marketplace listing, fully joined across the
// marketplace contract, the owning collection contract and the token's
// off-chain metadata. Records are recomputed in full on every aggregation
// run; SaleId is the only stable identity across runs.
type SaleRecord struct {
	SaleId            string
	TokenId           string
	CollectionAddress string
	PriceMinor        uint128.Uint128
	Denom             string
	SellerAddress     string
	Metadata          Metadata
}
