package workflow

import (
	"context"
	"encoding/json"

	"github.com/aria-network/rwa-gateway/core"
)

// Document is the user-selected file pending analysis. Content is held in
// memory for the lifetime of the journey only.
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
}

// AnalysisOutcome is what the analysis backend returns for an accepted
// document: a display report, the prepared mint transaction and the
// content-addressed link to the stored evidence.
type AnalysisOutcome struct {
	ReportDisplay      json.RawMessage
	TransactionPayload json.RawMessage
	EvidenceLink       string
}

// Analyzer uploads a document for analysis and returns the prepared outcome.
// accepted is invoked once the upload has been handed to the transport,
// before the backend's verdict is known; implementations may call it at most
// once and must call it before returning.
type Analyzer interface {
	AnalyzeAndPrepare(ctx context.Context, document Document, ownerAddress string, accepted func()) (*AnalysisOutcome, error)
}

// AnalysisResult is the single versioned record of one journey. It is
// created by a successful analysis and only ever extended as the workflow
// advances, never replaced.
type AnalysisResult struct {
	DocumentName       string          `json:"documentName"`
	ReportDisplay      json.RawMessage `json:"reportDisplay,omitempty"`
	TransactionPayload json.RawMessage `json:"-"`
	EvidenceLink       string          `json:"evidenceLink,omitempty"`

	// set by a successful mint
	Minted              bool   `json:"minted"`
	MintedTokenId       string `json:"mintedTokenId,omitempty"`
	MintTransactionHash string `json:"mintTransactionHash,omitempty"`

	// set by a successful listing
	Listed                 bool       `json:"listed"`
	ListingTransactionHash string     `json:"listingTransactionHash,omitempty"`
	ListPrice              *core.Coin `json:"listPrice,omitempty"`
}

// mintPayload is the prepared transaction the backend returns; only the
// token id is inspected locally, the payload executes verbatim.
type mintPayload struct {
	VerifyAndMint struct {
		TokenId string `json:"token_id"`
	} `json:"verify_and_mint"`
}
