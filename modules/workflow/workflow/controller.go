package workflow

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common"
	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/session"
	"github.com/aria-network/rwa-gateway/modules/marketplace/marketplace"
	"github.com/aria-network/rwa-gateway/pkg/decimals"
)

// Contracts are the deployed contract addresses one journey executes
// against.
type Contracts struct {
	// Token is the collection contract that mints the verified token and
	// forwards it to the marketplace on listing.
	Token string

	Marketplace string

	// Splitter receives sale proceeds when set; empty routes proceeds to
	// the seller.
	Splitter string
}

// Controller enforces legal sequencing of the document journey:
// select, analyze, mint, list. Transitions are strictly sequential per
// journey; a trigger while an operation is outstanding is rejected, never
// queued. All state is in-memory and scoped to the wallet session.
type Controller struct {
	analyzer  Analyzer
	executor  core.ChainExecutor
	sessions  *session.Store
	contracts Contracts
	denom     string
	decimals  uint8

	mu                sync.Mutex
	status            Status
	document          *Document
	result            *AnalysisResult
	listingInProgress bool
	zoneErrors        map[ErrorZone]string
	gallery           []AnalysisResult
}

func NewController(analyzer Analyzer, executor core.ChainExecutor, sessions *session.Store, contracts Contracts, params *common.ChainParams) *Controller {
	return &Controller{
		analyzer:   analyzer,
		executor:   executor,
		sessions:   sessions,
		contracts:  contracts,
		denom:      params.DenomMinimal,
		decimals:   params.DenomDecimals,
		status:     StatusIdle,
		zoneErrors: make(map[ErrorZone]string),
	}
}

// SelectDocument stages a new document and resets the journey to idle.
// Everything computed from the previous document (analysis, mint, listing)
// is invalidated; the gallery survives, it is session-scoped, not
// journey-scoped.
func (c *Controller) SelectDocument(document Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessions.Address() == "" {
		return errors.Wrap(errs.Unauthenticated, "wallet is not connected")
	}
	if c.status.busy() || c.listingInProgress {
		return errors.Wrap(errs.Conflict, "an operation is in progress")
	}
	if len(document.Content) == 0 {
		return errors.Wrap(errs.InvalidArgument, "document is empty")
	}

	c.document = &document
	c.result = nil
	c.status = StatusIdle
	c.zoneErrors = make(map[ErrorZone]string)
	return nil
}

// Analyze uploads the selected document to the analysis backend. The journey
// moves to analyzing while the upload is prepared, uploading once the
// transport has accepted it, and ready on a successful verdict. Any failure
// returns the journey to idle with the backend's message in the analysis
// zone.
func (c *Controller) Analyze(ctx context.Context) (*AnalysisResult, error) {
	c.mu.Lock()
	owner := c.sessions.Address()
	if owner == "" {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.Unauthenticated, "wallet is not connected")
	}
	if c.status.busy() || c.listingInProgress {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.Conflict, "an operation is in progress")
	}
	if c.status != StatusIdle {
		c.mu.Unlock()
		return nil, errors.Wrapf(errs.Conflict, "can't analyze from state %q, select a new document first", c.status)
	}
	if c.document == nil {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.InvalidArgument, "no document selected")
	}
	document := *c.document
	delete(c.zoneErrors, ZoneAnalysis)
	c.status = StatusAnalyzing
	c.mu.Unlock()

	accepted := func() {
		c.mu.Lock()
		if c.status == StatusAnalyzing {
			c.status = StatusUploading
		}
		c.mu.Unlock()
	}

	outcome, err := c.analyzer.AnalyzeAndPrepare(ctx, document, owner, accepted)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusIdle
		c.zoneErrors[ZoneAnalysis] = err.Error()
		return nil, errors.WithStack(err)
	}
	if len(outcome.TransactionPayload) == 0 {
		c.status = StatusIdle
		c.zoneErrors[ZoneAnalysis] = "analysis returned no transaction payload"
		return nil, errors.Wrap(errs.ExecutionFailed, "analysis returned no transaction payload")
	}

	c.result = &AnalysisResult{
		DocumentName:       document.FileName,
		ReportDisplay:      outcome.ReportDisplay,
		TransactionPayload: outcome.TransactionPayload,
		EvidenceLink:       outcome.EvidenceLink,
	}
	c.status = StatusReady
	result := *c.result
	return &result, nil
}

// Mint executes the backend-prepared transaction verbatim against the token
// contract. Success extends the journey record and appends it to the
// gallery; rejection returns the journey to ready with the raw contract log
// in the minting zone.
func (c *Controller) Mint(ctx context.Context) (*AnalysisResult, error) {
	c.mu.Lock()
	owner := c.sessions.Address()
	if owner == "" {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.Unauthenticated, "wallet is not connected")
	}
	if c.status.busy() || c.listingInProgress {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.Conflict, "an operation is in progress")
	}
	if c.status != StatusReady || c.result == nil || len(c.result.TransactionPayload) == 0 {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.InvalidArgument, "no prepared transaction, analyze a document first")
	}
	delete(c.zoneErrors, ZoneMinting)
	payload := c.result.TransactionPayload
	c.status = StatusMinting
	c.mu.Unlock()

	txResult, err := c.executor.Execute(ctx, owner, c.contracts.Token, payload, "", nil)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusReady
		c.zoneErrors[ZoneMinting] = err.Error()
		return nil, errors.Wrap(err, "mint execution failed")
	}
	if txResult.Failed() {
		c.status = StatusReady
		c.zoneErrors[ZoneMinting] = txResult.RawLog
		return nil, errors.Wrapf(errs.ExecutionFailed, "mint transaction rejected, code: %d, log: %s", txResult.Code, txResult.RawLog)
	}

	var prepared mintPayload
	// the payload executed fine, so a token id it doesn't carry can only
	// mean a backend contract drift; keep the record with an empty id
	_ = json.Unmarshal(payload, &prepared)

	c.result.Minted = true
	c.result.MintedTokenId = prepared.VerifyAndMint.TokenId
	c.result.MintTransactionHash = txResult.TransactionHash
	c.status = StatusMinted
	c.gallery = append(c.gallery, *c.result)

	result := *c.result
	return &result, nil
}

// List puts the minted token up for sale at the given display-unit price.
// Listing is a busy flag on top of minted, not a distinct status; failure
// leaves the journey minted with the error in the listing zone.
func (c *Controller) List(ctx context.Context, priceDisplay string) (*AnalysisResult, error) {
	c.mu.Lock()
	owner := c.sessions.Address()
	if owner == "" {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.Unauthenticated, "wallet is not connected")
	}
	if c.status.busy() || c.listingInProgress {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.Conflict, "an operation is in progress")
	}
	if c.status != StatusMinted || c.result == nil || !c.result.Minted {
		c.mu.Unlock()
		return nil, errors.Wrap(errs.InvalidArgument, "no minted token to list")
	}
	priceMinor, err := decimals.ToMinimal(priceDisplay, c.decimals)
	if err != nil {
		c.mu.Unlock()
		return nil, errors.WithStack(err)
	}
	delete(c.zoneErrors, ZoneListing)
	tokenId := c.result.MintedTokenId
	c.listingInProgress = true
	c.mu.Unlock()

	msg, err := marketplace.NewListingMsg(c.contracts.Marketplace, tokenId, priceMinor, c.denom, c.contracts.Splitter)
	if err == nil {
		var txResult core.TxResult
		txResult, err = c.executor.Execute(ctx, owner, c.contracts.Token, msg, "", nil)
		if err == nil && txResult.Failed() {
			err = errors.Wrapf(errs.ExecutionFailed, "listing transaction rejected, code: %d, log: %s", txResult.Code, txResult.RawLog)
		}
		if err == nil {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.listingInProgress = false
			c.result.Listed = true
			c.result.ListingTransactionHash = txResult.TransactionHash
			c.result.ListPrice = &core.Coin{Denom: c.denom, Amount: priceMinor}
			c.status = StatusListed
			for i := range c.gallery {
				if c.gallery[i].MintedTokenId == tokenId {
					c.gallery[i] = *c.result
					break
				}
			}
			result := *c.result
			return &result, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.listingInProgress = false
	c.zoneErrors[ZoneListing] = err.Error()
	return nil, errors.Wrap(err, "listing failed")
}

// Snapshot is a point-in-time view of the journey for API consumers.
type Snapshot struct {
	Status            Status               `json:"status"`
	ListingInProgress bool                 `json:"listingInProgress"`
	DocumentName      string               `json:"documentName,omitempty"`
	Result            *AnalysisResult      `json:"result,omitempty"`
	Errors            map[ErrorZone]string `json:"errors,omitempty"`
}

func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := Snapshot{
		Status:            c.status,
		ListingInProgress: c.listingInProgress,
	}
	if c.document != nil {
		snapshot.DocumentName = c.document.FileName
	}
	if c.result != nil {
		result := *c.result
		snapshot.Result = &result
	}
	if len(c.zoneErrors) > 0 {
		snapshot.Errors = make(map[ErrorZone]string, len(c.zoneErrors))
		for zone, message := range c.zoneErrors {
			snapshot.Errors[zone] = message
		}
	}
	return snapshot
}

// Gallery returns the session's minted records, oldest first.
func (c *Controller) Gallery() []AnalysisResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	gallery := make([]AnalysisResult, len(c.gallery))
	copy(gallery, c.gallery)
	return gallery
}
