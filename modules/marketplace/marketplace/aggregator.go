package marketplace

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	cstream "github.com/planxnx/concurrent-stream"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/pkg/logger"
	"github.com/aria-network/rwa-gateway/pkg/logger/slogx"
)

const (
	DefaultPageLimit   = 50
	DefaultConcurrency = 8
)

// Aggregator reconstructs the set of currently open sales from the
// marketplace's narrow, paginated query surface. One run issues a four-level
// join: authorized collections, per-collection sale infos, per-sale state and
// per-token metadata.
//
// A failure at the first level fails the whole run (errs.Aggregation); any
// failure below that only drops the affected records. Result order is not
// guaranteed.
type Aggregator struct {
	querier     core.ContractQuerier
	metadata    core.MetadataFetcher
	pageLimit   int32
	concurrency int
}

type AggregatorOptions struct {
	// PageLimit tunes the page size of the paginated contract queries.
	// Pages are always followed to exhaustion, so this never truncates
	// results.
	PageLimit int32

	// Concurrency bounds the parallel fan-out across collections.
	Concurrency int
}

func NewAggregator(querier core.ContractQuerier, metadata core.MetadataFetcher, options ...AggregatorOptions) *Aggregator {
	var opts AggregatorOptions
	if len(options) > 0 {
		opts = options[0]
	}
	if opts.PageLimit <= 0 {
		opts.PageLimit = DefaultPageLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Aggregator{
		querier:     querier,
		metadata:    metadata,
		pageLimit:   opts.PageLimit,
		concurrency: opts.Concurrency,
	}
}

// SaleState is the current on-chain state of a single listing.
type SaleState struct {
	Status     string
	PriceMinor uint128.Uint128
	Denom      string
	Seller     string
}

func (s SaleState) IsOpen() bool {
	return strings.EqualFold(s.Status, SaleStatusOpen)
}

// saleCandidate is one (collection, token, sale id) triple discovered at
// level 2, before its sale state is known.
type saleCandidate struct {
	collection string
	tokenId    string
	saleId     string
}

// collectionOutcome carries everything one collection branch resolved.
// Branches never share state; each one only reports its own findings.
type collectionOutcome struct {
	collection string
	records    []SaleRecord
	skipped    int
	err        error
}

// ListOpenSales runs the full aggregation against the given marketplace
// contract. Per-record failures are skipped, a level-1 failure is fatal and
// marked errs.Aggregation.
func (a *Aggregator) ListOpenSales(ctx context.Context, marketplaceAddress string) ([]SaleRecord, error) {
	collections, err := a.authorizedCollections(ctx, marketplaceAddress)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "can't list authorized collections"), errs.Aggregation)
	}
	if len(collections) == 0 {
		return []SaleRecord{}, nil
	}

	out := make(chan collectionOutcome)
	stream := cstream.NewStream(ctx, a.concurrency, out)

	// Wait for stream to finish and close out channel
	go func() {
		defer close(out)
		_ = stream.Wait()
	}()

	go func() {
		defer stream.Close()
		for _, collection := range collections {
			collection := collection
			stream.Go(func() collectionOutcome {
				return a.collectCollection(ctx, marketplaceAddress, collection)
			})
		}
	}()

	records := make([]SaleRecord, 0)
	// The open-status filter should yield at most one open sale per token;
	// the contract does not enforce it, so the merge does.
	seen := make(map[string]struct{})
	for outcome := range out {
		if outcome.err != nil {
			logger.WarnContext(ctx, "skipping collection, can't resolve its sales",
				slogx.String("collection", outcome.collection),
				slogx.Error(outcome.err),
			)
			continue
		}
		if outcome.skipped > 0 {
			logger.DebugContext(ctx, "skipped unresolved sales in collection",
				slogx.String("collection", outcome.collection),
				slogx.Int("skipped", outcome.skipped),
			)
		}
		for _, record := range outcome.records {
			key := record.CollectionAddress + "/" + record.TokenId
			if _, ok := seen[key]; ok {
				logger.WarnContext(ctx, "duplicate open sale for token, keeping first",
					slogx.String("collection", record.CollectionAddress),
					slogx.String("tokenId", record.TokenId),
					slogx.String("saleId", record.SaleId),
				)
				continue
			}
			seen[key] = struct{}{}
			records = append(records, record)
		}
	}

	return records, nil
}

// SaleState looks up the current state of a single sale.
func (a *Aggregator) SaleState(ctx context.Context, marketplaceAddress, saleId string) (*SaleState, error) {
	var resp saleStateResponse
	query := saleStateQuery{SaleState: saleStateQueryInner{SaleId: saleId}}
	if err := a.querier.QuerySmart(ctx, marketplaceAddress, query, &resp); err != nil {
		return nil, errors.Wrapf(err, "can't query sale state, saleId: %s", saleId)
	}

	price, err := core.ParseAmount(resp.Price.Amount)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid sale price %q, saleId: %s", resp.Price.Amount, saleId)
	}

	return &SaleState{
		Status:     resp.Status,
		PriceMinor: price,
		Denom:      resp.Price.Denom,
		Seller:     resp.Seller,
	}, nil
}

// authorizedCollections is level 1 of the join: every collection contract
// authorized to list on the marketplace. Pages are followed until a short
// page returns.
func (a *Aggregator) authorizedCollections(ctx context.Context, marketplaceAddress string) ([]string, error) {
	var all []string
	var startAfter string
	for {
		query := authorizedAddressesQuery{AuthorizedAddresses: authorizedAddressesQueryInner{
			Action:     actionSendNFT,
			Limit:      a.pageLimit,
			StartAfter: startAfter,
		}}
		var page authorizedAddressesResponse
		if err := a.querier.QuerySmart(ctx, marketplaceAddress, query, &page); err != nil {
			return nil, errors.WithStack(err)
		}
		all = append(all, page.Addresses...)
		if int32(len(page.Addresses)) < a.pageLimit {
			return all, nil
		}
		startAfter = page.Addresses[len(page.Addresses)-1]
	}
}

// saleCandidates is level 2: the sale-id history of every token of one
// collection, flattened to (collection, token, sale id) triples.
func (a *Aggregator) saleCandidates(ctx context.Context, marketplaceAddress, collection string) ([]saleCandidate, error) {
	var candidates []saleCandidate
	var startAfter string
	for {
		query := saleInfosForAddressQuery{SaleInfosForAddress: saleInfosForAddressQueryInner{
			TokenAddress: collection,
			Limit:        a.pageLimit,
			StartAfter:   startAfter,
		}}
		var page saleInfosForAddressResponse
		if err := a.querier.QuerySmart(ctx, marketplaceAddress, query, &page); err != nil {
			return nil, errors.Wrapf(err, "can't query sale infos, collection: %s", collection)
		}
		for _, info := range page.SaleInfos {
			for _, saleId := range info.SaleIds {
				candidates = append(candidates, saleCandidate{
					collection: collection,
					tokenId:    info.TokenId,
					saleId:     saleId,
				})
			}
		}
		if int32(len(page.SaleInfos)) < a.pageLimit {
			return candidates, nil
		}
		startAfter = page.SaleInfos[len(page.SaleInfos)-1].TokenId
	}
}

// collectCollection resolves every candidate of one collection. Errors on a
// single candidate drop only that candidate.
func (a *Aggregator) collectCollection(ctx context.Context, marketplaceAddress, collection string) collectionOutcome {
	candidates, err := a.saleCandidates(ctx, marketplaceAddress, collection)
	if err != nil {
		return collectionOutcome{collection: collection, err: err}
	}

	outcome := collectionOutcome{collection: collection}
	for _, candidate := range candidates {
		record, err := a.resolveCandidate(ctx, marketplaceAddress, candidate)
		if err != nil {
			outcome.skipped++
			logger.DebugContext(ctx, "skipping sale, can't resolve",
				slogx.String("saleId", candidate.saleId),
				slogx.String("collection", collection),
				slogx.Error(err),
			)
			continue
		}
		if record == nil {
			// not open, filtered out
			continue
		}
		outcome.records = append(outcome.records, *record)
	}
	return outcome
}

// resolveCandidate is levels 3 and 4 for a single candidate: sale state,
// open-status filter, token info and metadata dereference. A nil record with
// nil error means the sale exists but is not open.
func (a *Aggregator) resolveCandidate(ctx context.Context, marketplaceAddress string, candidate saleCandidate) (*SaleRecord, error) {
	state, err := a.SaleState(ctx, marketplaceAddress, candidate.saleId)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !state.IsOpen() {
		return nil, nil
	}

	var info nftInfoResponse
	query := nftInfoQuery{NFTInfo: nftInfoQueryInner{TokenId: candidate.tokenId}}
	if err := a.querier.QuerySmart(ctx, candidate.collection, query, &info); err != nil {
		return nil, errors.Wrapf(err, "can't query token info, tokenId: %s", candidate.tokenId)
	}

	var metadata Metadata
	if err := a.metadata.Fetch(ctx, info.TokenURI, &metadata); err != nil {
		return nil, errors.Wrapf(err, "can't fetch token metadata, uri: %s", info.TokenURI)
	}

	return &SaleRecord{
		SaleId:            candidate.saleId,
		TokenId:           candidate.tokenId,
		CollectionAddress: candidate.collection,
		PriceMinor:        state.PriceMinor,
		Denom:             state.Denom,
		SellerAddress:     state.Seller,
		Metadata:          metadata,
	}, nil
}
