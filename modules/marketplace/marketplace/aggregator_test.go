package marketplace

import (
	"context"
	"encoding/json"
	"slices"
	"sort"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-network/rwa-gateway/common/errs"
)

// fakeQuerier serves the marketplace query surface from in-memory fixtures,
// honoring limit/start_after pagination the way the contract does.
type fakeQuerier struct {
	mu sync.Mutex

	collections []string
	saleInfos   map[string][]saleInfo        // collection -> sale infos, sorted by token id
	saleStates  map[string]saleStateResponse // sale id -> state
	tokenURIs   map[string]map[string]string // collection -> token id -> uri

	failAuthorized bool
	failSaleInfos  map[string]bool
	failSaleStates map[string]bool

	authorizedCalls int
	saleInfoCalls   int
}

func (f *fakeQuerier) QuerySmart(_ context.Context, contractAddress string, queryMsg any, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(queryMsg)
	if err != nil {
		return err
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}

	switch {
	case envelope["authorized_addresses"] != nil:
		f.authorizedCalls++
		if f.failAuthorized {
			return errors.New("contract query failed")
		}
		var q authorizedAddressesQueryInner
		if err := json.Unmarshal(envelope["authorized_addresses"], &q); err != nil {
			return err
		}
		page := paginate(f.collections, q.StartAfter, q.Limit, func(address string) string { return address })
		return remarshal(authorizedAddressesResponse{Addresses: page}, out)

	case envelope["sale_infos_for_address"] != nil:
		f.saleInfoCalls++
		var q saleInfosForAddressQueryInner
		if err := json.Unmarshal(envelope["sale_infos_for_address"], &q); err != nil {
			return err
		}
		if f.failSaleInfos[q.TokenAddress] {
			return errors.New("contract query failed")
		}
		page := paginate(f.saleInfos[q.TokenAddress], q.StartAfter, q.Limit, func(info saleInfo) string { return info.TokenId })
		return remarshal(saleInfosForAddressResponse{SaleInfos: page}, out)

	case envelope["sale_state"] != nil:
		var q saleStateQueryInner
		if err := json.Unmarshal(envelope["sale_state"], &q); err != nil {
			return err
		}
		if f.failSaleStates[q.SaleId] {
			return errors.New("contract query failed")
		}
		state, ok := f.saleStates[q.SaleId]
		if !ok {
			return errors.Errorf("sale %q not found", q.SaleId)
		}
		return remarshal(state, out)

	case envelope["nft_info"] != nil:
		var q nftInfoQueryInner
		if err := json.Unmarshal(envelope["nft_info"], &q); err != nil {
			return err
		}
		uri, ok := f.tokenURIs[contractAddress][q.TokenId]
		if !ok {
			return errors.Errorf("token %q not found", q.TokenId)
		}
		return remarshal(nftInfoResponse{TokenURI: uri}, out)
	}

	return errors.Errorf("unexpected query: %s", raw)
}

func paginate[T any](items []T, startAfter string, limit int32, key func(T) string) []T {
	sorted := slices.Clone(items)
	sort.Slice(sorted, func(i, j int) bool { return key(sorted[i]) < key(sorted[j]) })
	start := 0
	if startAfter != "" {
		for i, item := range sorted {
			if key(item) > startAfter {
				start = i
				break
			}
			start = i + 1
		}
	}
	end := start + int(limit)
	if end > len(sorted) {
		end = len(sorted)
	}
	if start >= len(sorted) {
		return nil
	}
	return sorted[start:end]
}

func remarshal(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// fakeFetcher resolves token metadata from in-memory fixtures.
type fakeFetcher struct {
	metadata map[string]Metadata
	fail     map[string]bool
}

func (f *fakeFetcher) Fetch(_ context.Context, uri string, out any) error {
	if f.fail[uri] {
		return errors.New("fetch failed")
	}
	metadata, ok := f.metadata[uri]
	if !ok {
		return errors.Errorf("metadata %q not found", uri)
	}
	return remarshal(metadata, out)
}

const testMarketplace = "andr1marketplace"

func openState(price, denom, seller string) saleStateResponse {
	return saleStateResponse{Status: "open", Price: salePrice{Amount: price, Denom: denom}, Seller: seller}
}

func TestListOpenSales(t *testing.T) {
	querier := &fakeQuerier{
		collections: []string{"andr1collectiona", "andr1collectionb"},
		saleInfos: map[string][]saleInfo{
			"andr1collectiona": {
				{TokenId: "token-1", SaleIds: []string{"1", "7"}},
				{TokenId: "token-2", SaleIds: []string{"2"}},
			},
			"andr1collectionb": {
				{TokenId: "token-9", SaleIds: []string{"9"}},
			},
		},
		saleStates: map[string]saleStateResponse{
			"1": {Status: "executed", Price: salePrice{Amount: "1000000", Denom: "uandr"}, Seller: "andr1seller"},
			"7": openState("5000000", "uandr", "andr1seller"),
			"2": {Status: "cancelled", Price: salePrice{Amount: "2000000", Denom: "uandr"}, Seller: "andr1seller"},
			// status comparison is case-insensitive
			"9": {Status: "Open", Price: salePrice{Amount: "340282366920938463463374607431768211455", Denom: "uandr"}, Seller: "andr1other"},
		},
		tokenURIs: map[string]map[string]string{
			"andr1collectiona": {"token-1": "ipfs://QmTokenOne"},
			"andr1collectionb": {"token-9": "https://example.com/meta/9"},
		},
	}
	fetcher := &fakeFetcher{metadata: map[string]Metadata{
		"ipfs://QmTokenOne":          {Name: "Deed #1", Image: "ipfs://QmImageOne"},
		"https://example.com/meta/9": {Name: "Deed #9"},
	}}

	aggregator := NewAggregator(querier, fetcher)
	records, err := aggregator.ListOpenSales(context.Background(), testMarketplace)
	require.NoError(t, err)
	require.Len(t, records, 2)

	sort.Slice(records, func(i, j int) bool { return records[i].SaleId < records[j].SaleId })

	assert.Equal(t, SaleRecord{
		SaleId:            "7",
		TokenId:           "token-1",
		CollectionAddress: "andr1collectiona",
		PriceMinor:        uint128.From64(5000000),
		Denom:             "uandr",
		SellerAddress:     "andr1seller",
		Metadata:          Metadata{Name: "Deed #1", Image: "ipfs://QmImageOne"},
	}, records[0])

	assert.Equal(t, "9", records[1].SaleId)
	assert.Equal(t, "andr1collectionb", records[1].CollectionAddress)
	maxUint128 := utilsMustFromString(t, "340282366920938463463374607431768211455")
	assert.Equal(t, maxUint128, records[1].PriceMinor)
}

func utilsMustFromString(t *testing.T, s string) uint128.Uint128 {
	t.Helper()
	v, err := uint128.FromString(s)
	require.NoError(t, err)
	return v
}

func TestListOpenSalesFollowsPagination(t *testing.T) {
	collections := []string{"andr1c1", "andr1c2", "andr1c3", "andr1c4", "andr1c5"}
	saleInfos := make(map[string][]saleInfo)
	saleStates := make(map[string]saleStateResponse)
	tokenURIs := make(map[string]map[string]string)
	metadata := make(map[string]Metadata)
	for i, collection := range collections {
		tokenId := "token-" + collection
		saleId := "sale-" + collection
		uri := "ipfs://" + collection
		saleInfos[collection] = []saleInfo{{TokenId: tokenId, SaleIds: []string{saleId}}}
		saleStates[saleId] = openState("1000000", "uandr", "andr1seller")
		tokenURIs[collection] = map[string]string{tokenId: uri}
		metadata[uri] = Metadata{Name: collections[i]}
	}

	querier := &fakeQuerier{
		collections: collections,
		saleInfos:   saleInfos,
		saleStates:  saleStates,
		tokenURIs:   tokenURIs,
	}
	fetcher := &fakeFetcher{metadata: metadata}

	// page size 2 forces 3 pages at level 1
	aggregator := NewAggregator(querier, fetcher, AggregatorOptions{PageLimit: 2, Concurrency: 2})
	records, err := aggregator.ListOpenSales(context.Background(), testMarketplace)
	require.NoError(t, err)
	assert.Len(t, records, 5)
	assert.Equal(t, 3, querier.authorizedCalls)
}

func TestListOpenSalesPartialFailures(t *testing.T) {
	type testcase struct {
		name           string
		failSaleInfos  map[string]bool
		failSaleStates map[string]bool
		failMetadata   map[string]bool
		expectedSales  []string
	}

	testcases := []testcase{
		{
			name:          "failed collection is skipped, others survive",
			failSaleInfos: map[string]bool{"andr1broken": true},
			expectedSales: []string{"sale-healthy"},
		},
		{
			name:           "failed sale state drops only that sale",
			failSaleStates: map[string]bool{"sale-broken": true},
			expectedSales:  []string{"sale-healthy"},
		},
		{
			name:          "failed metadata fetch drops only that sale",
			failMetadata:  map[string]bool{"ipfs://broken": true},
			expectedSales: []string{"sale-healthy"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			querier := &fakeQuerier{
				collections: []string{"andr1broken", "andr1healthy"},
				saleInfos: map[string][]saleInfo{
					"andr1broken":  {{TokenId: "token-b", SaleIds: []string{"sale-broken"}}},
					"andr1healthy": {{TokenId: "token-h", SaleIds: []string{"sale-healthy"}}},
				},
				saleStates: map[string]saleStateResponse{
					"sale-broken":  openState("1000000", "uandr", "andr1seller"),
					"sale-healthy": openState("2000000", "uandr", "andr1seller"),
				},
				tokenURIs: map[string]map[string]string{
					"andr1broken":  {"token-b": "ipfs://broken"},
					"andr1healthy": {"token-h": "ipfs://healthy"},
				},
				failSaleInfos:  tc.failSaleInfos,
				failSaleStates: tc.failSaleStates,
			}
			fetcher := &fakeFetcher{
				metadata: map[string]Metadata{
					"ipfs://broken":  {Name: "Broken"},
					"ipfs://healthy": {Name: "Healthy"},
				},
				fail: tc.failMetadata,
			}

			aggregator := NewAggregator(querier, fetcher)
			records, err := aggregator.ListOpenSales(context.Background(), testMarketplace)
			require.NoError(t, err)

			saleIds := make([]string, 0, len(records))
			for _, record := range records {
				saleIds = append(saleIds, record.SaleId)
			}
			sort.Strings(saleIds)
			assert.Equal(t, tc.expectedSales, saleIds)
		})
	}
}

func TestListOpenSalesAuthorizedFailureIsFatal(t *testing.T) {
	querier := &fakeQuerier{failAuthorized: true}
	aggregator := NewAggregator(querier, &fakeFetcher{})

	records, err := aggregator.ListOpenSales(context.Background(), testMarketplace)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.Aggregation))
	assert.Nil(t, records)
}

func TestListOpenSalesKeepsOneOpenSalePerToken(t *testing.T) {
	querier := &fakeQuerier{
		collections: []string{"andr1collection"},
		saleInfos: map[string][]saleInfo{
			"andr1collection": {{TokenId: "token-1", SaleIds: []string{"1", "2"}}},
		},
		saleStates: map[string]saleStateResponse{
			// the contract should never report two open sales for one token,
			// the aggregator still guards against it
			"1": openState("1000000", "uandr", "andr1seller"),
			"2": openState("2000000", "uandr", "andr1seller"),
		},
		tokenURIs: map[string]map[string]string{
			"andr1collection": {"token-1": "ipfs://token1"},
		},
	}
	fetcher := &fakeFetcher{metadata: map[string]Metadata{"ipfs://token1": {Name: "Deed"}}}

	aggregator := NewAggregator(querier, fetcher)
	records, err := aggregator.ListOpenSales(context.Background(), testMarketplace)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "token-1", records[0].TokenId)
}

func TestSaleState(t *testing.T) {
	type testcase struct {
		name       string
		state      saleStateResponse
		wantErr    bool
		wantOpen   bool
		wantAmount uint128.Uint128
	}

	testcases := []testcase{
		{
			name:       "open sale",
			state:      openState("5000000", "uandr", "andr1seller"),
			wantOpen:   true,
			wantAmount: uint128.From64(5000000),
		},
		{
			name:     "status comparison ignores case",
			state:    saleStateResponse{Status: "OPEN", Price: salePrice{Amount: "1", Denom: "uandr"}},
			wantOpen: true,
		},
		{
			name:  "closed sale",
			state: saleStateResponse{Status: "executed", Price: salePrice{Amount: "1", Denom: "uandr"}},
		},
		{
			name:    "invalid price amount",
			state:   saleStateResponse{Status: "open", Price: salePrice{Amount: "not-a-number", Denom: "uandr"}},
			wantErr: true,
		},
		{
			name:    "fractional price amount is rejected, not truncated",
			state:   saleStateResponse{Status: "open", Price: salePrice{Amount: "1.5", Denom: "uandr"}},
			wantErr: true,
		},
		{
			name:    "exponent price amount is rejected, not truncated",
			state:   saleStateResponse{Status: "open", Price: salePrice{Amount: "1e3", Denom: "uandr"}},
			wantErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			querier := &fakeQuerier{saleStates: map[string]saleStateResponse{"1": tc.state}}
			aggregator := NewAggregator(querier, &fakeFetcher{})

			state, err := aggregator.SaleState(context.Background(), testMarketplace, "1")
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantOpen, state.IsOpen())
			if !tc.wantAmount.IsZero() {
				assert.Equal(t, tc.wantAmount, state.PriceMinor)
			}
		})
	}
}
