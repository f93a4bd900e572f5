package workflow

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-network/rwa-gateway/common"
	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/session"
)

type stubAnalyzer struct {
	outcome *AnalysisOutcome
	err     error

	observedStatus Status // status seen right after accepted() fires
	observe        func() Status
}

func (s *stubAnalyzer) AnalyzeAndPrepare(_ context.Context, _ Document, _ string, accepted func()) (*AnalysisOutcome, error) {
	if accepted != nil {
		accepted()
		if s.observe != nil {
			s.observedStatus = s.observe()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

type executeCall struct {
	Sender   string
	Contract string
	Msg      any
	Funds    []core.Coin
}

type stubExecutor struct {
	mu     sync.Mutex
	calls  []executeCall
	result core.TxResult
	err    error
}

func (s *stubExecutor) Execute(_ context.Context, senderAddress, contractAddress string, msg any, _ string, funds []core.Coin) (core.TxResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, executeCall{Sender: senderAddress, Contract: contractAddress, Msg: msg, Funds: funds})
	return s.result, s.err
}

func (s *stubExecutor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

const (
	testOwner       = "andr1owner"
	testToken       = "andr1verifiedrwa"
	testMarketplace = "andr1marketplace"
	testSplitter    = "andr1splitter"
)

var testPayload = json.RawMessage(`{"verify_and_mint":{"token_id":"deed-001","suggested_value":"5000000"}}`)

func newTestController(analyzer Analyzer, executor core.ChainExecutor, connected bool) *Controller {
	sessions := session.NewStore()
	if connected {
		sessions.Connect(testOwner)
	}
	return NewController(analyzer, executor, sessions, Contracts{
		Token:       testToken,
		Marketplace: testMarketplace,
		Splitter:    testSplitter,
	}, common.NetworkTestnet.ChainParams())
}

func successfulOutcome() *AnalysisOutcome {
	return &AnalysisOutcome{
		ReportDisplay:      json.RawMessage(`{"confidence":0.98}`),
		TransactionPayload: testPayload,
		EvidenceLink:       "ipfs://QmEvidence",
	}
}

func TestFullJourney(t *testing.T) {
	analyzer := &stubAnalyzer{outcome: successfulOutcome()}
	executor := &stubExecutor{result: core.TxResult{TransactionHash: "ABC123", Code: 0}}
	controller := newTestController(analyzer, executor, true)
	ctx := context.Background()

	require.NoError(t, controller.SelectDocument(Document{FileName: "deed.pdf", Content: []byte("doc")}))
	assert.Equal(t, StatusIdle, controller.State().Status)

	result, err := controller.Analyze(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, controller.State().Status)
	assert.Equal(t, "ipfs://QmEvidence", result.EvidenceLink)

	result, err = controller.Mint(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusMinted, controller.State().Status)
	assert.True(t, result.Minted)
	assert.Equal(t, "deed-001", result.MintedTokenId)
	assert.Equal(t, "ABC123", result.MintTransactionHash)
	require.Len(t, controller.Gallery(), 1)

	result, err = controller.List(ctx, "10")
	require.NoError(t, err)
	assert.Equal(t, StatusListed, controller.State().Status)
	assert.False(t, controller.State().ListingInProgress)
	assert.True(t, result.Listed)
	require.NotNil(t, result.ListPrice)
	assert.Equal(t, uint128.From64(10000000), result.ListPrice.Amount)
	assert.Equal(t, "uandr", result.ListPrice.Denom)

	// listing updates the gallery entry in place, never appends
	gallery := controller.Gallery()
	require.Len(t, gallery, 1)
	assert.True(t, gallery[0].Listed)
	assert.Equal(t, "deed-001", gallery[0].MintedTokenId)

	// mint executed the prepared payload verbatim on the token contract,
	// listing went through the token contract as well (cw721 send_nft)
	require.Equal(t, 2, executor.callCount())
	assert.Equal(t, testToken, executor.calls[0].Contract)
	assert.Equal(t, testPayload, executor.calls[0].Msg)
	assert.Equal(t, testToken, executor.calls[1].Contract)
}

func TestAnalyzeFailureReturnsToIdle(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.Mark(errors.New("low confidence"), errs.ExecutionFailed)}
	controller := newTestController(analyzer, &stubExecutor{}, true)

	require.NoError(t, controller.SelectDocument(Document{FileName: "deed.pdf", Content: []byte("doc")}))
	_, err := controller.Analyze(context.Background())
	require.Error(t, err)

	snapshot := controller.State()
	assert.Equal(t, StatusIdle, snapshot.Status)
	assert.Equal(t, "low confidence", snapshot.Errors[ZoneAnalysis])
	assert.Nil(t, snapshot.Result)
}

func TestMintRejectionRevertsToReady(t *testing.T) {
	analyzer := &stubAnalyzer{outcome: successfulOutcome()}
	executor := &stubExecutor{result: core.TxResult{TransactionHash: "DEF456", Code: 5, RawLog: "insufficient funds"}}
	controller := newTestController(analyzer, executor, true)
	ctx := context.Background()

	require.NoError(t, controller.SelectDocument(Document{FileName: "deed.pdf", Content: []byte("doc")}))
	_, err := controller.Analyze(ctx)
	require.NoError(t, err)

	_, err = controller.Mint(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ExecutionFailed))

	snapshot := controller.State()
	assert.Equal(t, StatusReady, snapshot.Status)
	assert.Contains(t, snapshot.Errors[ZoneMinting], "insufficient funds")
	assert.Empty(t, controller.Gallery())

	// a later attempt clears the zone error before dispatching
	executor.mu.Lock()
	executor.result = core.TxResult{TransactionHash: "GHI789", Code: 0}
	executor.mu.Unlock()
	_, err = controller.Mint(ctx)
	require.NoError(t, err)
	assert.Empty(t, controller.State().Errors[ZoneMinting])
}

func TestMintWithoutAnalysisRejectedLocally(t *testing.T) {
	executor := &stubExecutor{}
	controller := newTestController(&stubAnalyzer{}, executor, true)

	_, err := controller.Mint(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.InvalidArgument))
	assert.Zero(t, executor.callCount())
}

func TestListValidation(t *testing.T) {
	type testcase struct {
		name  string
		price string
	}

	testcases := []testcase{
		{name: "zero price", price: "0"},
		{name: "negative price", price: "-1"},
		{name: "not a number", price: "ten"},
		{name: "too many decimal places", price: "0.0000001"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := &stubAnalyzer{outcome: successfulOutcome()}
			executor := &stubExecutor{result: core.TxResult{TransactionHash: "ABC123"}}
			controller := newTestController(analyzer, executor, true)
			ctx := context.Background()

			require.NoError(t, controller.SelectDocument(Document{FileName: "deed.pdf", Content: []byte("doc")}))
			_, err := controller.Analyze(ctx)
			require.NoError(t, err)
			_, err = controller.Mint(ctx)
			require.NoError(t, err)
			callsBefore := executor.callCount()

			_, err = controller.List(ctx, tc.price)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.InvalidArgument))
			assert.Equal(t, callsBefore, executor.callCount())
			assert.Equal(t, StatusMinted, controller.State().Status)
		})
	}
}

func TestListFailureStaysMinted(t *testing.T) {
	analyzer := &stubAnalyzer{outcome: successfulOutcome()}
	executor := &stubExecutor{result: core.TxResult{TransactionHash: "ABC123"}}
	controller := newTestController(analyzer, executor, true)
	ctx := context.Background()

	require.NoError(t, controller.SelectDocument(Document{FileName: "deed.pdf", Content: []byte("doc")}))
	_, err := controller.Analyze(ctx)
	require.NoError(t, err)
	_, err = controller.Mint(ctx)
	require.NoError(t, err)

	executor.mu.Lock()
	executor.result = core.TxResult{TransactionHash: "XYZ", Code: 3, RawLog: "sale already exists"}
	executor.mu.Unlock()

	_, err = controller.List(ctx, "10")
	require.Error(t, err)

	snapshot := controller.State()
	assert.Equal(t, StatusMinted, snapshot.Status)
	assert.False(t, snapshot.ListingInProgress)
	assert.Contains(t, snapshot.Errors[ZoneListing], "sale already exists")

	gallery := controller.Gallery()
	require.Len(t, gallery, 1)
	assert.False(t, gallery[0].Listed)
}

func TestSelectDocumentResetsJourney(t *testing.T) {
	analyzer := &stubAnalyzer{outcome: successfulOutcome()}
	executor := &stubExecutor{result: core.TxResult{TransactionHash: "ABC123"}}
	controller := newTestController(analyzer, executor, true)
	ctx := context.Background()

	require.NoError(t, controller.SelectDocument(Document{FileName: "first.pdf", Content: []byte("doc")}))
	_, err := controller.Analyze(ctx)
	require.NoError(t, err)
	_, err = controller.Mint(ctx)
	require.NoError(t, err)
	require.Equal(t, StatusMinted, controller.State().Status)

	require.NoError(t, controller.SelectDocument(Document{FileName: "second.pdf", Content: []byte("doc2")}))

	snapshot := controller.State()
	assert.Equal(t, StatusIdle, snapshot.Status)
	assert.Equal(t, "second.pdf", snapshot.DocumentName)
	assert.Nil(t, snapshot.Result)

	// the gallery is session-scoped and survives the reset
	assert.Len(t, controller.Gallery(), 1)
}

func TestOperationsRequireConnectedWallet(t *testing.T) {
	executor := &stubExecutor{}
	controller := newTestController(&stubAnalyzer{}, executor, false)
	ctx := context.Background()

	err := controller.SelectDocument(Document{FileName: "deed.pdf", Content: []byte("doc")})
	assert.True(t, errors.Is(err, errs.Unauthenticated))

	_, err = controller.Analyze(ctx)
	assert.True(t, errors.Is(err, errs.Unauthenticated))

	_, err = controller.Mint(ctx)
	assert.True(t, errors.Is(err, errs.Unauthenticated))

	_, err = controller.List(ctx, "10")
	assert.True(t, errors.Is(err, errs.Unauthenticated))

	assert.Zero(t, executor.callCount())
}

func TestAnalyzePassesThroughUploading(t *testing.T) {
	analyzer := &stubAnalyzer{outcome: successfulOutcome()}
	controller := newTestController(analyzer, &stubExecutor{}, true)
	analyzer.observe = func() Status { return controller.State().Status }

	require.NoError(t, controller.SelectDocument(Document{FileName: "deed.pdf", Content: []byte("doc")}))
	_, err := controller.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusUploading, analyzer.observedStatus)
	assert.Equal(t, StatusReady, controller.State().Status)
}

func TestAnalyzeWithoutPayloadFails(t *testing.T) {
	analyzer := &stubAnalyzer{outcome: &AnalysisOutcome{EvidenceLink: "ipfs://QmEvidence"}}
	controller := newTestController(analyzer, &stubExecutor{}, true)

	require.NoError(t, controller.SelectDocument(Document{FileName: "deed.pdf", Content: []byte("doc")}))
	_, err := controller.Analyze(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusIdle, controller.State().Status)
}
