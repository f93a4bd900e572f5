package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/session"
	"github.com/aria-network/rwa-gateway/modules/marketplace/marketplace"
)

const (
	testMarketplace = "andr1marketplace"
	testBuyer       = "andr1buyer"
	testSeller      = "andr1seller"
)

// saleStateQuerier answers only sale_state queries, from a raw fixture.
type saleStateQuerier struct {
	state map[string]any
	err   error
}

func (q *saleStateQuerier) QuerySmart(_ context.Context, _ string, _ any, out any) error {
	if q.err != nil {
		return q.err
	}
	raw, err := json.Marshal(q.state)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

type noopFetcher struct{}

func (noopFetcher) Fetch(_ context.Context, _ string, _ any) error {
	return errors.New("not used")
}

type recordingExecutor struct {
	calls  int
	funds  []core.Coin
	msg    any
	result core.TxResult
	err    error
}

func (r *recordingExecutor) Execute(_ context.Context, _, _ string, msg any, _ string, funds []core.Coin) (core.TxResult, error) {
	r.calls++
	r.msg = msg
	r.funds = funds
	return r.result, r.err
}

func openSaleState(seller string) map[string]any {
	return map[string]any{
		"status": "open",
		"price":  map[string]any{"amount": "5000000", "denom": "uandr"},
		"seller": seller,
	}
}

func newBuyUsecase(querier *saleStateQuerier, executor *recordingExecutor, connected bool) *Usecase {
	sessions := session.NewStore()
	if connected {
		sessions.Connect(testBuyer)
	}
	aggregator := marketplace.NewAggregator(querier, noopFetcher{})
	return New(aggregator, executor, sessions, testMarketplace)
}

func TestBuy(t *testing.T) {
	querier := &saleStateQuerier{state: openSaleState(testSeller)}
	executor := &recordingExecutor{result: core.TxResult{TransactionHash: "ABC123"}}
	usecase := newBuyUsecase(querier, executor, true)

	result, err := usecase.Buy(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", result.TransactionHash)

	// funds must match the current on-chain price exactly
	require.Len(t, executor.funds, 1)
	assert.Equal(t, uint128.From64(5000000), executor.funds[0].Amount)
	assert.Equal(t, "uandr", executor.funds[0].Denom)

	raw, err := json.Marshal(executor.msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"buy":{"sale_id":"42"}}`, string(raw))
}

func TestBuyGuards(t *testing.T) {
	type testcase struct {
		name      string
		querier   *saleStateQuerier
		connected bool
		wantKind  error
	}

	testcases := []testcase{
		{
			name:      "no wallet session",
			querier:   &saleStateQuerier{state: openSaleState(testSeller)},
			connected: false,
			wantKind:  errs.Unauthenticated,
		},
		{
			name:      "sale not open",
			querier:   &saleStateQuerier{state: map[string]any{"status": "executed", "price": map[string]any{"amount": "1", "denom": "uandr"}, "seller": testSeller}},
			connected: true,
			wantKind:  errs.Conflict,
		},
		{
			name:      "buyer is the seller",
			querier:   &saleStateQuerier{state: openSaleState(testBuyer)},
			connected: true,
			wantKind:  errs.InvalidArgument,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			executor := &recordingExecutor{}
			usecase := newBuyUsecase(tc.querier, executor, tc.connected)

			_, err := usecase.Buy(context.Background(), "42")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantKind))
			assert.Zero(t, executor.calls)
		})
	}
}

func TestBuyRejectedOnChain(t *testing.T) {
	querier := &saleStateQuerier{state: openSaleState(testSeller)}
	executor := &recordingExecutor{result: core.TxResult{TransactionHash: "DEF", Code: 5, RawLog: "insufficient funds"}}
	usecase := newBuyUsecase(querier, executor, true)

	result, err := usecase.Buy(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ExecutionFailed))
	assert.Equal(t, uint32(5), result.Code)
}
