package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/session"
	"github.com/aria-network/rwa-gateway/modules/marketplace/marketplace"
)

type Usecase struct {
	aggregator         *marketplace.Aggregator
	executor           core.ChainExecutor
	sessions           *session.Store
	marketplaceAddress string
}

func New(aggregator *marketplace.Aggregator, executor core.ChainExecutor, sessions *session.Store, marketplaceAddress string) *Usecase {
	return &Usecase{
		aggregator:         aggregator,
		executor:           executor,
		sessions:           sessions,
		marketplaceAddress: marketplaceAddress,
	}
}

// ListOpenSales returns every open listing the aggregator can currently
// resolve. Unresolvable records are dropped, not surfaced as errors.
func (u *Usecase) ListOpenSales(ctx context.Context) ([]marketplace.SaleRecord, error) {
	records, err := u.aggregator.ListOpenSales(ctx, u.marketplaceAddress)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return records, nil
}

// Buy purchases a sale with the connected wallet, attaching funds matching
// the current on-chain price. The sale state is re-checked right before
// execution so a stale aggregation result can't buy a closed sale.
func (u *Usecase) Buy(ctx context.Context, saleId string) (core.TxResult, error) {
	buyer := u.sessions.Address()
	if buyer == "" {
		return core.TxResult{}, errors.Wrap(errs.Unauthenticated, "wallet is not connected")
	}

	state, err := u.aggregator.SaleState(ctx, u.marketplaceAddress, saleId)
	if err != nil {
		return core.TxResult{}, errors.Wrapf(err, "can't resolve sale, saleId: %s", saleId)
	}
	if !state.IsOpen() {
		return core.TxResult{}, errors.Wrapf(errs.Conflict, "sale %q is not open", saleId)
	}
	if strings.EqualFold(state.Seller, buyer) {
		return core.TxResult{}, errors.Wrap(errs.InvalidArgument, "can't buy own listing")
	}

	funds := []core.Coin{{Denom: state.Denom, Amount: state.PriceMinor}}
	result, err := u.executor.Execute(ctx, buyer, u.marketplaceAddress, marketplace.NewBuyMsg(saleId), "", funds)
	if err != nil {
		return core.TxResult{}, errors.Wrapf(err, "buy execution failed, saleId: %s", saleId)
	}
	if result.Failed() {
		return result, errors.Wrapf(errs.ExecutionFailed, "buy transaction rejected on chain, saleId: %s, code: %d", saleId, result.Code)
	}
	return result, nil
}
