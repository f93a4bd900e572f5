package staking

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"golang.org/x/sync/errgroup"

	"github.com/aria-network/rwa-gateway/common"
	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/session"
	"github.com/aria-network/rwa-gateway/pkg/decimals"
	"github.com/aria-network/rwa-gateway/pkg/logger"
	"github.com/aria-network/rwa-gateway/pkg/logger/slogx"
)

// Component names under which the app contracts register the governance
// token and its staking contract.
const (
	componentCW20    = "cw20-1"
	componentStaking = "cw20-staking-1"
)

// Apps are the deployed app contracts the component addresses resolve
// through. Both may point at the same app.
type Apps struct {
	CW20    string
	Staking string
}

// Service is the governance staking dashboard: wallet balance, staked
// position and the stake execution. Component addresses are resolved once
// and cached for the process lifetime; deployed apps don't move components.
type Service struct {
	querier  core.ContractQuerier
	executor core.ChainExecutor
	sessions *session.Store
	apps     Apps
	decimals uint8

	mu       sync.Mutex
	resolved map[string]string // component name -> contract address
}

func NewService(querier core.ContractQuerier, executor core.ChainExecutor, sessions *session.Store, apps Apps, params *common.ChainParams) *Service {
	return &Service{
		querier:  querier,
		executor: executor,
		sessions: sessions,
		apps:     apps,
		decimals: params.DenomDecimals,
		resolved: make(map[string]string),
	}
}

// Position is one wallet's governance-token standing.
type Position struct {
	TokenAddress   string
	StakingAddress string
	WalletBalance  uint128.Uint128
	StakedShare    uint128.Uint128
	StakedBalance  uint128.Uint128
}

// resolveComponent resolves a named component through its app contract.
// The app answers get_address with a bare address string.
func (s *Service) resolveComponent(ctx context.Context, appAddress, name string) (string, error) {
	s.mu.Lock()
	if address, ok := s.resolved[name]; ok {
		s.mu.Unlock()
		return address, nil
	}
	s.mu.Unlock()

	if appAddress == "" {
		return "", errors.Wrapf(errs.InvalidArgument, "app contract for component %q is not configured", name)
	}

	var address string
	query := getAddressQuery{GetAddress: getAddressQueryInner{Name: name}}
	if err := s.querier.QuerySmart(ctx, appAddress, query, &address); err != nil {
		return "", errors.Wrapf(err, "can't resolve component %q", name)
	}
	if address == "" {
		return "", errors.Errorf("app resolved component %q to an empty address", name)
	}

	s.mu.Lock()
	s.resolved[name] = address
	s.mu.Unlock()
	return address, nil
}

// Positions looks up the wallet balance and staked position of an address.
// A failed balance or staker lookup degrades to zero, the address just
// hasn't touched the token yet; a failed component resolution is an error.
func (s *Service) Positions(ctx context.Context, address string) (*Position, error) {
	tokenAddress, err := s.resolveComponent(ctx, s.apps.CW20, componentCW20)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	stakingAddress, err := s.resolveComponent(ctx, s.apps.Staking, componentStaking)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	position := &Position{
		TokenAddress:   tokenAddress,
		StakingAddress: stakingAddress,
	}

	// The two lookups are independent; each degrades to zero on its own.
	var g errgroup.Group
	g.Go(func() error {
		var balance balanceResponse
		if err := s.querier.QuerySmart(ctx, tokenAddress, balanceQuery{Balance: balanceQueryInner{Address: address}}, &balance); err != nil {
			logger.DebugContext(ctx, "balance lookup failed, treating as zero",
				slogx.String("address", address),
				slogx.Error(err),
			)
			return nil
		}
		value, err := core.ParseAmount(balance.Balance)
		if err != nil {
			return errors.Wrapf(err, "invalid balance %q", balance.Balance)
		}
		position.WalletBalance = value
		return nil
	})
	g.Go(func() error {
		var staker stakerResponse
		if err := s.querier.QuerySmart(ctx, stakingAddress, stakerQuery{Staker: stakerQueryInner{Address: address}}, &staker); err != nil {
			logger.DebugContext(ctx, "staker lookup failed, treating as not staked",
				slogx.String("address", address),
				slogx.Error(err),
			)
			return nil
		}
		if staker.Share != "" {
			value, err := core.ParseAmount(staker.Share)
			if err != nil {
				return errors.Wrapf(err, "invalid staked share %q", staker.Share)
			}
			position.StakedShare = value
		}
		if staker.Balance != "" {
			value, err := core.ParseAmount(staker.Balance)
			if err != nil {
				return errors.Wrapf(err, "invalid staked balance %q", staker.Balance)
			}
			position.StakedBalance = value
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	return position, nil
}

// Stake sends amountDisplay governance tokens (display units) to the staking
// contract through the cw20 send hook.
func (s *Service) Stake(ctx context.Context, amountDisplay string) (core.TxResult, error) {
	sender := s.sessions.Address()
	if sender == "" {
		return core.TxResult{}, errors.Wrap(errs.Unauthenticated, "wallet is not connected")
	}

	amountMinor, err := decimals.ToMinimal(amountDisplay, s.decimals)
	if err != nil {
		return core.TxResult{}, errors.WithStack(err)
	}

	tokenAddress, err := s.resolveComponent(ctx, s.apps.CW20, componentCW20)
	if err != nil {
		return core.TxResult{}, errors.WithStack(err)
	}
	stakingAddress, err := s.resolveComponent(ctx, s.apps.Staking, componentStaking)
	if err != nil {
		return core.TxResult{}, errors.WithStack(err)
	}

	rawHook, err := json.Marshal(stakeTokensHook{})
	if err != nil {
		return core.TxResult{}, errors.Wrap(err, "can't marshal stake hook")
	}
	msg := sendMsg{Send: sendMsgInner{
		Contract: stakingAddress,
		Amount:   amountMinor.String(),
		Msg:      base64.StdEncoding.EncodeToString(rawHook),
	}}

	result, err := s.executor.Execute(ctx, sender, tokenAddress, msg, "", nil)
	if err != nil {
		return core.TxResult{}, errors.Wrap(err, "stake execution failed")
	}
	if result.Failed() {
		return result, errors.Wrapf(errs.ExecutionFailed, "stake transaction rejected, code: %d, log: %s", result.Code, result.RawLog)
	}
	return result, nil
}
