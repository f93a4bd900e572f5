package staking

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"

	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/config"
	"github.com/aria-network/rwa-gateway/internal/session"
	stakingapi "github.com/aria-network/rwa-gateway/modules/staking/api"
	stakingsvc "github.com/aria-network/rwa-gateway/modules/staking/staking"
	"github.com/aria-network/rwa-gateway/pkg/logger"
)

func New(injector do.Injector) error {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)

	querier := do.MustInvoke[core.ContractQuerier](injector)
	executor := do.MustInvoke[core.ChainExecutor](injector)
	sessions := do.MustInvoke[*session.Store](injector)

	service := stakingsvc.NewService(querier, executor, sessions, stakingsvc.Apps{
		CW20:    conf.Contracts.CW20App,
		Staking: conf.Contracts.StakingApp,
	}, conf.Network.ChainParams())

	httpServer := do.MustInvoke[*fiber.App](injector)
	stakingHTTPHandler := stakingapi.NewHTTPHandler(service)
	if err := stakingHTTPHandler.Mount(httpServer); err != nil {
		return errors.Wrap(err, "can't mount Staking API")
	}
	logger.InfoContext(ctx, "Mounted Staking HTTP handler")

	return nil
}
