package marketplace

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/config"
	"github.com/aria-network/rwa-gateway/internal/session"
	marketplaceapi "github.com/aria-network/rwa-gateway/modules/marketplace/api"
	mktsales "github.com/aria-network/rwa-gateway/modules/marketplace/marketplace"
	marketplaceusecase "github.com/aria-network/rwa-gateway/modules/marketplace/usecase"
	"github.com/aria-network/rwa-gateway/pkg/logger"
)

func New(injector do.Injector) error {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)

	if conf.Contracts.Marketplace == "" {
		return errors.Wrap(errs.InvalidArgument, "marketplace contract address is not configured")
	}

	querier := do.MustInvoke[core.ContractQuerier](injector)
	metadata := do.MustInvoke[core.MetadataFetcher](injector)
	executor := do.MustInvoke[core.ChainExecutor](injector)
	sessions := do.MustInvoke[*session.Store](injector)

	aggregator := mktsales.NewAggregator(querier, metadata, mktsales.AggregatorOptions{
		PageLimit:   conf.Modules.Marketplace.PageLimit,
		Concurrency: conf.Modules.Marketplace.Concurrency,
	})

	// Mount API
	apiHandlers := lo.Uniq(conf.Modules.Marketplace.APIHandlers)
	if len(apiHandlers) == 0 {
		apiHandlers = []string{"http"}
	}
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			marketplaceUsecase := marketplaceusecase.New(aggregator, executor, sessions, conf.Contracts.Marketplace)
			marketplaceHTTPHandler := marketplaceapi.NewHTTPHandler(conf.Network, marketplaceUsecase)
			if err := marketplaceHTTPHandler.Mount(httpServer); err != nil {
				return errors.Wrap(err, "can't mount Marketplace API")
			}
			logger.InfoContext(ctx, "Mounted Marketplace HTTP handler")
		default:
			return errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	return nil
}
