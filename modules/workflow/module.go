package workflow

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/config"
	"github.com/aria-network/rwa-gateway/internal/session"
	"github.com/aria-network/rwa-gateway/modules/workflow/analysis"
	workflowapi "github.com/aria-network/rwa-gateway/modules/workflow/api"
	wf "github.com/aria-network/rwa-gateway/modules/workflow/workflow"
	"github.com/aria-network/rwa-gateway/pkg/logger"
)

func New(injector do.Injector) error {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)

	if conf.Contracts.VerifiedRWA == "" {
		return errors.Wrap(errs.InvalidArgument, "verified RWA contract address is not configured")
	}
	if conf.Contracts.Marketplace == "" {
		return errors.Wrap(errs.InvalidArgument, "marketplace contract address is not configured")
	}

	analyzer, err := analysis.NewClient(conf.Analysis.Endpoint, conf.Analysis.Debug)
	if err != nil {
		return errors.Wrap(err, "can't create analysis client")
	}

	executor := do.MustInvoke[core.ChainExecutor](injector)
	sessions := do.MustInvoke[*session.Store](injector)

	controller := wf.NewController(analyzer, executor, sessions, wf.Contracts{
		Token:       conf.Contracts.VerifiedRWA,
		Marketplace: conf.Contracts.Marketplace,
		Splitter:    conf.Contracts.Splitter,
	}, conf.Network.ChainParams())

	httpServer := do.MustInvoke[*fiber.App](injector)
	workflowHTTPHandler := workflowapi.NewHTTPHandler(controller)
	if err := workflowHTTPHandler.Mount(httpServer); err != nil {
		return errors.Wrap(err, "can't mount Workflow API")
	}
	logger.InfoContext(ctx, "Mounted Workflow HTTP handler")

	return nil
}
