package wallet

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"

	"github.com/aria-network/rwa-gateway/internal/config"
	"github.com/aria-network/rwa-gateway/internal/session"
	"github.com/aria-network/rwa-gateway/internal/walletrpc"
	walletapi "github.com/aria-network/rwa-gateway/modules/wallet/api"
	walletusecase "github.com/aria-network/rwa-gateway/modules/wallet/usecase"
	"github.com/aria-network/rwa-gateway/pkg/logger"
)

func New(injector do.Injector) error {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)

	provider := do.MustInvoke[*walletrpc.Client](injector)
	sessions := do.MustInvoke[*session.Store](injector)

	walletUsecase := walletusecase.New(provider, sessions, conf.Network.ChainParams())

	httpServer := do.MustInvoke[*fiber.App](injector)
	walletHTTPHandler := walletapi.NewHTTPHandler(walletUsecase)
	if err := walletHTTPHandler.Mount(httpServer); err != nil {
		return errors.Wrap(err, "can't mount Wallet API")
	}
	logger.InfoContext(ctx, "Mounted Wallet HTTP handler")

	return nil
}
