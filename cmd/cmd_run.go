package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/chainclient"
	"github.com/aria-network/rwa-gateway/internal/config"
	"github.com/aria-network/rwa-gateway/internal/session"
	"github.com/aria-network/rwa-gateway/internal/walletrpc"
	"github.com/aria-network/rwa-gateway/modules/marketplace"
	"github.com/aria-network/rwa-gateway/modules/staking"
	"github.com/aria-network/rwa-gateway/modules/wallet"
	"github.com/aria-network/rwa-gateway/modules/workflow"
	"github.com/aria-network/rwa-gateway/pkg/automaxprocs"
	"github.com/aria-network/rwa-gateway/pkg/errorhandler"
	"github.com/aria-network/rwa-gateway/pkg/ipfs"
	"github.com/aria-network/rwa-gateway/pkg/logger"
	"github.com/aria-network/rwa-gateway/pkg/logger/slogx"
	"github.com/aria-network/rwa-gateway/pkg/middleware/requestcontext"
	"github.com/aria-network/rwa-gateway/pkg/middleware/requestlogger"
)

func NewRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start aria-gateway service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runHandler(cmd, args)
		},
	}

	flags := runCmd.Flags()
	flags.Int("port", 0, "HTTP server port, overrides the config file")

	config.BindPFlag("http_server.port", flags.Lookup("port"))

	return runCmd
}

const shutdownTimeout = 60 * time.Second

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Validate inputs and configurations
	{
		if !conf.Network.IsSupported() {
			return errors.Wrapf(errs.Unsupported, "%q network is not supported", conf.Network.String())
		}
	}

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx = logger.WithContext(ctx, slogx.Stringer("network", conf.Network))

	injector := do.New()
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Chain query client (read-only smart queries over the REST API)
	do.Provide(injector, func(i do.Injector) (*chainclient.Client, error) {
		conf := do.MustInvoke[config.Config](i)
		client, err := chainclient.New(conf.Chain)
		if err != nil {
			return nil, errors.Wrap(err, "invalid chain client configuration")
		}
		return client, nil
	})
	do.Provide(injector, func(i do.Injector) (core.ContractQuerier, error) {
		return do.MustInvoke[*chainclient.Client](i), nil
	})

	// Signing wallet daemon
	do.Provide(injector, func(i do.Injector) (*walletrpc.Client, error) {
		conf := do.MustInvoke[config.Config](i)
		client, err := walletrpc.New(conf.Wallet)
		if err != nil {
			return nil, errors.Wrap(err, "invalid wallet configuration")
		}
		return client, nil
	})
	do.Provide(injector, func(i do.Injector) (core.ChainExecutor, error) {
		return do.MustInvoke[*walletrpc.Client](i), nil
	})

	// Metadata fetcher (IPFS gateway)
	do.Provide(injector, func(i do.Injector) (*ipfs.Fetcher, error) {
		conf := do.MustInvoke[config.Config](i)
		fetcher, err := ipfs.New(conf.IPFS.Gateway)
		if err != nil {
			return nil, errors.Wrap(err, "invalid IPFS gateway configuration")
		}
		return fetcher, nil
	})
	do.Provide(injector, func(i do.Injector) (core.MetadataFetcher, error) {
		return do.MustInvoke[*ipfs.Fetcher](i), nil
	})

	// Wallet session store, shared by all modules
	do.Provide(injector, func(i do.Injector) (*session.Store, error) {
		return session.NewStore(), nil
	})

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(fiber.Config{
			AppName:      "ARIA Gateway",
			ErrorHandler: errorhandler.NewHTTPErrorHandler(),
		})
		app.
			Use(favicon.New()).
			Use(cors.New()).
			Use(requestid.New()).
			Use(requestcontext.New(
				requestcontext.WithRequestId(),
				requestcontext.WithClientIP(conf.HTTPServer.RequestIP),
			)).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", slogx.Any("panic", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Health check
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		return app, nil
	})

	// Mount modules
	{
		modules := []struct {
			name string
			init func(do.Injector) error
		}{
			{"wallet", wallet.New},
			{"marketplace", marketplace.New},
			{"workflow", workflow.New},
			{"staking", staking.New},
		}
		for _, module := range modules {
			if err := module.init(injector); err != nil {
				return errors.Wrapf(err, "can't init module %q", module.name)
			}
			logger.InfoContext(ctx, "Initialized module", slogx.String("module", module.name))
		}
	}

	// Run API server
	httpServer := do.MustInvoke[*fiber.App](injector)
	go func() {
		// stop main process if API stopped
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			logger.PanicContext(ctx, "Something went wrong, error during running HTTP server", slogx.Error(err))
		}
	}()

	logger.InfoContext(ctx, "ARIA Gateway started")

	// Wait for interrupt signal to gracefully stop the server
	<-ctx.Done()

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	if err := httpServer.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.ErrorContext(ctx, "Failed while shutting down HTTP server", slogx.Error(err))
	}
	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}

	return nil
}
