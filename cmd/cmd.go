package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aria-network/rwa-gateway/internal/config"
	"github.com/aria-network/rwa-gateway/pkg/logger"
	"github.com/aria-network/rwa-gateway/pkg/logger/slogx"
)

var rootCmd = &cobra.Command{
	Use:  "aria-gateway",
	Long: `Gateway service for the ARIA document-verification and tokenization dApp`,
}

func init() {
	var configFile string

	// Add global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("network", "testnet", "network to connect to, E.g. `mainnet` or `testnet`")

	// Bind flags to configuration
	config.BindPFlag("network", flags.Lookup("network"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		conf := config.Parse(configFile)

		if err := logger.Init(conf.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", conf.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	rootCmd.AddCommand(
		NewRunCommand(),
		NewVersionCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command", slogx.Error(err))
	}
}
