package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aria-network/rwa-gateway/common"
	"github.com/aria-network/rwa-gateway/pkg/logger"
	"github.com/aria-network/rwa-gateway/pkg/logger/slogx"
	"github.com/aria-network/rwa-gateway/pkg/middleware/requestcontext"
	"github.com/aria-network/rwa-gateway/pkg/middleware/requestlogger"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkTestnet,
		HTTPServer: HTTPServer{
			Port: 8080,
		},
		Chain: ChainClient{
			RESTEndpoint: "https://api.andromedaprotocol.io/rest/testnet",
		},
		IPFS: IPFS{
			Gateway: "https://ipfs.io",
		},
		Modules: Modules{
			Marketplace: Marketplace{
				PageLimit:   50,
				Concurrency: 8,
			},
		},
	}
)

type Config struct {
	Logger     logger.Config  `mapstructure:"logger"`
	Network    common.Network `mapstructure:"network"`
	HTTPServer HTTPServer     `mapstructure:"http_server"`
	Chain      ChainClient    `mapstructure:"chain"`
	Wallet     WalletClient   `mapstructure:"wallet"`
	Analysis   Analysis       `mapstructure:"analysis"`
	IPFS       IPFS           `mapstructure:"ipfs"`
	Contracts  Contracts      `mapstructure:"contracts"`
	Modules    Modules        `mapstructure:"modules"`
}

type HTTPServer struct {
	Port      int                               `mapstructure:"port"`
	Logger    requestlogger.Config              `mapstructure:"logger"`
	RequestIP requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
}

// ChainClient points at the chain's REST API used for read-only
// smart-contract queries.
type ChainClient struct {
	RESTEndpoint string `mapstructure:"rest_endpoint"`
	Debug        bool   `mapstructure:"debug"`
}

// WalletClient points at the external signing-wallet daemon. All transaction
// signing and broadcasting is delegated to it.
type WalletClient struct {
	Endpoint string `mapstructure:"endpoint"`
	Debug    bool   `mapstructure:"debug"`
}

// Analysis points at the document-analysis backend.
type Analysis struct {
	Endpoint string `mapstructure:"endpoint"`
	Debug    bool   `mapstructure:"debug"`
}

type IPFS struct {
	// Gateway is the HTTP gateway used to dereference ipfs:// URIs.
	Gateway string `mapstructure:"gateway"`
}

// Contracts holds the deployed contract addresses the gateway talks to.
type Contracts struct {
	Marketplace string `mapstructure:"marketplace"`
	VerifiedRWA string `mapstructure:"verified_rwa"`
	Collection  string `mapstructure:"collection"`
	Splitter    string `mapstructure:"splitter"`
	CW20App     string `mapstructure:"cw20_app"`
	StakingApp  string `mapstructure:"staking_app"`
}

type Modules struct {
	Marketplace Marketplace `mapstructure:"marketplace"`
}

type Marketplace struct {
	// PageLimit is the page size used for paginated contract queries. The
	// aggregator keeps following pages until a short page returns, so this
	// only tunes round-trip count, not completeness.
	PageLimit int32 `mapstructure:"page_limit"`

	// Concurrency bounds the parallel fan-out across collections.
	Concurrency int `mapstructure:"concurrency"`

	APIHandlers []string `mapstructure:"api_handlers"`
}

// Parse loads the configuration from the given file (falling back to
// ./config.yaml) and environment variables. It is parsed once per process.
func Parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		if len(configFile) > 0 && configFile[0] != "" {
			viper.SetConfigFile(configFile[0])
		} else {
			viper.AddConfigPath("./")
			viper.SetConfigName("config")
		}

		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		if err := viper.ReadInConfig(); err != nil {
			var errNotfound viper.ConfigFileNotFoundError
			if errors.As(err, &errNotfound) {
				logger.WarnContext(ctx, "config file not found, use default value", slogx.Error(err))
			} else {
				logger.PanicContext(ctx, "invalid config file", slogx.Error(err))
			}
		}

		if err := viper.Unmarshal(&config); err != nil {
			logger.PanicContext(ctx, "failed to unmarshal config", slogx.Error(err))
		}
	})

	return *config
}

// Load returns the parsed configuration.
func Load() Config {
	return Parse()
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("failed to bind pflag to config", slogx.String("key", key), slogx.Error(err))
	}
}
