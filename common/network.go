package common

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

var supportedNetworks = map[Network]struct{}{
	NetworkMainnet: {},
	NetworkTestnet: {},
}

// GasPriceStep is the fee granularity offered to the signing wallet.
type GasPriceStep struct {
	Low     float64 `json:"low" mapstructure:"low"`
	Average float64 `json:"average" mapstructure:"average"`
	High    float64 `json:"high" mapstructure:"high"`
}

// ChainParams holds the network-intrinsic parameters of an Andromeda chain,
// the same set a browser wallet needs for a suggest-chain call.
type ChainParams struct {
	ChainID       string       `json:"chainId"`
	ChainName     string       `json:"chainName"`
	Bech32Prefix  string       `json:"bech32Prefix"`
	CoinType      uint32       `json:"coinType"`
	DenomMinimal  string       `json:"denomMinimal"`
	DenomDisplay  string       `json:"denomDisplay"`
	DenomDecimals uint8        `json:"denomDecimals"`
	GasPriceStep  GasPriceStep `json:"gasPriceStep"`
}

var chainParams = map[Network]*ChainParams{
	NetworkMainnet: {
		ChainID:       "andromeda-1",
		ChainName:     "Andromeda",
		Bech32Prefix:  "andr",
		CoinType:      118,
		DenomMinimal:  "uandr",
		DenomDisplay:  "ANDR",
		DenomDecimals: 6,
		GasPriceStep:  GasPriceStep{Low: 0.01, Average: 0.025, High: 0.03},
	},
	NetworkTestnet: {
		ChainID:       "galileo-4",
		ChainName:     "Andromeda Testnet",
		Bech32Prefix:  "andr",
		CoinType:      118,
		DenomMinimal:  "uandr",
		DenomDisplay:  "ANDR",
		DenomDecimals: 6,
		GasPriceStep:  GasPriceStep{Low: 0.01, Average: 0.025, High: 0.03},
	},
}

func (n Network) IsSupported() bool {
	_, ok := supportedNetworks[n]
	return ok
}

func (n Network) ChainParams() *ChainParams {
	return chainParams[n]
}

func (n Network) String() string {
	return string(n)
}
