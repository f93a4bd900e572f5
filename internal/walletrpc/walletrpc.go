package walletrpc

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common"
	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/config"
	"github.com/aria-network/rwa-gateway/pkg/httpclient"
)

// Client talks to the external signing-wallet daemon. The daemon owns the
// keys; this client only suggests the chain profile, asks for the connected
// accounts and forwards execute requests for signing and broadcasting.
type Client struct {
	http *httpclient.Client
}

var _ core.ChainExecutor = (*Client)(nil)

func New(cfg config.WalletClient) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "wallet endpoint is required")
	}
	client, err := httpclient.New(cfg.Endpoint, httpclient.Config{Debug: cfg.Debug})
	if err != nil {
		return nil, errors.Wrap(err, "can't create wallet client")
	}
	return &Client{http: client}, nil
}

type enableRequest struct {
	ChainParams *common.ChainParams `json:"chainParams"`
}

// Enable suggests the chain profile to the wallet and asks it to unlock the
// chain for signing.
func (c *Client) Enable(ctx context.Context, params *common.ChainParams) error {
	body, err := json.Marshal(enableRequest{ChainParams: params})
	if err != nil {
		return errors.WithStack(err)
	}
	resp, err := c.http.Post(ctx, "/v1/enable", httpclient.RequestOptions{Body: body})
	if err != nil {
		return errors.Wrap(err, "wallet enable transport failure")
	}
	if resp.StatusCode() != http.StatusOK {
		return errors.Errorf("wallet refused to enable chain %q, status: %d, body: %q", params.ChainID, resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

type accountsResponse struct {
	Accounts []struct {
		Address string `json:"address"`
	} `json:"accounts"`
}

// Accounts returns the addresses the wallet exposes for the enabled chain.
func (c *Client) Accounts(ctx context.Context) ([]string, error) {
	resp, err := c.http.Get(ctx, "/v1/accounts", httpclient.RequestOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "wallet accounts transport failure")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("wallet accounts request failed, status: %d", resp.StatusCode())
	}

	var out accountsResponse
	if err := resp.UnmarshalBody(&out); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal wallet accounts")
	}

	addresses := make([]string, 0, len(out.Accounts))
	for _, account := range out.Accounts {
		addresses = append(addresses, account.Address)
	}
	return addresses, nil
}

type executeRequest struct {
	SenderAddress   string          `json:"senderAddress"`
	ContractAddress string          `json:"contractAddress"`
	Msg             json.RawMessage `json:"msg"`
	Memo            string          `json:"memo,omitempty"`
	Funds           []core.Coin     `json:"funds,omitempty"`
}

// Execute forwards a contract execution to the wallet for signing and
// broadcasting. A nonzero code in the returned TxResult means the contract
// rejected the transaction; the caller decides how to surface it.
func (c *Client) Execute(ctx context.Context, senderAddress, contractAddress string, msg any, memo string, funds []core.Coin) (core.TxResult, error) {
	rawMsg, err := json.Marshal(msg)
	if err != nil {
		return core.TxResult{}, errors.Wrap(err, "can't marshal execute message")
	}
	body, err := json.Marshal(executeRequest{
		SenderAddress:   senderAddress,
		ContractAddress: contractAddress,
		Msg:             rawMsg,
		Memo:            memo,
		Funds:           funds,
	})
	if err != nil {
		return core.TxResult{}, errors.WithStack(err)
	}

	resp, err := c.http.Post(ctx, "/v1/execute", httpclient.RequestOptions{Body: body})
	if err != nil {
		return core.TxResult{}, errors.Wrapf(err, "wallet execute transport failure, contract: %s", contractAddress)
	}
	if resp.StatusCode() != http.StatusOK {
		return core.TxResult{}, errors.Errorf("wallet execute request failed, contract: %s, status: %d, body: %q", contractAddress, resp.StatusCode(), string(resp.Body()))
	}

	var result core.TxResult
	if err := resp.UnmarshalBody(&result); err != nil {
		return core.TxResult{}, errors.Wrap(err, "can't unmarshal execute result")
	}
	return result, nil
}
