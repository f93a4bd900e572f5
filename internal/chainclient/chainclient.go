package chainclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/internal/config"
	"github.com/aria-network/rwa-gateway/pkg/httpclient"
)

// Client issues read-only smart-contract queries through the chain's REST
// API. It carries no signing capability.
type Client struct {
	http *httpclient.Client
}

var _ core.ContractQuerier = (*Client)(nil)

func New(cfg config.ChainClient) (*Client, error) {
	if cfg.RESTEndpoint == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "chain REST endpoint is required")
	}
	client, err := httpclient.New(cfg.RESTEndpoint, httpclient.Config{Debug: cfg.Debug})
	if err != nil {
		return nil, errors.Wrap(err, "can't create chain REST client")
	}
	return &Client{http: client}, nil
}

type smartQueryResponse struct {
	Data json.RawMessage `json:"data"`
}

// QuerySmart marshals queryMsg, issues the smart query and unmarshals the
// contract's reply into out.
func (c *Client) QuerySmart(ctx context.Context, contractAddress string, queryMsg any, out any) error {
	payload, err := json.Marshal(queryMsg)
	if err != nil {
		return errors.Wrap(err, "can't marshal query message")
	}

	encoded := url.PathEscape(base64.StdEncoding.EncodeToString(payload))
	path := fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/smart/%s", contractAddress, encoded)

	resp, err := c.http.Get(ctx, path, httpclient.RequestOptions{})
	if err != nil {
		return errors.Wrapf(err, "smart query transport failure, contract: %s", contractAddress)
	}
	if resp.StatusCode() != http.StatusOK {
		return errors.Errorf("smart query rejected, contract: %s, status: %d, body: %q", contractAddress, resp.StatusCode(), string(resp.Body()))
	}

	var envelope smartQueryResponse
	if err := resp.UnmarshalBody(&envelope); err != nil {
		return errors.Wrapf(err, "can't unmarshal smart query envelope, contract: %s", contractAddress)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errors.Wrapf(err, "can't unmarshal smart query data, contract: %s", contractAddress)
	}
	return nil
}
