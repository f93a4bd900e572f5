package ipfs

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/core"
	"github.com/aria-network/rwa-gateway/pkg/httpclient"
)

const ipfsScheme = "ipfs://"

// Fetcher dereferences content-addressed URIs through an HTTP gateway.
// ipfs:// URIs are rewritten onto the configured gateway; plain http(s)
// URIs are fetched as-is.
type Fetcher struct {
	gateway *httpclient.Client
}

var _ core.MetadataFetcher = (*Fetcher)(nil)

func New(gatewayURL string) (*Fetcher, error) {
	if gatewayURL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "ipfs gateway url is required")
	}
	gateway, err := httpclient.New(gatewayURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't create ipfs gateway client")
	}
	return &Fetcher{gateway: gateway}, nil
}

// GatewayPath rewrites an ipfs:// URI to the gateway path serving the same
// content. Non-ipfs URIs are returned unchanged.
func GatewayPath(uri string) string {
	if !strings.HasPrefix(uri, ipfsScheme) {
		return uri
	}
	return "/ipfs/" + strings.TrimPrefix(uri, ipfsScheme)
}

// Fetch dereferences uri and unmarshals the JSON document into out.
func (f *Fetcher) Fetch(ctx context.Context, uri string, out any) error {
	client := f.gateway
	path := GatewayPath(uri)

	if !strings.HasPrefix(uri, ipfsScheme) {
		parsed, err := url.Parse(uri)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return errors.Wrapf(errs.InvalidArgument, "unsupported metadata uri %q", uri)
		}
		origin := *parsed
		origin.Path, origin.RawQuery = "", ""
		client, err = httpclient.New(origin.String())
		if err != nil {
			return errors.Wrapf(err, "can't create client for %q", uri)
		}
		path = parsed.Path
	}

	resp, err := client.Get(ctx, path, httpclient.RequestOptions{})
	if err != nil {
		return errors.Wrapf(err, "metadata fetch transport failure, uri: %s", uri)
	}
	if resp.StatusCode() != http.StatusOK {
		return errors.Errorf("metadata fetch failed, uri: %s, status: %d", uri, resp.StatusCode())
	}
	if err := resp.UnmarshalBody(out); err != nil {
		return errors.Wrapf(err, "can't unmarshal metadata, uri: %s", uri)
	}
	return nil
}
