package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/aria-network/rwa-gateway/pkg/bufferpool"
	"github.com/aria-network/rwa-gateway/pkg/logger"
)

type Config struct {
	// Enable debug mode
	Debug bool

	// Default headers
	Headers map[string]string
}

type Client struct {
	baseURL *url.URL
	Config
}

func New(baseURL string, config ...Config) (*Client, error) {
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't parse base url")
	}
	var cf Config
	if len(config) > 0 {
		cf = config[0]
	}
	if len(cf.Headers) == 0 {
		cf.Headers = make(map[string]string)
	}
	return &Client{
		baseURL: parsedBaseURL,
		Config:  cf,
	}, nil
}

type RequestOptions struct {
	path     string
	method   string
	Body     []byte
	Query    url.Values
	Header   map[string]string
	FormData url.Values

	// Multipart form fields and files. When set, the request is encoded as
	// multipart/form-data and Body/FormData are ignored.
	Multipart *MultipartForm
}

// MultipartForm describes a multipart/form-data request body.
type MultipartForm struct {
	Fields map[string]string
	Files  []MultipartFile
}

type MultipartFile struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

type HttpResponse struct {
	URL string
	fasthttp.Response
}

func (r *HttpResponse) UnmarshalBody(out any) error {
	body, err := r.BodyUncompressed()
	if err != nil {
		return errors.Wrapf(err, "can't uncompress body from %v", r.URL)
	}
	switch strings.ToLower(string(r.Header.ContentType())) {
	case "application/json", "application/json; charset=utf-8":
		if err := json.Unmarshal(body, out); err != nil {
			return errors.Wrapf(err, "can't unmarshal json body from %s, %q", r.URL, string(body))
		}
		return nil
	case "text/plain", "text/plain; charset=utf-8":
		return errors.Errorf("can't unmarshal plain text %q", string(body))
	default:
		return errors.Errorf("unsupported content type: %s, contents: %v", r.Header.ContentType(), string(r.Body()))
	}
}

func (h *Client) request(ctx context.Context, reqOptions RequestOptions) (*HttpResponse, error) {
	start := time.Now()
	req := fasthttp.AcquireRequest()
	req.Header.SetMethod(reqOptions.method)
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range reqOptions.Header {
		req.Header.Set(k, v)
	}

	// JoinPath treats the path as its escaped form, keeping Path and
	// RawPath consistent so percent-escaped segments go on the wire
	// encoded exactly once.
	parsedUrl := h.BaseURL().JoinPath(reqOptions.path)
	parsedUrl.RawQuery = reqOptions.Query.Encode()

	url := parsedUrl.String()
	req.SetRequestURI(url)
	switch {
	case reqOptions.Multipart != nil:
		buf := bufferpool.Get()
		defer buf.Release()
		writer := multipart.NewWriter(buf)
		for field, value := range reqOptions.Multipart.Fields {
			if err := writer.WriteField(field, value); err != nil {
				fasthttp.ReleaseRequest(req)
				return nil, errors.Wrapf(err, "can't write multipart field %q", field)
			}
		}
		for _, file := range reqOptions.Multipart.Files {
			part, err := writer.CreateFormFile(file.FieldName, file.FileName)
			if err != nil {
				fasthttp.ReleaseRequest(req)
				return nil, errors.Wrapf(err, "can't create multipart file %q", file.FileName)
			}
			if _, err := io.Copy(part, file.Content); err != nil {
				fasthttp.ReleaseRequest(req)
				return nil, errors.Wrapf(err, "can't copy multipart file %q", file.FileName)
			}
		}
		if err := writer.Close(); err != nil {
			fasthttp.ReleaseRequest(req)
			return nil, errors.Wrap(err, "can't finalize multipart body")
		}
		req.Header.SetContentType(writer.FormDataContentType())
		req.SetBody(buf.Bytes())
	case reqOptions.Body != nil:
		req.Header.SetContentType("application/json")
		req.SetBody(reqOptions.Body)
	case reqOptions.FormData != nil:
		req.Header.SetContentType("application/x-www-form-urlencoded")
		req.SetBodyString(reqOptions.FormData.Encode())
	}

	resp := fasthttp.AcquireResponse()
	startDo := time.Now()

	defer func() {
		if h.Debug {
			logger := logger.With(
				slog.String("method", reqOptions.method),
				slog.String("url", url),
				slog.Duration("duration", time.Since(start)),
				slog.Duration("latency", time.Since(startDo)),
				slog.Int("req_content_length", req.Header.ContentLength()),
				slog.Int("status_code", resp.StatusCode()),
				slog.Int("resp_content_length", len(resp.Body())),
			)
			logger.InfoContext(ctx, "Finished make request", slog.String("package", "httpclient"))
		}

		fasthttp.ReleaseResponse(resp)
		fasthttp.ReleaseRequest(req)
	}()

	if err := fasthttp.Do(req, resp); err != nil {
		return nil, errors.Wrapf(err, "url: %s", url)
	}

	httpResponse := HttpResponse{
		URL: url,
	}
	resp.CopyTo(&httpResponse.Response)

	return &httpResponse, nil
}

// BaseURL returns the cloned base URL of the client.
func (h *Client) BaseURL() *url.URL {
	u := *h.baseURL
	return &u
}

func (h *Client) Do(ctx context.Context, method, path string, reqOptions RequestOptions) (*HttpResponse, error) {
	reqOptions.path = path
	reqOptions.method = method
	return h.request(ctx, reqOptions)
}

func (h *Client) Get(ctx context.Context, path string, reqOptions RequestOptions) (*HttpResponse, error) {
	return h.Do(ctx, fasthttp.MethodGet, path, reqOptions)
}

func (h *Client) Post(ctx context.Context, path string, reqOptions RequestOptions) (*HttpResponse, error) {
	return h.Do(ctx, fasthttp.MethodPost, path, reqOptions)
}
