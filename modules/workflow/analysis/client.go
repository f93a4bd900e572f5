package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/aria-network/rwa-gateway/common/errs"
	"github.com/aria-network/rwa-gateway/modules/workflow/workflow"
	"github.com/aria-network/rwa-gateway/pkg/httpclient"
)

// Client talks to the document-analysis backend. One call uploads the
// document and gets back the authenticity report together with the prepared
// mint transaction.
type Client struct {
	client *httpclient.Client
}

var _ workflow.Analyzer = (*Client)(nil)

func NewClient(endpoint string, debug bool) (*Client, error) {
	if endpoint == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "analysis endpoint is required")
	}
	client, err := httpclient.New(endpoint, httpclient.Config{Debug: debug})
	if err != nil {
		return nil, errors.Wrap(err, "can't create analysis client")
	}
	return &Client{client: client}, nil
}

type analyzeResponse struct {
	Success            bool            `json:"success"`
	AIReportDisplay    json.RawMessage `json:"ai_report_display"`
	TransactionPayload json.RawMessage `json:"transaction_payload"`
	IPFSLink           string          `json:"ipfs_link"`
	Error              string          `json:"error,omitempty"`
}

// AnalyzeAndPrepare uploads the document as multipart form data. A backend
// verdict of success=false is returned as an error carrying the backend's
// message verbatim, marked errs.ExecutionFailed to distinguish it from
// transport failures.
func (c *Client) AnalyzeAndPrepare(ctx context.Context, document workflow.Document, ownerAddress string, accepted func()) (*workflow.AnalysisOutcome, error) {
	form := &httpclient.MultipartForm{
		Fields: map[string]string{"owner_address": ownerAddress},
		Files: []httpclient.MultipartFile{{
			FieldName: "document",
			FileName:  document.FileName,
			Content:   bytes.NewReader(document.Content),
		}},
	}

	if accepted != nil {
		accepted()
	}

	resp, err := c.client.Post(ctx, "/analyze_and_prepare", httpclient.RequestOptions{Multipart: form})
	if err != nil {
		return nil, errors.Wrap(err, "analysis transport failure")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("analysis backend returned status %d", resp.StatusCode())
	}

	var parsed analyzeResponse
	if err := resp.UnmarshalBody(&parsed); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal analysis response")
	}
	if !parsed.Success {
		message := parsed.Error
		if message == "" {
			message = "analysis failed"
		}
		return nil, errors.Mark(errors.New(message), errs.ExecutionFailed)
	}

	return &workflow.AnalysisOutcome{
		ReportDisplay:      parsed.AIReportDisplay,
		TransactionPayload: parsed.TransactionPayload,
		EvidenceLink:       parsed.IPFSLink,
	}, nil
}
