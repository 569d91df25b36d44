// Package webhook delivers extraction reports to HTTP endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jecc/alumnex/pkg/experience"
	"github.com/jecc/alumnex/pkg/output"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// EventExtractionCompleted is the event name carried by every payload.
const EventExtractionCompleted = "extraction.completed"

// maxResponseBody caps how much of a response body is kept.
const maxResponseBody = 1 << 20

// Payload is the JSON body posted to a webhook.
type Payload struct {
	Event   string              `json:"event"`
	RunID   string              `json:"run_id"`
	Summary experience.Summary  `json:"summary"`
	Sources []string            `json:"sources"`
	SentAt  time.Time           `json:"sent_at"`
	Records []output.RecordView `json:"records,omitempty"`
}

// NewPayload builds the payload for a report. Records are only embedded
// when includeRecords is set.
func NewPayload(report *output.Report, includeRecords bool) Payload {
	p := Payload{
		Event:   EventExtractionCompleted,
		RunID:   report.Metadata.RunID,
		Summary: report.Summary,
		Sources: report.Metadata.Sources,
		SentAt:  time.Now().UTC(),
	}
	if includeRecords {
		p.Records = report.Records
	}
	return p
}

// Client sends extraction reports to webhook endpoints.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new webhook client.
func NewClient(userAgent string) *Client {
	if userAgent == "" {
		userAgent = "alumnex-webhook"
	}
	return &Client{
		httpClient: &http.Client{},
		userAgent:  userAgent,
	}
}

// SendOptions configures a webhook request.
type SendOptions struct {
	URL            string
	Token          string        // Bearer token (optional)
	Timeout        time.Duration // Request timeout (uses DefaultTimeout if zero)
	IncludeRecords bool
}

// Response contains the result of a webhook request.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success returns true if the webhook was sent successfully (2xx status).
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts a report to a webhook endpoint. Failures are reported in the
// returned Response, never as a panic.
func (c *Client) Send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	start := time.Now()
	resp := c.send(ctx, report, opts)
	resp.Duration = time.Since(start)
	return resp
}

func (c *Client) send(ctx context.Context, report *output.Report, opts SendOptions) *Response {
	body, err := json.Marshal(NewPayload(report, opts.IncludeRecords))
	if err != nil {
		return &Response{Error: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(body))
	if err != nil {
		return &Response{Error: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return &Response{Error: fmt.Errorf("request failed: %w", err)}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return &Response{StatusCode: httpResp.StatusCode, Error: fmt.Errorf("failed to read response: %w", err)}
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return resp
}
