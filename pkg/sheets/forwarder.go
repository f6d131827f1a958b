// Package sheets forwards form submissions to the spreadsheet webhook
// (a Google Apps Script web app) without exposing its URL or shared
// secret to the browser.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SecretField is the payload key the receiving script checks.
const SecretField = "secret"

// maxResponseBytes caps how much of the upstream body is relayed.
const maxResponseBytes = 1 << 20

var ErrNotConfigured = errors.New("sheets: webhook URL is not configured")

// UpstreamError is returned when the webhook could not be reached or
// answered with an error status.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sheets: upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("sheets: upstream returned status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type Options struct {
	WebhookURL string
	Secret     string
	Production bool
	Timeout    time.Duration
	Fallback   *FallbackWriter
	Client     *http.Client
}

type Forwarder struct {
	webhookURL string
	secret     string
	production bool
	client     *http.Client
	fallback   *FallbackWriter
}

// Result describes what happened to a forwarded payload.
type Result struct {
	StatusCode   int
	ContentType  string
	Body         []byte
	StoredLocal  bool
	FallbackPath string
}

func NewForwarder(opts Options) *Forwarder {
	client := opts.Client
	if client == nil {
		// The default redirect policy turns the script's 302 into a GET on
		// the result URL, which is what Apps Script expects.
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Forwarder{
		webhookURL: opts.WebhookURL,
		secret:     opts.Secret,
		production: opts.Production,
		client:     client,
		fallback:   opts.Fallback,
	}
}

func (f *Forwarder) Configured() bool {
	return f.webhookURL != ""
}

// Forward sends payload to the webhook. Without a webhook URL it fails in
// production and writes to the local fallback file otherwise. The caller's
// map is never modified.
func (f *Forwarder) Forward(ctx context.Context, payload map[string]interface{}) (*Result, error) {
	if !f.Configured() {
		if f.production || f.fallback == nil {
			return nil, ErrNotConfigured
		}
		path, err := f.fallback.Append(payload)
		if err != nil {
			return nil, err
		}
		return &Result{StatusCode: http.StatusOK, StoredLocal: true, FallbackPath: path}, nil
	}

	body := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body[SecretField] = f.secret

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("sheets: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sheets: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	return &Result{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
