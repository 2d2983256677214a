// Package remote holds HTTP clients for the report generation and profile
// services.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/pathfinder/internal/store"
	"github.com/abhisek/pathfinder/internal/submission"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// DefaultHTTPClient is used when a client has no HTTPClient set. Request
// deadlines come from the caller's context.
var DefaultHTTPClient = &http.Client{Timeout: 2 * time.Minute}

// GenerationClient calls a text-generation endpoint that accepts
// {"prompt": "..."} and answers {"response": "..."} or {"error": "..."}.
type GenerationClient struct {
	URL        string
	HTTPClient *http.Client
}

// NewGenerationClient returns a client for the endpoint URL.
func NewGenerationClient(endpoint string) *GenerationClient {
	return &GenerationClient{URL: endpoint}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate implements submission.Generator. Failures are returned as
// *submission.ExternalServiceError, except context cancellation and
// deadline errors which are returned as-is.
func (c *GenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	status, body, err := doJSON(ctx, httpClient(c.HTTPClient), http.MethodPost, c.URL, generateRequest{Prompt: prompt})
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("generate: %w", ctx.Err())
		}
		return "", &submission.ExternalServiceError{Message: err.Error(), Err: err}
	}

	var payload generateResponse
	decodeErr := json.Unmarshal(body, &payload)

	if status < 200 || status > 299 {
		msg := payload.Error
		if msg == "" {
			msg = http.StatusText(status)
		}
		return "", &submission.ExternalServiceError{StatusCode: status, Message: msg}
	}
	if decodeErr != nil {
		return "", &submission.ExternalServiceError{
			StatusCode: status,
			Message:    "invalid response body",
			Err:        decodeErr,
		}
	}
	if payload.Error != "" {
		return "", &submission.ExternalServiceError{StatusCode: status, Message: payload.Error}
	}
	if payload.Response == "" {
		return submission.NoResponseText, nil
	}
	return payload.Response, nil
}

// ProfileClient pushes report summaries to a profile endpoint with PATCH
// and reads them back with GET.
type ProfileClient struct {
	URL        string
	HTTPClient *http.Client
}

// NewProfileClient returns a client for the endpoint URL.
func NewProfileClient(endpoint string) *ProfileClient {
	return &ProfileClient{URL: endpoint}
}

// SyncProfile implements submission.ProfileSyncer.
func (c *ProfileClient) SyncProfile(ctx context.Context, update submission.ProfileUpdate) error {
	if update.Recommendations == nil {
		update.Recommendations = []string{}
	}
	status, body, err := doJSON(ctx, httpClient(c.HTTPClient), http.MethodPatch, c.URL, update)
	if err != nil {
		return fmt.Errorf("profile sync: %w", err)
	}
	if status < 200 || status > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &payload)
		if payload.Error == "" {
			payload.Error = http.StatusText(status)
		}
		return fmt.Errorf("profile service returned %d: %s", status, payload.Error)
	}
	return nil
}

// Get fetches the stored profile for email from URL/{email}. A 404 yields
// nil with no error.
func (c *ProfileClient) Get(ctx context.Context, email string) (*store.Profile, error) {
	if c.URL == "" {
		return nil, errNoURL
	}
	endpoint := strings.TrimRight(c.URL, "/") + "/" + url.PathEscape(email)
	status, body, err := doJSON(ctx, httpClient(c.HTTPClient), http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("profile get: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	var payload struct {
		Profile *store.Profile `json:"profile"`
		Error   string         `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil && status >= 200 && status <= 299 {
		return nil, fmt.Errorf("profile get: decode: %w", err)
	}
	if status < 200 || status > 299 {
		if payload.Error == "" {
			payload.Error = http.StatusText(status)
		}
		return nil, fmt.Errorf("profile service returned %d: %s", status, payload.Error)
	}
	return payload.Profile, nil
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return DefaultHTTPClient
}

var errNoURL = errors.New("endpoint URL is not configured")

func doJSON(ctx context.Context, client *http.Client, method, endpoint string, in any) (int, []byte, error) {
	if endpoint == "" {
		return 0, nil, errNoURL
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
