package gocd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	// requestTimeout bounds the worst-case latency of a logical upstream
	// call, retries included
	requestTimeout = 30 * time.Second

	// getRetryMax is the retry budget for idempotent GET requests
	getRetryMax = 2
)

// successBody is synthesized for responses that signal success without a
// usable body (202/204, empty body, bare {}).
var successBody = json.RawMessage(`{"success":true}`)

// Client wraps the GoCD HTTP API.
//
// The bearer token is not stored on the client: it is threaded explicitly
// through every call so that concurrent requests from different callers
// cannot observe each other's credentials.
type Client struct {
	baseURL string
	logger  *slog.Logger

	// GETs go through a retrying transport; POSTs are non-idempotent and
	// never retried.
	getClient  *http.Client
	postClient *http.Client
}

// NewClient creates a new GoCD client. serverURL is the server base URL
// including the /go context path, e.g. https://gocd.example.com/go.
// If logger is nil, slog.Default() is used.
func NewClient(serverURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = getRetryMax
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil

	// The timeout sits on the outer client so it bounds the whole retry
	// chain, not each attempt.
	getClient := rc.StandardClient()
	getClient.Timeout = requestTimeout

	return &Client{
		baseURL:    strings.TrimRight(serverURL, "/"),
		logger:     logger,
		getClient:  getClient,
		postClient: &http.Client{Timeout: requestTimeout},
	}
}

// acceptHeader builds the versioned Accept header for the GoCD API
func acceptHeader(apiVersion string) string {
	return fmt.Sprintf("application/vnd.go.cd.%s+json", apiVersion)
}

// needsConfirm reports whether the path is one of the destructive operations
// GoCD guards with a confirmation header.
func needsConfirm(path string) bool {
	return strings.Contains(path, "/cancel") ||
		strings.Contains(path, "/unpause") ||
		strings.Contains(path, "/pause")
}

// request performs an authenticated call against the versioned GoCD API.
// path is relative to <server>/api, already percent-encoded per segment.
//
// Response classification:
//   - status >= 400 fails with *APIError
//   - 202/204, an empty body, or a bare {} return a synthesized success
//   - anything else is returned as-is for the caller to decode
func (c *Client) request(ctx context.Context, token, method, path, apiVersion string, body any) (json.RawMessage, error) {
	endpoint := c.baseURL + "/api/" + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if apiVersion != "" {
		req.Header.Set("Accept", acceptHeader(apiVersion))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if needsConfirm(path) {
		req.Header.Set("X-GoCD-Confirm", "true")
	}

	c.logger.Debug("gocd request", "method", method, "path", path)

	httpClient := c.postClient
	if method == http.MethodGet {
		httpClient = c.getClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("gocd response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Endpoint:   path,
			Body:       string(respBody),
		}
	}

	if resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusNoContent {
		return successBody, nil
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) {
		// Some endpoints return an empty object on success
		return successBody, nil
	}

	return json.RawMessage(respBody), nil
}

// requestText performs an authenticated GET against an unversioned endpoint
// (the files API) and returns the raw response body as text.
func (c *Client) requestText(ctx context.Context, token, path string) (string, error) {
	endpoint := c.baseURL + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.logger.Debug("gocd request", "method", http.MethodGet, "path", path)

	resp, err := c.getClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("gocd response", "method", http.MethodGet, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Endpoint:   path,
			Body:       string(respBody),
		}
	}

	return string(respBody), nil
}
