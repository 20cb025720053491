// Package skald provides a typed Go client for the Skald knowledge-base
// API: memo storage, search, retrieval-augmented chat and document
// generation, including the streaming variants of chat and generate.
//
// A Client holds only immutable configuration, so a single instance is
// safe to share across goroutines; concurrent calls never share state.
package skald

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	skaldlogger "github.com/useskald/skald-go/pkg/logger"
)

const (
	// DefaultBaseURL is the hosted Skald API endpoint.
	DefaultBaseURL = "https://api.useskald.com"

	// DefaultTimeout bounds non-streaming requests end to end. Streaming
	// requests carry no client-side deadline; any cancellation comes from
	// the caller's context.
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for a Client.
type Config struct {
	// APIKey authenticates every request as a bearer token. Required.
	APIKey string

	// BaseURL is the API endpoint (e.g. "https://api.useskald.com").
	// Defaults to DefaultBaseURL if empty. A trailing slash is stripped
	// once at construction.
	BaseURL string

	// Timeout for non-streaming requests. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client talks to the Skald API. Create one with New.
type Client struct {
	apiKey  string
	baseURL string

	// httpClient serves unary calls with a whole-request timeout.
	// streamClient serves SSE calls, which would be killed mid-stream by
	// a client-level timeout, so it carries none.
	httpClient   *http.Client
	streamClient *http.Client

	logger *slog.Logger
}

// New creates a Skald API client. A nil logger is replaced with a no-op
// logger.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("skald API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	if logger == nil {
		logger = skaldlogger.Nop()
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		streamClient: &http.Client{},
		logger:       logger,
	}, nil
}

// do performs a single API request and decodes a 2xx JSON response into
// out. A nil body sends no payload; a nil out discards the response body.
// Non-2xx responses come back as *APIError carrying the upstream status
// and verbatim body text; connection-level failures come back as
// *TransportError. There are no retries.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req, body != nil)

	c.logger.Debug("sending request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	c.logger.Debug("received response", "method", method, "path", path, "status", resp.StatusCode)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	// Delete-style endpoints answer 2xx with no payload.
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// doStream performs a streaming POST and hands the response body to a
// Stream. The HTTP status is checked before any streaming begins, so an
// upstream failure surfaces as a plain *APIError rather than a broken
// stream.
func (c *Client) doStream(ctx context.Context, path string, body any) (*Stream, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req, true)
	req.Header.Set("Accept", "text/event-stream")

	c.logger.Debug("opening stream", "path", path)

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, ErrEmptyBody
	}

	return newStream(resp.Body), nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}

// memoPath resolves the path and query for a single-memo endpoint. The id
// segment is percent-encoded so reference ids containing slashes address
// the right resource, and the id_type query parameter is attached only
// when it differs from the server default.
func (c *Client) memoPath(id string, idType IDType) (string, url.Values, error) {
	resolved := idType
	if resolved == "" {
		resolved = IDTypeMemoUUID
	}
	if resolved != IDTypeMemoUUID && resolved != IDTypeReferenceID {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidIDType, string(idType))
	}

	path := "/api/v1/memo/" + url.PathEscape(id)

	var query url.Values
	if resolved == IDTypeReferenceID {
		query = url.Values{"id_type": []string{string(resolved)}}
	}

	return path, query, nil
}
