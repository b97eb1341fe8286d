package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the current bearer token. An empty string means the
// caller is unauthenticated and no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// Client is the HTTP client for the remote ledger service. Every response
// passes through the normalizing parsers in responses.go before reaching
// the rest of the console.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a ledger Client. The timeout bounds every call so a
// hung request can never pin a workflow's in-flight flag.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// Make sure we conform to the interface
var _ API = (*Client)(nil)

// call issues one request and decodes the standard response envelope.
// Transport failures map to *NetworkError, non-success responses to
// *ServerError (401/403 matching ErrUnauthorized), and undecodable success
// bodies to *MalformedResponseError.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any, op string) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	// The envelope is decoded even on error statuses so the server's own
	// message can be surfaced verbatim.
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return nil, &MalformedResponseError{Endpoint: path, Reason: "response body is not valid JSON"}
	}
	if !bool(env.Status) {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, op string) (*envelope, error) {
	return c.call(ctx, http.MethodGet, path, query, nil, op)
}

func (c *Client) post(ctx context.Context, path string, body any, op string) (*envelope, error) {
	return c.call(ctx, http.MethodPost, path, nil, body, op)
}
