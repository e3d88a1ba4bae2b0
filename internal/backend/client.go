// File: internal/backend/client.go

// Package backend is the typed REST client for the chat-triage backend. All
// responses arrive in the {success, data, message} envelope; this package
// decodes the envelope at the boundary, attaches the bearer token to every
// request, and funnels 401 responses into a single unauthorized hook so the
// whole console tears the session down the same way regardless of which call
// tripped it.
package backend

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"

    "github.com/salucare/triage-console/internal/logger"
)

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource func() string

// Client talks to the triage backend.
type Client struct {
    cfg            *Config
    httpClient     *http.Client
    token          TokenSource
    onUnauthorized func()
    log            logger.Logger
}

// NewClient validates the config and builds a client. The token source may
// not be nil; unauthenticated calls simply yield an empty token.
func NewClient(cfg *Config, token TokenSource, log logger.Logger) (*Client, error) {
    if err := cfg.Validate(); err != nil {
        return nil, &APIError{Type: ErrTypeConfig, Operation: "new_client", Message: err.Error()}
    }
    if token == nil {
        return nil, &APIError{Type: ErrTypeConfig, Operation: "new_client", Message: "token source is required"}
    }
    if log == nil {
        log = &logger.NoOpLogger{}
    }
    return &Client{
        cfg:        cfg,
        httpClient: &http.Client{Timeout: cfg.Timeout},
        token:      token,
        log:        log,
    }, nil
}

// OnUnauthorized registers the hook invoked on any 401 response. The hook
// runs at most once per response, before the error is returned to the caller.
func (c *Client) OnUnauthorized(fn func()) {
    c.onUnauthorized = fn
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
    Success bool            `json:"success"`
    Data    json.RawMessage `json:"data"`
    Message string          `json:"message"`
    Err     string          `json:"error"`
}

func (e *envelope) failureMessage() string {
    if e.Message != "" {
        return e.Message
    }
    if e.Err != "" {
        return e.Err
    }
    return "the server returned an unsuccessful response"
}

// do performs one request/response cycle. out may be nil when the caller
// only cares about success.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any, out any) error {
    endpoint := c.cfg.BaseURL + path
    if len(query) > 0 {
        endpoint += "?" + query.Encode()
    }

    var reader io.Reader
    if body != nil {
        payload, err := json.Marshal(body)
        if err != nil {
            return &APIError{Type: ErrTypeValidation, Operation: operation, Message: "could not encode request body", Cause: err}
        }
        reader = bytes.NewReader(payload)
    }

    req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
    if err != nil {
        return &APIError{Type: ErrTypeConfig, Operation: operation, Message: "could not build request", Cause: err}
    }
    req.Header.Set("Content-Type", "application/json")
    if token := c.token(); token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }

    resp, err := c.httpClient.Do(req)
    if err != nil {
        return newNetworkError(operation, err)
    }
    defer resp.Body.Close()

    raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
    if err != nil {
        return newNetworkError(operation, err)
    }

    if apiErr := c.checkStatus(operation, resp.StatusCode, raw); apiErr != nil {
        return apiErr
    }

    var env envelope
    if err := json.Unmarshal(raw, &env); err != nil {
        return newDecodeError(operation, err)
    }
    if !env.Success {
        return &APIError{Type: ErrTypeServer, Operation: operation, StatusCode: resp.StatusCode, Message: env.failureMessage()}
    }
    if out == nil || len(env.Data) == 0 {
        return nil
    }
    if err := json.Unmarshal(env.Data, out); err != nil {
        return newDecodeError(operation, err)
    }
    return nil
}

// checkStatus maps non-2xx responses onto the error taxonomy. A 401 from any
// endpoint fires the unauthorized hook before returning.
func (c *Client) checkStatus(operation string, status int, raw []byte) *APIError {
    if status >= 200 && status < 300 {
        return nil
    }

    message := "request rejected"
    var env envelope
    if err := json.Unmarshal(raw, &env); err == nil {
        message = env.failureMessage()
    }

    switch {
    case status == http.StatusUnauthorized:
        c.log.Warn("unauthorized response, tearing down session", "operation", operation)
        if c.onUnauthorized != nil {
            c.onUnauthorized()
        }
        return &APIError{Type: ErrTypeAuth, Operation: operation, StatusCode: status, Message: message}
    case status == http.StatusNotFound:
        return &APIError{Type: ErrTypeNotFound, Operation: operation, StatusCode: status, Message: message}
    case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
        return &APIError{Type: ErrTypeValidation, Operation: operation, StatusCode: status, Message: message}
    default:
        return &APIError{Type: ErrTypeServer, Operation: operation, StatusCode: status,
            Message: fmt.Sprintf("unexpected status %d: %s", status, message)}
    }
}

// get retries transient failures; GETs are idempotent against this backend.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out any) error {
    retry := &RetryConfig{MaxAttempts: c.cfg.MaxRetries, Delay: c.cfg.RetryDelay}
    if retry.MaxAttempts < 1 {
        retry.MaxAttempts = 1
    }
    return RetryWithBackoff(ctx, retry, func(ctx context.Context) error {
        return c.do(ctx, operation, http.MethodGet, path, query, nil, out)
    })
}

func (c *Client) post(ctx context.Context, operation, path string, body, out any) error {
    return c.do(ctx, operation, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, operation, path string, body, out any) error {
    return c.do(ctx, operation, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, operation, path string, body, out any) error {
    return c.do(ctx, operation, http.MethodPatch, path, nil, body, out)
}
