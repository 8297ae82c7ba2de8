// Package upstream implements the HTTP client for the clinic REST backend
// and the typed gateways built on top of it.
//
// Every outbound request carries the session's bearer token, read fresh
// from the session store at request time. Responses pass through a single
// interception point: the status-to-action mapping is a pure function
// (Decide) so it can be tested without a network, and the effect executor
// (intercept) applies it. A 401 from any endpoint purges the durable
// session unconditionally; the caller then sees domain.ErrUnauthorized.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/MezeLaw/iris-ui/internal/api/metrics"
	"github.com/MezeLaw/iris-ui/internal/core/domain"
	"github.com/MezeLaw/iris-ui/internal/core/ports"
)

type ctxKey int

const sidKey ctxKey = iota

// WithSessionID binds the visitor's session ID to ctx. The client reads it
// back to resolve the bearer token and to know which session a 401 tears
// down.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sidKey, sid)
}

// SessionID extracts the session ID bound by WithSessionID.
func SessionID(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sidKey).(string)
	return sid, ok
}

// Action is what the interceptor does with a response status.
type Action int

const (
	// ActionNone propagates the error (or success) unchanged.
	ActionNone Action = iota
	// ActionLog records the failure for diagnostics and propagates it.
	ActionLog
	// ActionPurgeSession erases the durable token and snapshot before
	// propagating; the error handler then forces navigation to /login.
	ActionPurgeSession
)

// Decide maps a response status to the interceptor's action. It cannot
// distinguish "your token expired" from "this resource is forbidden";
// any 401, from any endpoint, purges the session.
func Decide(status int) Action {
	switch {
	case status == http.StatusUnauthorized:
		return ActionPurgeSession
	case status == http.StatusForbidden,
		status == http.StatusNotFound,
		status >= http.StatusInternalServerError:
		return ActionLog
	default:
		return ActionNone
	}
}

// Client wraps resty with token injection and response interception.
type Client struct {
	rc    *resty.Client
	store ports.SessionStore
	log   zerolog.Logger
}

// NewClient builds the backend client. Requests time out after timeout and
// are never retried.
func NewClient(baseURL string, timeout time.Duration, store ports.SessionStore, log zerolog.Logger) *Client {
	c := &Client{store: store, log: log}
	c.rc = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0)
	c.rc.OnBeforeRequest(c.injectToken)
	c.rc.OnAfterResponse(c.intercept)
	return c
}

// injectToken attaches the Authorization header when the request's session
// has a stored token. The token is read fresh per request, never cached at
// client construction.
func (c *Client) injectToken(_ *resty.Client, req *resty.Request) error {
	sid, ok := SessionID(req.Context())
	if !ok {
		return nil
	}
	tok, err := c.store.Token(req.Context(), sid)
	if err != nil {
		return fmt.Errorf("token lookup: %w", err)
	}
	if tok != "" {
		req.SetHeader("Authorization", "Bearer "+tok)
	}
	return nil
}

// intercept executes the Decide action for every response.
func (c *Client) intercept(_ *resty.Client, resp *resty.Response) error {
	metrics.UpstreamRequestDuration.
		WithLabelValues(resp.Request.Method, strconv.Itoa(resp.StatusCode())).
		Observe(resp.Time().Seconds())

	if resp.IsSuccess() {
		return nil
	}

	apiErr := decodeError(resp)
	switch Decide(resp.StatusCode()) {
	case ActionPurgeSession:
		c.purgeSession(resp.Request.Context())
	case ActionLog:
		c.log.Error().
			Int("status", resp.StatusCode()).
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Str("error", apiErr.Message).
			Msg("backend request failed")
	}
	return apiErr
}

// purgeSession erases the durable token and snapshot for the request's
// session. Unconditional on any 401, regardless of which feature made the
// request.
func (c *Client) purgeSession(ctx context.Context) {
	sid, ok := SessionID(ctx)
	if !ok {
		return
	}
	if err := c.store.ClearAuth(ctx, sid); err != nil {
		c.log.Error().Err(err).Msg("session purge failed")
		return
	}
	metrics.SessionTeardownsTotal.WithLabelValues("unauthorized").Inc()
}

func decodeError(resp *resty.Response) *domain.APIError {
	apiErr := &domain.APIError{Status: resp.StatusCode()}
	if err := json.Unmarshal(resp.Body(), apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}

// envelope is the backend's success wrapper: {message, data}.
type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func getJSON[T any](ctx context.Context, c *Client, path string, query map[string]string) (*T, error) {
	req := c.rc.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return execute[T](req, resty.MethodGet, path)
}

func postJSON[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	return execute[T](req, resty.MethodPost, path)
}

func putJSON[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	return execute[T](c.rc.R().SetContext(ctx).SetBody(body), resty.MethodPut, path)
}

func patchJSON[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	return execute[T](c.rc.R().SetContext(ctx).SetBody(body), resty.MethodPatch, path)
}

func deleteJSON(ctx context.Context, c *Client, path string) error {
	_, err := execute[json.RawMessage](c.rc.R().SetContext(ctx), resty.MethodDelete, path)
	return err
}

func execute[T any](req *resty.Request, method, path string) (*T, error) {
	var env envelope[T]
	if _, err := req.SetResult(&env).Execute(method, path); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
