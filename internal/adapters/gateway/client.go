// Package gateway is the single HTTP pipeline every clinic API call goes
// through: bearer injection, transient retry with linear backoff, and session
// invalidation on 401.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout        = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = time.Second
	DefaultAcceptLanguage = "tr-TR,tr;q=0.9,en;q=0.8"

	ProductionBaseURL  = "https://your-domain.com/api"
	DevelopmentBaseURL = "http://localhost:8082/api"

	maxResponseBytes = 8 << 20
)

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	AcceptLanguage string
	UserAgent      string
	// Production disables diagnostic logging.
	Production bool
}

// DefaultConfig returns the settings for the given runtime mode.
func DefaultConfig(production bool) Config {
	baseURL := DevelopmentBaseURL
	if production {
		baseURL = ProductionBaseURL
	}

	return Config{
		BaseURL:        baseURL,
		Timeout:        DefaultTimeout,
		MaxRetries:     DefaultMaxRetries,
		RetryDelay:     DefaultRetryDelay,
		AcceptLanguage: DefaultAcceptLanguage,
		Production:     production,
	}
}

// SessionInvalidator drops the persisted session and sends the user to login.
type SessionInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

func WithSessionInvalidator(invalidator SessionInvalidator) Option {
	return func(c *Client) { c.invalidator = invalidator }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithRecorder(recorder Recorder) Option {
	return func(c *Client) { c.recorder = recorder }
}

// WithSleeper replaces the backoff wait.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = sleep }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithMiddleware appends middlewares that run closest to the transport.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(c *Client) { c.extra = append(c.extra, middlewares...) }
}

type Client struct {
	cfg         Config
	httpClient  *http.Client
	tokens      TokenSource
	invalidator SessionInvalidator
	logger      *slog.Logger
	recorder    Recorder
	sleep       func(ctx context.Context, d time.Duration) error
	now         func() time.Time
	extra       []Middleware
	transport   Transport
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("gateway base url is required")
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("gateway base url %q must use http or https", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.AcceptLanguage == "" {
		cfg.AcceptLanguage = DefaultAcceptLanguage
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:   cfg,
		sleep: sleepContext,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.httpClient.Timeout == 0 {
		clone := *c.httpClient
		clone.Timeout = cfg.Timeout
		c.httpClient = &clone
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.recorder == nil {
		c.recorder = nopRecorder{}
	}

	middlewares := []Middleware{
		requestIDMiddleware(),
		bearerMiddleware(c.tokens, c.logger),
		timingMiddleware(c.now, c.diagnostics(), c.logger),
		metricsMiddleware(c.recorder, c.now),
	}
	middlewares = append(middlewares, c.extra...)
	c.transport = Chain(c.roundTrip, middlewares...)

	return c, nil
}

func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) diagnostics() bool {
	return !c.cfg.Production
}

// Send runs req through the pipeline until it succeeds, fails permanently, or
// exhausts its retries. A 401 invalidates the session and is never retried.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	for {
		resp, err := c.transport(ctx, req)
		if err == nil {
			return resp, nil
		}

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			return nil, err
		}

		if apiErr.Kind == KindUnauthorized && !req.Retried {
			c.invalidateSession(ctx, req)
			return nil, err
		}

		if apiErr.Retryable() && req.Attempt < c.cfg.MaxRetries {
			req.Attempt++
			delay := c.cfg.RetryDelay * time.Duration(req.Attempt)
			c.recorder.RecordRetry(apiErr.Kind.String())
			if c.diagnostics() {
				c.logger.Debug("api retry scheduled",
					slog.String("method", req.Method),
					slog.String("path", req.Path),
					slog.String("kind", apiErr.Kind.String()),
					slog.Int("attempt", req.Attempt),
					slog.Duration("delay", delay),
					slog.String("request_id", req.ID),
				)
			}
			if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
				return nil, errors.Join(err, sleepErr)
			}
			continue
		}

		c.logFailure(req, apiErr)
		return nil, err
	}
}

// Do sends req and decodes the response body into out. out may be nil, a
// *json.RawMessage for the untouched payload, a *string, or any JSON target.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return err
	}

	if err := decodeBody(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, NewRequest(http.MethodGet, path), out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, NewRequest(http.MethodPost, path).WithBody(body), out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, NewRequest(http.MethodPut, path).WithBody(body), out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, NewRequest(http.MethodDelete, path), out)
}

func (c *Client) invalidateSession(ctx context.Context, req *Request) {
	c.recorder.RecordSessionInvalidated()
	if c.invalidator == nil {
		return
	}

	if err := c.invalidator.Invalidate(ctx); err != nil {
		c.logger.Warn("invalidate session",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Client) logFailure(req *Request, apiErr *Error) {
	if !c.diagnostics() {
		return
	}

	c.logger.Debug("api error",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", apiErr.StatusCode),
		slog.String("kind", apiErr.Kind.String()),
		slog.String("message", apiErr.Message()),
		slog.String("body", string(apiErr.Body)),
		slog.Int("attempts", req.Attempt+1),
		slog.String("request_id", req.ID),
	)
}

func (c *Client) roundTrip(ctx context.Context, req *Request) (*Response, error) {
	endpoint := c.cfg.BaseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Method: req.Method, Path: req.Path, Err: fmt.Errorf("encode request body: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Method: req.Method, Path: req.Path, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Accept-Language", c.cfg.AcceptLanguage)
	if c.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: classifyTransportError(err), Method: req.Method, Path: req.Path, Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, &Error{Kind: classifyTransportError(err), Method: req.Method, Path: req.Path, StatusCode: httpResp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &Error{
			Kind:       classifyStatus(httpResp.StatusCode),
			Method:     req.Method,
			Path:       req.Path,
			StatusCode: httpResp.StatusCode,
			Body:       payload,
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       payload,
	}, nil
}

func decodeBody(body []byte, out any) error {
	switch target := out.(type) {
	case nil:
		return nil
	case *json.RawMessage:
		*target = append((*target)[:0], body...)
		return nil
	case *string:
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && trimmed[0] == '"' {
			return json.Unmarshal(trimmed, target)
		}
		*target = string(trimmed)
		return nil
	default:
		if len(bytes.TrimSpace(body)) == 0 {
			return nil
		}
		return json.Unmarshal(body, out)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
