package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
)

// Transport performs one attempt of a request.
type Transport func(ctx context.Context, req *Request) (*Response, error)

// Middleware wraps a Transport. Middlewares run in slice order on the way out
// and in reverse order on the way back.
type Middleware func(next Transport) Transport

func Chain(transport Transport, middlewares ...Middleware) Transport {
	for i := len(middlewares) - 1; i >= 0; i-- {
		transport = middlewares[i](transport)
	}
	return transport
}

// TokenSource yields the current session token, or "" when anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Recorder observes every attempt. A nil Recorder records nothing.
type Recorder interface {
	ObserveAttempt(method string, statusCode int, duration time.Duration)
	RecordRetry(kind string)
	RecordSessionInvalidated()
}

type nopRecorder struct{}

func (nopRecorder) ObserveAttempt(string, int, time.Duration) {}
func (nopRecorder) RecordRetry(string) {}
func (nopRecorder) RecordSessionInvalidated() {}

func requestIDMiddleware() Middleware {
	return func(next Transport) Transport {
		return func(ctx context.Context, req *Request) (*Response, error) {
			if req.ID == "" {
				req.ID = uuid.NewString()
			}
			req.setHeader(headerRequestID, req.ID)
			return next(ctx, req)
		}
	}
}

// bearerMiddleware never fails the request: a missing or unreadable token
// makes the call anonymous.
func bearerMiddleware(tokens TokenSource, logger *slog.Logger) Middleware {
	return func(next Transport) Transport {
		return func(ctx context.Context, req *Request) (*Response, error) {
			token := ""
			if tokens != nil {
				value, err := tokens.Token(ctx)
				if err != nil {
					logger.Warn("read session token", slog.String("error", err.Error()))
				} else {
					token = value
				}
			}

			if token == "" {
				if req.Header != nil {
					req.Header.Del(headerAuthorization)
				}
			} else {
				req.setHeader(headerAuthorization, "Bearer "+token)
			}

			return next(ctx, req)
		}
	}
}

func timingMiddleware(now func() time.Time, diagnostics bool, logger *slog.Logger) Middleware {
	return func(next Transport) Transport {
		return func(ctx context.Context, req *Request) (*Response, error) {
			req.StartedAt = now()

			resp, err := next(ctx, req)
			if err != nil {
				return nil, err
			}

			resp.Duration = now().Sub(req.StartedAt)
			if diagnostics {
				logger.Debug("api request",
					slog.String("method", req.Method),
					slog.String("path", req.Path),
					slog.Int("status", resp.StatusCode),
					slog.Int64("duration_ms", resp.Duration.Milliseconds()),
					slog.String("request_id", req.ID),
				)
			}
			return resp, nil
		}
	}
}

func metricsMiddleware(recorder Recorder, now func() time.Time) Middleware {
	return func(next Transport) Transport {
		return func(ctx context.Context, req *Request) (*Response, error) {
			started := now()
			resp, err := next(ctx, req)

			status := 0
			if resp != nil {
				status = resp.StatusCode
			} else if err != nil {
				status = StatusOf(err)
			}
			recorder.ObserveAttempt(req.Method, status, now().Sub(started))

			return resp, err
		}
	}
}
