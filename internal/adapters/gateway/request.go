package gateway

import (
	"net/http"
	"net/url"
	"time"
)

// Request describes one logical call. The same descriptor is resubmitted on
// retry, so Attempt and Retried survive across attempts.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header

	// ID is stamped once and reused by every attempt.
	ID        string
	StartedAt time.Time

	// Attempt counts resubmissions after transient failures.
	Attempt int
	// Retried exempts the descriptor from the 401 session policy. Callers
	// set it through WithoutSessionPolicy; the transient retry loop never
	// touches it.
	Retried bool
}

func NewRequest(method, path string) *Request {
	return &Request{Method: method, Path: path}
}

func (r *Request) WithQuery(query url.Values) *Request {
	r.Query = query
	return r
}

func (r *Request) WithBody(body any) *Request {
	r.Body = body
	return r
}

// WithoutSessionPolicy marks a call whose 401 does not mean the stored
// session expired, such as a credential check. The error is returned as is.
func (r *Request) WithoutSessionPolicy() *Request {
	r.Retried = true
	return r
}

func (r *Request) setHeader(key, value string) {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}
