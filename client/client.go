// Package client builds requests for the service under test and sends them.
//
// Building a request never performs I/O. Sending one makes exactly one attempt: there is no
// retry, and a failure to get any HTTP response at all is reported as a *TransportError.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// TransportError means that no HTTP response was received, for instance because the
// connection was refused, the host name did not resolve, or the request timed out.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client sends built requests.
type Client struct {
	http *resty.Client
}

// New creates a Client. Messages from the underlying HTTP client are sent to logger.
func New(timeout time.Duration, logger zerolog.Logger) *Client {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{logger})
	return &Client{http: c}
}

// Do sends the request once and returns whatever response the service gave, regardless of
// its status code.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	r := c.http.R().
		SetContext(ctx).
		SetHeaderMultiValues(req.Header)
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	start := time.Now()
	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	return &Response{
		statusCode: resp.StatusCode(),
		header:     resp.Header().Clone(),
		body:       resp.Body(),
		elapsed:    time.Since(start),
	}, nil
}

type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

// Response is what the service sent back.
type Response struct {
	statusCode int
	header     http.Header
	body       []byte
	elapsed    time.Duration
}

// NewResponse creates a Response from its parts.
func NewResponse(statusCode int, header http.Header, body []byte) *Response {
	return &Response{statusCode: statusCode, header: header, body: body}
}

func (r *Response) StatusCode() int { return r.statusCode }

func (r *Response) Header() http.Header { return r.header }

func (r *Response) Body() []byte { return r.body }

// Elapsed is the time between sending the request and reading the whole response.
func (r *Response) Elapsed() time.Duration { return r.elapsed }

// Describe renders the response for diagnostic output.
func (r *Response) Describe() string {
	s := fmt.Sprintf("HTTP %d %s\n", r.statusCode, http.StatusText(r.statusCode))
	if ct := r.header.Get("Content-Type"); ct != "" {
		s += "Content-Type: " + ct + "\n"
	}
	if len(r.body) > 0 {
		s += "\n" + string(r.body) + "\n"
	}
	return s
}
