// Package client talks to the URL-shortening backend.
//
// It owns the wire contract: request shapes, the tolerated response shapes
// and the mapping of HTTP outcomes to errors that can be shown to a user
// as they are.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MikhailRaia/url-shortener-client/internal/logger"
	"github.com/MikhailRaia/url-shortener-client/internal/model"
)

const (
	shortenPath = "/api/shorten"
	expandPath  = "/api/expand/{code}"
)

var (
	ErrUnexpectedResponse = errors.New("unexpected server response")
	ErrNoURL              = errors.New("no URL found for this code")
	ErrUnknownCode        = errors.New("unknown code — this short URL does not exist")
)

// ServerError is a non-success answer to a shorten call.
// Message is the response body as sent by the backend.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "error while shortening"
	}
	return e.Message
}

// StatusError is an expand answer with a status the client has no meaning for.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d)", e.Status)
}

// Expansion is the resolved original URL of a short code.
type Expansion struct {
	URL string
	// Redirected reports that the URL came from a Location header rather than a JSON body.
	Redirected bool
}

// Client is safe for concurrent use.
type Client struct {
	api        *resty.Client
	noRedirect *resty.Client
}

// Option configures a Client.
type Option func(*resty.Client)

// WithTimeout bounds every backend call. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// WithTransport replaces the HTTP transport, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *resty.Client) {
		c.SetTransport(rt)
	}
}

// New builds a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	noRedirect := newResty(baseURL, opts)
	noRedirect.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	return &Client{
		api:        newResty(baseURL, opts),
		noRedirect: noRedirect,
	}
}

func newResty(baseURL string, opts []Option) *resty.Client {
	c := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		OnAfterResponse(logger.LogResponse).
		OnError(logger.LogError)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func newRequest(ctx context.Context, c *resty.Client) *resty.Request {
	req := c.R().SetContext(ctx)
	if id := RequestID(ctx); id != "" {
		req.SetHeader(logger.RequestIDHeader, id)
	}
	return req
}

// Shorten asks the backend for a short URL of originalURL.
func (c *Client) Shorten(ctx context.Context, originalURL string) (string, error) {
	resp, err := newRequest(ctx, c.api).
		SetHeader("Content-Type", "application/json").
		SetBody(model.ShortenRequest{OriginalURL: originalURL}).
		Post(shortenPath)
	if err != nil {
		return "", fmt.Errorf("shorten request failed: %w", err)
	}

	if !resp.IsSuccess() {
		return "", &ServerError{
			Status:  resp.StatusCode(),
			Message: strings.TrimSpace(resp.String()),
		}
	}

	var body model.ShortenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		// A mistyped field still leaves the others decoded.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return "", fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
		}
	}

	link := body.Link()
	if link == "" {
		return "", ErrUnexpectedResponse
	}

	return link, nil
}

// Expand resolves a short code to its original URL.
// Redirects are not followed; a redirect's Location is the answer.
func (c *Client) Expand(ctx context.Context, code string) (Expansion, error) {
	resp, err := newRequest(ctx, c.noRedirect).
		SetPathParam("code", code).
		Get(expandPath)
	if err != nil {
		return Expansion{}, fmt.Errorf("expand request failed: %w", err)
	}

	status := resp.StatusCode()

	if status >= http.StatusMultipleChoices && status < http.StatusBadRequest {
		if location := resp.Header().Get("Location"); location != "" {
			return Expansion{URL: location, Redirected: true}, nil
		}
	}

	switch {
	case resp.IsSuccess():
		var body model.ExpandResponse
		// A body that is not JSON counts as an empty answer.
		_ = json.Unmarshal(resp.Body(), &body)

		link := body.Link()
		if link == "" {
			return Expansion{}, ErrNoURL
		}
		return Expansion{URL: link}, nil
	case status == http.StatusNotFound:
		return Expansion{}, ErrUnknownCode
	default:
		return Expansion{}, &StatusError{Status: status}
	}
}
