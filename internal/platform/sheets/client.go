// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package sheets is the client for the spreadsheet-backed remote record store.

The store is an opaque external script endpoint exposing list, create, update
and delete over a flat row schema. Two deployments exist and they disagree on
both the request style and the response shape, so a [Client] is configured per
dataset with a [Style] and a [Convention] instead of branching at call sites.

Error Mapping:

  - Transport failure, non-2xx status or an undecodable body: [apperr.Upstream].
  - A decoded response signalling non-success: [apperr.Rejected] carrying the
    server message, or the generic failure text when absent.

Nothing in this package retries.
*/
package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
)

// maxBody caps how much of a response is read.
const maxBody = 16 << 20

// Style selects how mutating requests are encoded.
type Style int

const (
	// FormPost sends url-encoded POST bodies, e.g. "action=delete&id=7".
	FormPost Style = iota
	// QueryGet sends GET requests with the action in the query string.
	QueryGet
)

func (s Style) String() string {
	if s == QueryGet {
		return "query_get"
	}
	return "form_post"
}

// Dataset describes one deployment of the remote store.
type Dataset struct {
	Name       string
	Endpoint   string
	Style      Style
	Convention Convention
}

// Client talks to one dataset deployment.
type Client struct {
	dataset Dataset
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option customises a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request issued by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for failure events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records every request on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New returns a client for dataset. A nil Convention defaults to [StatusField].
func New(dataset Dataset, opts ...Option) *Client {
	if dataset.Convention == nil {
		dataset.Convention = StatusField
	}
	c := &Client{
		dataset: dataset,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dataset returns the deployment this client is bound to.
func (c *Client) Dataset() Dataset { return c.dataset }

// # Operations

// List fetches the raw JSON array of rows. Decoding is left to the caller
// because each dataset has its own row shape; see [Fetch].
func (c *Client) List(ctx context.Context) ([]byte, error) {
	started := time.Now()
	body, err := c.do(ctx, http.MethodGet, c.dataset.Endpoint, nil)
	c.observe("list", started, err)
	return body, err
}

// Fetch lists a dataset and decodes it. A body that does not decode is a
// bad response.
func Fetch[T any](ctx context.Context, c *Client, decode func([]byte) ([]T, error)) ([]T, error) {
	body, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := decode(body)
	if err != nil {
		c.logger.Warn("remote_response_malformed",
			slog.String("dataset", c.dataset.Name),
			slog.String("operation", "list"),
			slog.Any("error", err),
		)
		return nil, apperr.BadResponse(err)
	}
	return items, nil
}

// Create posts a new row and returns the id assigned by the remote store.
// Creates are always url-encoded POSTs, whatever the dataset's [Style].
func (c *Client) Create(ctx context.Context, fields map[string]string) (string, error) {
	form := url.Values{}
	for key, value := range fields {
		form.Set(key, value)
	}

	outcome, err := c.mutate(ctx, "create", http.MethodPost, c.dataset.Endpoint, form)
	if err != nil {
		return "", err
	}
	return outcome.ID, nil
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	form := url.Values{"action": {"delete"}, "id": {id}}
	method, target, body := c.shape(form)
	_, err := c.mutate(ctx, "delete", method, target, body)
	return err
}

// SetStatus updates the status column of the row with the given id.
func (c *Client) SetStatus(ctx context.Context, id, status string) error {
	form := url.Values{"action": {"update"}, "id": {id}, "status": {status}}
	method, target, body := c.shape(form)
	_, err := c.mutate(ctx, "set_status", method, target, body)
	return err
}

// # Internals

func (c *Client) shape(form url.Values) (method, target string, body url.Values) {
	if c.dataset.Style == QueryGet {
		separator := "?"
		if strings.Contains(c.dataset.Endpoint, "?") {
			separator = "&"
		}
		return http.MethodGet, c.dataset.Endpoint + separator + form.Encode(), nil
	}
	return http.MethodPost, c.dataset.Endpoint, form
}

func (c *Client) mutate(ctx context.Context, operation, method, target string, form url.Values) (Outcome, error) {
	started := time.Now()

	raw, err := c.do(ctx, method, target, form)
	if err != nil {
		c.observe(operation, started, err)
		return Outcome{}, err
	}

	outcome, err := c.dataset.Convention.Interpret(raw)
	if err != nil {
		err = apperr.BadResponse(fmt.Errorf("%s %s: %w", c.dataset.Name, operation, err))
		c.observe(operation, started, err)
		return Outcome{}, err
	}
	if !outcome.OK {
		err = apperr.Rejected(outcome.Message)
		c.observe(operation, started, err)
		return outcome, err
	}

	c.observe(operation, started, nil)
	return outcome, nil
}

func (c *Client) do(ctx context.Context, method, target string, form url.Values) ([]byte, error) {
	var payload io.Reader
	if form != nil {
		payload = strings.NewReader(form.Encode())
	}

	request, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("sheets: build request: %w", err))
	}
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("sheets: %s %s: %w", c.dataset.Name, method, err))
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBody))
	if err != nil {
		return nil, apperr.Upstream(fmt.Errorf("sheets: read body: %w", err))
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, apperr.BadResponse(fmt.Errorf("sheets: %s responded %d", c.dataset.Name, response.StatusCode))
	}
	return body, nil
}

func (c *Client) observe(operation string, started time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case apperr.HasCode(err, "UPSTREAM_REJECTED"):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeFailure
	}
	c.metrics.ObserveRemote(c.dataset.Name, operation, outcome, time.Since(started))

	if err == nil {
		return
	}

	level := slog.LevelWarn
	if errors.Is(err, context.Canceled) {
		level = slog.LevelDebug
	}
	c.logger.Log(context.Background(), level, "remote_request_failed",
		slog.String("dataset", c.dataset.Name),
		slog.String("operation", operation),
		slog.String("outcome", outcome),
		slog.Any("error", errorCause(err)),
	)
}

func errorCause(err error) error {
	if ae := apperr.As(err); ae != nil && ae.Cause != nil {
		return ae.Cause
	}
	return err
}
