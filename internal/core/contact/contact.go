// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package contact relays project-idea submissions to the site owner's inbox.

The relay is a form-to-mail service that accepts JSON; nothing is stored
locally.
*/
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
	"github.com/aanchalalytcs/showcase/internal/platform/metrics"
	"github.com/aanchalalytcs/showcase/internal/platform/validate"
)

const (
	// Subject is the mail subject set on every relayed idea.
	Subject = "New Project Idea Submission"
	// Template selects the relay's tabular mail layout.
	Template = "table"

	// SuccessMessage is shown to the visitor after a successful relay.
	SuccessMessage = "Idea sent successfully! I'll get back to you soon."

	dataset = "contact"
)

// # Domain Model

// Idea is the payload of the project-idea form.
type Idea struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Idea  string `json:"idea"`
}

// Validate requires every field and a well-formed email address.
func (i Idea) Validate() error {
	return (&validate.Validator{}).
		Required("name", i.Name, "Please fill all fields.").
		Required("email", i.Email, "Please fill all fields.").
		Required("idea", i.Idea, "Please fill all fields.").
		Email("email", strings.TrimSpace(i.Email)).
		Err()
}

// relayPayload is the relay's wire format.
type relayPayload struct {
	Name     string `json:"Name"`
	Email    string `json:"Email"`
	Idea     string `json:"Idea"`
	Subject  string `json:"_subject"`
	Template string `json:"_template"`
}

// # Service Layer

// Option customises a [Service].
type Option func(*Service)

// WithHTTPClient overrides the HTTP client used to reach the relay.
func WithHTTPClient(hc *http.Client) Option {
	return func(service *Service) { service.http = hc }
}

// WithMetrics records relay request metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(service *Service) { service.metrics = m }
}

// Service sends ideas to the relay.
type Service struct {
	relayURL string
	http     *http.Client
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewService constructs a new [Service] posting to relayURL.
func NewService(relayURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		relayURL: relayURL,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

/*
Send validates the idea and posts it to the relay.

Returns:
  - error: validation errors before any request; apperr.Upstream for transport
    failures and non-2xx responses
*/
func (service *Service) Send(ctx context.Context, idea Idea) error {
	if err := idea.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(relayPayload{
		Name:     strings.TrimSpace(idea.Name),
		Email:    strings.TrimSpace(idea.Email),
		Idea:     strings.TrimSpace(idea.Idea),
		Subject:  Subject,
		Template: Template,
	})
	if err != nil {
		return fmt.Errorf("contact: encode payload: %w", err)
	}

	started := time.Now()
	err = service.post(ctx, payload)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		service.logger.Warn("contact_relay_failed", slog.Any("error", err))
	}
	service.metrics.ObserveRemote(dataset, "send", outcome, time.Since(started))
	if err != nil {
		return apperr.Upstream(err)
	}

	service.logger.Info("contact_relayed")
	return nil
}

func (service *Service) post(ctx context.Context, payload []byte) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, service.relayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("contact: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := service.http.Do(request)
	if err != nil {
		return fmt.Errorf("contact: post: %w", err)
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 64<<10))

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("contact: relay responded %d", response.StatusCode)
	}
	return nil
}
