// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/trace-backup/internal/config"
	"github.com/MKhiriev/trace-backup/internal/logger"
	"github.com/MKhiriev/trace-backup/internal/utils"
	"github.com/MKhiriev/trace-backup/models"
)

const (
	defaultDiagnosticTimeout = 5 * time.Second
	diagnosticRetries        = 2
	userAgent                = "trace-backup"
)

type httpDiagnosticReporter struct {
	client   *utils.HTTPClient
	endpoint string

	logger *logger.Logger
}

// NewHTTPDiagnosticReporter constructs a [DiagnosticReporter] that POSTs each
// diagnostic as JSON to cfg.Endpoint. Requests are bounded by cfg.Timeout
// and retried on transport errors and 429/5xx responses.
//
// Returns [ErrInvalidEndpoint] if cfg.Endpoint is not an absolute http(s)
// URL.
func NewHTTPDiagnosticReporter(cfg config.ClientDiagnostics, logger *logger.Logger) (DiagnosticReporter, error) {
	endpoint, err := normalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDiagnosticTimeout
	}

	client := utils.NewHTTPClient(timeout, diagnosticRetries)
	client.SetHeader("User-Agent", userAgent)

	return &httpDiagnosticReporter{client: client, endpoint: endpoint, logger: logger}, nil
}

func normalizeEndpoint(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidEndpoint)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: address must include http(s) scheme and host", ErrInvalidEndpoint)
	}

	return u.String(), nil
}

// Report implements [DiagnosticReporter]. Any non-2xx response is mapped to
// one of the package errors.
func (h *httpDiagnosticReporter) Report(ctx context.Context, d models.Diagnostic) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(d).
		Post(h.endpoint)
	if err != nil {
		h.logger.Err(err).
			Str("func", "httpDiagnosticReporter.Report").
			Str("kind", d.Kind).
			Msg("diagnostic request failed")
		return fmt.Errorf("diagnostic request: %w", err)
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).
			Str("func", "httpDiagnosticReporter.Report").
			Str("kind", d.Kind).
			Int("status", resp.StatusCode()).
			Msg("diagnostic sink rejected report")
		return err
	}

	return nil
}
