package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
)

// HeaderNewBaseURL carries the base URL the backend wants the client to use
// from now on.
const HeaderNewBaseURL = "New-Base-URL"

// baseURLManager resolves the base URL for each request and follows the
// backend's redirections. Any failed request falls back to the default URL.
type baseURLManager struct {
	identity Identity
	logger   *logger.Logger
}

func (m *baseURLManager) current(ctx context.Context) string {
	raw := m.identity.APIBaseURL(ctx)

	baseURL, err := normalizeBaseURL(raw)
	if err != nil {
		m.logger.Warn().Err(err).Str("base_url", raw).Msg("stored base url is invalid, falling back to default")
		m.reset(ctx)
		baseURL, _ = normalizeBaseURL(m.identity.APIBaseURL(ctx))
	}
	return baseURL
}

// observe applies the base URL rules to the outcome of one request.
func (m *baseURLManager) observe(ctx context.Context, status int, header string, transportErr error) {
	if transportErr != nil || status >= 400 {
		m.reset(ctx)
		return
	}

	header = strings.TrimSpace(header)
	if header == "" {
		return
	}

	newURL, err := normalizeBaseURL(header)
	if err != nil {
		m.logger.Warn().Err(err).Str("base_url", header).Msg("ignoring invalid " + HeaderNewBaseURL)
		return
	}
	if err = m.identity.SetAPIBaseURL(ctx, newURL); err != nil {
		m.logger.Err(err).Msg("failed to persist new base url")
		return
	}
	m.logger.Info().Str("base_url", newURL).Msg("switched base url")
}

func (m *baseURLManager) reset(ctx context.Context) {
	if err := m.identity.ResetAPIBaseURL(ctx); err != nil {
		m.logger.Err(err).Msg("failed to reset base url")
	}
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
