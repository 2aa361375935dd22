package anilist

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/animefmt/internal/logging"
)

// DefaultProbeTimeout bounds a cover probe.
const DefaultProbeTimeout = 5 * time.Second

// CoverProbe implements ports.CoverProbe with a HEAD request.
type CoverProbe struct {
	http   *http.Client
	logger *slog.Logger
}

// NewCoverProbe creates a probe. A nil client uses one with DefaultProbeTimeout.
func NewCoverProbe(hc *http.Client, logger *slog.Logger) *CoverProbe {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultProbeTimeout}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CoverProbe{http: hc, logger: logger}
}

// Reachable reports whether url answers a HEAD request with a 2xx status.
func (p *CoverProbe) Reachable(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		p.logger.Debug("cover probe: bad url", "url", url, "err", err)
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Debug("cover probe failed", "url", url, "err", err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
