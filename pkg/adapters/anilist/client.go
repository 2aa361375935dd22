// Package anilist implements ports.CatalogGateway against the AniList GraphQL API.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/animefmt/internal/logging"
	"github.com/aretw0/animefmt/pkg/domain"
)

const (
	// DefaultEndpoint is the public AniList GraphQL endpoint.
	DefaultEndpoint = "https://graphql.anilist.co"
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 4 << 20
)

// Client talks to AniList. Safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. The client passed to
// WithHTTPClient is never modified; a copy carries the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates an AniList client.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Search returns one page of anime matching term.
// An empty result is a valid page with no items.
func (c *Client) Search(ctx context.Context, term string, page, perPage int) (*domain.SearchPage, error) {
	var resp searchResponse
	vars := map[string]any{"search": term, "page": page, "perPage": perPage}
	if err := c.do(ctx, searchQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("search %q page %d: %w", term, page, err)
	}
	if err := classify(resp.Errors); err != nil {
		return nil, fmt.Errorf("search %q page %d: %w", term, page, err)
	}
	if resp.Data.Page == nil {
		return nil, fmt.Errorf("search %q page %d: %w: response has no page", term, page, domain.ErrUpstreamUnavailable)
	}

	p := resp.Data.Page
	result := &domain.SearchPage{
		Items: make([]domain.SearchResultItem, 0, len(p.Media)),
		PageInfo: domain.PageInfo{
			Total:       p.PageInfo.Total,
			CurrentPage: p.PageInfo.CurrentPage,
			LastPage:    p.PageInfo.LastPage,
			HasNextPage: p.PageInfo.HasNextPage,
		},
	}
	for _, m := range p.Media {
		result.Items = append(result.Items, m.item())
	}
	return result, nil
}

// Media returns the full record of one anime.
func (c *Client) Media(ctx context.Context, id int) (*domain.MediaDetail, error) {
	var resp mediaResponse
	if err := c.do(ctx, mediaQuery, map[string]any{"id": id}, &resp); err != nil {
		return nil, fmt.Errorf("media %d: %w", id, err)
	}
	if err := classify(resp.Errors); err != nil {
		return nil, fmt.Errorf("media %d: %w", id, err)
	}
	if resp.Data.Media == nil {
		return nil, fmt.Errorf("media %d: %w", id, domain.ErrNotFound)
	}
	return resp.Data.Media.detail(), nil
}

func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamUnavailable, err)
	}
	c.logger.Debug("anilist request", "status", resp.StatusCode, "bytes", len(raw), "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: status %s", domain.ErrUpstreamUnavailable, resp.Status)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return nil
}

// classify maps GraphQL-level errors onto domain sentinels.
func classify(errs []graphQLError) error {
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		if e.Status != http.StatusNotFound {
			return fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, e.Message)
		}
	}
	return domain.ErrNotFound
}
