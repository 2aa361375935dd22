package ports

import (
	"context"

	"github.com/aretw0/animefmt/pkg/domain"
)

// CatalogGateway executes searches and lookups against a remote metadata service.
// Implementations must never panic past this boundary; every failure is an error
// wrapping domain.ErrUpstreamUnavailable or domain.ErrNotFound.
type CatalogGateway interface {
	// Search returns one page of results for term. Pages start at 1.
	Search(ctx context.Context, term string, page, perPage int) (*domain.SearchPage, error)

	// Media returns the full entry for id.
	Media(ctx context.Context, id int) (*domain.MediaDetail, error)
}

// CoverProbe checks whether a cover image URL is reachable before it is attached.
type CoverProbe interface {
	Reachable(ctx context.Context, url string) bool
}
