package port

import (
	"context"

	"github.com/ugalabz/oracle-server/internal/domain"
)

// WebSearchProvider issues one raw query against the web search API.
// Implementations enforce their own per-call timeout rather than relying
// on the provider's default, and skip results whose URLs do not parse.
type WebSearchProvider interface {
	Search(ctx context.Context, query string, count int) ([]domain.WebResult, error)
}
