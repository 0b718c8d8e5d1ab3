package driving

import (
	"context"

	"github.com/custodia-labs/deskseek/internal/core/domain"
)

// QueryService is the read path of the index.
type QueryService interface {
	// PerformQuery runs a free-text query with the active drilldown
	// filters and returns the assembled, UI-ready result. basePath is
	// the absolute URL of the current search page, used to build apply
	// and remove links. An engine failure surfaces as an error, which
	// is distinguishable from an empty-but-successful result.
	PerformQuery(ctx context.Context, query, basePath string, filters []domain.FilterSelection) (*domain.QueryResult, error)

	// FindSuggestions returns term completions for a partially typed
	// input.
	FindSuggestions(ctx context.Context, term string) ([]domain.Suggestion, error)
}
