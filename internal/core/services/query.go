package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/custodia-labs/deskseek/internal/core/domain"
	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
	"github.com/custodia-labs/deskseek/internal/core/ports/driving"
	"github.com/custodia-labs/deskseek/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// numberOfFragments is the number of highlight snippets requested per hit.
const numberOfFragments = 5

// QueryService is the read path: it builds engine requests, runs them
// and assembles the raw responses into UI-ready results.
type QueryService struct {
	engine    driven.SearchEngine
	settings  domain.Settings
	builder   *QueryBuilder
	assembler *ResultAssembler
}

// NewQueryService creates a new query service. The preview processor
// is optional (can be nil).
func NewQueryService(
	engine driven.SearchEngine,
	fs driven.FileSystem,
	preview driven.PreviewProcessor,
	settings domain.Settings,
) *QueryService {
	catalog := NewFacetCatalog()
	return &QueryService{
		engine:    engine,
		settings:  settings,
		builder:   NewQueryBuilder(catalog),
		assembler: NewResultAssembler(catalog, engine, fs, preview),
	}
}

// PerformQuery runs a free-text query with the active drilldown
// filters against the engine and assembles the result. An engine
// failure is fatal to this single query and surfaces as an error.
func (s *QueryService) PerformQuery(
	ctx context.Context, query, basePath string, filters []domain.FilterSelection,
) (*domain.QueryResult, error) {
	if s.engine == nil {
		return nil, domain.ErrEngineUnavailable
	}

	logger.Section("Query Execution")
	logger.Debug("Query: %q, filters: %d", query, len(filters))

	req, activeFilters := s.builder.Build(
		query, basePath,
		s.settings.NumberOfSearchResults, numberOfFragments,
		filters, s.settings.ShowSimilarDocuments,
	)

	started := time.Now()

	resp, err := s.engine.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("perform query: %w", err)
	}
	logger.Debug("Raw hits: %d of %d total", len(resp.Hits), resp.TotalMatches)

	size, err := s.indexSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("index size: %w", err)
	}

	result := s.assembler.Assemble(
		ctx, resp,
		html.EscapeString(query), basePath,
		activeFilters, s.settings.ShowSimilarDocuments,
		started, size,
	)

	logger.Info("Query %q: %d documents, %d dimensions in %s",
		query, len(result.Documents), len(result.Dimensions), result.Elapsed)
	return result, nil
}

// FindSuggestions returns term completions for a partially typed input.
func (s *QueryService) FindSuggestions(ctx context.Context, term string) ([]domain.Suggestion, error) {
	if s.engine == nil {
		return nil, domain.ErrEngineUnavailable
	}

	suggestions, err := s.engine.Suggest(ctx, driven.SuggestRequest{
		Term:    term,
		Slop:    s.settings.SuggestionSlop,
		InOrder: s.settings.SuggestionInOrder,
		Count:   s.settings.NumberOfSuggestions,
	})
	if err != nil {
		return nil, fmt.Errorf("find suggestions: %w", err)
	}
	return suggestions, nil
}

// indexSize runs a count-only match-all query.
func (s *QueryService) indexSize(ctx context.Context) (int64, error) {
	resp, err := s.engine.Query(ctx, driven.QueryRequest{
		Query: driven.MatchAllQuery,
		Rows:  0,
	})
	if err != nil {
		return 0, err
	}
	return resp.TotalMatches, nil
}
