package services

import (
	"github.com/custodia-labs/deskseek/internal/core/domain"
	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
	"github.com/custodia-labs/deskseek/internal/logger"
)

const (
	// highlightFragmentSize caps each highlight fragment at 100 characters.
	highlightFragmentSize = 100

	// similarDocumentCount is the fixed number of more-like-this
	// candidates requested per hit.
	similarDocumentCount = 5
)

// QueryBuilder assembles engine query requests from a free-text query,
// the facet catalog and the active drilldown selections.
type QueryBuilder struct {
	catalog *FacetCatalog
}

// NewQueryBuilder creates a query builder over the given catalog.
func NewQueryBuilder(catalog *FacetCatalog) *QueryBuilder {
	return &QueryBuilder{catalog: catalog}
}

// Build assembles the engine request and the active filter list.
// The request asks for rows hits with all stored fields plus score,
// facets over every catalog field, and highlighting over the content
// field. Each selection becomes a "field:value" filter clause with the
// value escaped for round-trip safety, plus a QueryFilter carrying the
// human-readable label and a remove link derived from basePath.
func (b *QueryBuilder) Build(
	queryString, basePath string,
	rows, snippets int,
	selections []domain.FilterSelection,
	similarityEnabled bool,
) (driven.QueryRequest, []domain.QueryFilter) {
	req := driven.QueryRequest{
		Query:       queryString,
		Rows:        rows,
		FacetFields: b.catalog.Fields(),
		Highlight: &driven.HighlightSpec{
			Field:        domain.FieldContent,
			Snippets:     snippets,
			FragmentSize: highlightFragmentSize,
		},
	}

	var filters []domain.QueryFilter
	for _, selection := range selections {
		req.FilterClauses = append(req.FilterClauses,
			selection.Field+":"+EscapeQueryChars(selection.Value))

		title, err := b.catalog.TitleOf(selection.Field)
		if err != nil {
			// The filter still narrows the query, only the label degrades.
			logger.Warn("No title for facet field %s", selection.Field)
			title = selection.Field
		}
		filters = append(filters, domain.QueryFilter{
			Label:      title + " : " + selection.Value,
			RemoveLink: RemoveSelection(basePath, selection.Field),
		})
	}

	if similarityEnabled {
		req.MoreLikeThis = &driven.MoreLikeThisSpec{
			Field: domain.FieldContent,
			Count: similarDocumentCount,
		}
	}

	return req, filters
}
