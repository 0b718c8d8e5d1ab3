package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/deskseek/internal/core/domain"
	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
	"github.com/custodia-labs/deskseek/internal/logger"
)

// snippetSeparator joins the highlight fragments of one hit.
const snippetSeparator = " ... "

// ResultAssembler turns raw engine responses into UI-facing results:
// normalised scores, merged snippets, facet dimensions, similar-file
// references, and lazy cleanup of index entries whose backing file is
// gone.
type ResultAssembler struct {
	catalog *FacetCatalog
	engine  driven.SearchEngine
	fs      driven.FileSystem
	preview driven.PreviewProcessor
}

// NewResultAssembler creates a result assembler.
// The preview processor is optional (can be nil).
func NewResultAssembler(
	catalog *FacetCatalog,
	engine driven.SearchEngine,
	fs driven.FileSystem,
	preview driven.PreviewProcessor,
) *ResultAssembler {
	return &ResultAssembler{
		catalog: catalog,
		engine:  engine,
		fs:      fs,
		preview: preview,
	}
}

// Assemble builds the final query result from the engine's raw
// response. Hits whose backing file no longer exists are excluded and
// deleted from the index; the delete is fire-and-forget and never
// fails the query. The elapsed duration is measured against started,
// taken just before the engine call. Active filters are returned most
// recently applied first.
func (a *ResultAssembler) Assemble(
	ctx context.Context,
	resp *driven.QueryResponse,
	escapedQuery, basePath string,
	filters []domain.QueryFilter,
	similarityEnabled bool,
	started time.Time,
	indexSize int64,
) *domain.QueryResult {
	maxScore := 0.0
	for _, hit := range resp.Hits {
		if hit.Score > maxScore {
			maxScore = hit.Score
		}
	}

	documents := make([]domain.QueryResultDocument, 0, len(resp.Hits))
	for i, hit := range resp.Hits {
		fileName := hit.Fields[domain.FieldUniqueID]

		if !a.fs.Exists(fileName) {
			// The file is gone from disk, so the index entry is stale.
			// Clean it up lazily and drop the hit.
			logger.Info("Removing stale index entry for %s", fileName)
			if err := a.engine.DeleteByID(ctx, fileName); err != nil {
				logger.Warn("Could not remove stale entry %s: %v", fileName, err)
			}
			continue
		}

		document := domain.QueryResultDocument{
			Position:         i,
			FileName:         fileName,
			Highlight:        a.mergedHighlight(resp, fileName),
			LastModified:     storedLastModified(hit),
			NormalizedScore:  normalizeScore(hit.Score, maxScore),
			UniqueID:         fileName,
			PreviewAvailable: a.preview != nil && a.preview.PreviewAvailableFor(fileName),
		}

		if similarityEnabled {
			for _, similar := range resp.MoreLikeThis[fileName] {
				document.SimilarFiles = append(document.SimilarFiles,
					similar.Fields[domain.FieldUniqueID])
			}
		}

		documents = append(documents, document)
	}

	return &domain.QueryResult{
		EscapedQuery:  escapedQuery,
		Elapsed:       time.Since(started),
		Documents:     documents,
		Dimensions:    a.fillFacets(resp, basePath),
		IndexSize:     indexSize,
		ActiveFilters: reverseFilters(filters),
	}
}

// mergedHighlight joins the hit's snippet fragments with the literal
// " ... " separator. A hit without highlight fragments indicates a
// highlighting/index mismatch and is logged.
func (a *ResultAssembler) mergedHighlight(resp *driven.QueryResponse, fileName string) string {
	fragments := resp.Highlights[fileName]
	if len(fragments) == 0 {
		logger.Warn("No highlighting for %s", fileName)
		return ""
	}
	trimmed := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		trimmed = append(trimmed, strings.TrimSpace(fragment))
	}
	return strings.TrimSpace(strings.Join(trimmed, snippetSeparator))
}

// fillFacets builds the facet dimensions in catalog order. Only values
// with a positive count and a non-empty label qualify, and a dimension
// is emitted only when more than one value qualifies.
func (a *ResultAssembler) fillFacets(resp *driven.QueryResponse, basePath string) []domain.FacetDimension {
	var dimensions []domain.FacetDimension
	for _, entry := range a.catalog.entries {
		var facets []domain.Facet
		for _, count := range resp.Facets[entry.field] {
			if count.Count <= 0 {
				continue
			}
			name := strings.TrimSpace(count.Value)
			if name == "" {
				continue
			}
			facets = append(facets, domain.Facet{
				Label: entry.label(name),
				Count: count.Count,
				Link:  basePath + "/" + EncodeSelection(entry.field, count.Value),
			})
		}
		// Facetting only makes sense with more than one value.
		if len(facets) > 1 {
			dimensions = append(dimensions, domain.FacetDimension{
				Title:  entry.title,
				Facets: facets,
			})
		}
	}
	return dimensions
}

// storedLastModified parses the stored modification time of a hit.
func storedLastModified(hit driven.EngineHit) time.Time {
	stored := hit.Fields[domain.FieldLastModified]
	millis, err := strconv.ParseInt(stored, 10, 64)
	if err != nil {
		logger.Warn("Unparseable lastmodified %q for %s", stored, hit.Fields[domain.FieldUniqueID])
		return time.Time{}
	}
	return time.UnixMilli(millis)
}

// normalizeScore scales a hit score to an integer in 0..5 relative to
// the best score in the result set. A zero maximum yields 0.
func normalizeScore(score, maxScore float64) int {
	if maxScore <= 0 {
		return 0
	}
	return int(score / maxScore * 5)
}

// reverseFilters returns the filters most recently applied first.
func reverseFilters(filters []domain.QueryFilter) []domain.QueryFilter {
	reversed := make([]domain.QueryFilter, 0, len(filters))
	for i := len(filters) - 1; i >= 0; i-- {
		reversed = append(reversed, filters[i])
	}
	return reversed
}
