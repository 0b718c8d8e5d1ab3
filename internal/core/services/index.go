package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/deskseek/internal/core/domain"
	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
	"github.com/custodia-labs/deskseek/internal/core/ports/driving"
	"github.com/custodia-labs/deskseek/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService is the write path: it maps extracted content to engine
// records and decides when files need re-indexing. It holds no state
// of its own; the engine's consistency guarantees apply.
type IndexService struct {
	engine driven.SearchEngine
	mapper *DocumentMapper
}

// NewIndexService creates a new index service.
func NewIndexService(engine driven.SearchEngine) *IndexService {
	return &IndexService{
		engine: engine,
		mapper: NewDocumentMapper(),
	}
}

// AddToIndex maps content to a field set and hands it to the engine.
func (s *IndexService) AddToIndex(ctx context.Context, locationID string, content *domain.Content) error {
	if s.engine == nil {
		return domain.ErrEngineUnavailable
	}
	if content == nil {
		return fmt.Errorf("%w: nil content", domain.ErrInvalidInput)
	}

	fields := s.mapper.MapToFields(locationID, content)
	logger.Debug("Indexing %s (%d fields)", content.FileName, fields.Len())

	if err := s.engine.Add(ctx, fields); err != nil {
		return fmt.Errorf("add to index: %w", err)
	}
	return nil
}

// RemoveFromIndex deletes the document stored for fileName.
func (s *IndexService) RemoveFromIndex(ctx context.Context, fileName string) error {
	if s.engine == nil {
		return domain.ErrEngineUnavailable
	}

	logger.Debug("Removing %s from index", fileName)
	if err := s.engine.DeleteByID(ctx, fileName); err != nil {
		return fmt.Errorf("remove from index: %w", err)
	}
	return nil
}

// CheckIfModified looks up the stored document for fileName and
// compares modification times. A file that is not stored, or whose
// stored time differs from the candidate, needs re-indexing.
func (s *IndexService) CheckIfModified(ctx context.Context, fileName string, lastModified time.Time) (domain.UpdateCheckResult, error) {
	if s.engine == nil {
		return domain.UpdateCheckUpdated, domain.ErrEngineUnavailable
	}

	req := driven.QueryRequest{
		Query:         driven.MatchAllQuery,
		Fields:        []string{domain.FieldLastModified},
		Rows:          1,
		FilterClauses: []string{domain.FieldUniqueID + ":" + EscapeQueryChars(fileName)},
	}

	resp, err := s.engine.Query(ctx, req)
	if err != nil {
		return domain.UpdateCheckUpdated, fmt.Errorf("check if modified: %w", err)
	}

	if len(resp.Hits) == 0 {
		// Nothing in the index yet, so the file counts as updated.
		return domain.UpdateCheckUpdated, nil
	}

	stored := resp.Hits[0].Fields[domain.FieldLastModified]
	millis, err := strconv.ParseInt(stored, 10, 64)
	if err != nil {
		// A corrupt stored value heals itself through re-indexing.
		logger.Warn("Unparseable stored lastmodified %q for %s", stored, fileName)
		return domain.UpdateCheckUpdated, nil
	}

	if millis != lastModified.UnixMilli() {
		return domain.UpdateCheckUpdated, nil
	}
	return domain.UpdateCheckUnmodified, nil
}
