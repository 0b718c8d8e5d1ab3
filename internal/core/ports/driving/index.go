package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/deskseek/internal/core/domain"
)

// IndexService is the write path of the index. Callers (e.g. parallel
// crawl workers) decide retry policy; failures are reported, never
// retried here.
type IndexService interface {
	// AddToIndex maps the extracted content to a field set and hands it
	// to the engine.
	AddToIndex(ctx context.Context, locationID string, content *domain.Content) error

	// RemoveFromIndex deletes the document for fileName.
	RemoveFromIndex(ctx context.Context, fileName string) error

	// CheckIfModified compares the candidate modification time against
	// the stored value to decide whether re-indexing is required.
	CheckIfModified(ctx context.Context, fileName string, lastModified time.Time) (domain.UpdateCheckResult, error)
}
