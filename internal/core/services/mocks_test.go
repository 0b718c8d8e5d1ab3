package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/deskseek/internal/core/domain"
	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSearchEngine implements driven.SearchEngine for testing.
// Query responses are served from a queue; the last one is reused.
type mockSearchEngine struct {
	mu sync.Mutex

	added   []domain.FieldSet
	deleted []string

	requests  []driven.QueryRequest
	responses []*driven.QueryResponse

	suggestRequests []driven.SuggestRequest
	suggestions     []domain.Suggestion

	addErr     error
	deleteErr  error
	queryErr   error
	suggestErr error
}

func (m *mockSearchEngine) Add(_ context.Context, fields domain.FieldSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, fields)
	return nil
}

func (m *mockSearchEngine) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSearchEngine) Query(_ context.Context, req driven.QueryRequest) (*driven.QueryResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if len(m.responses) == 0 {
		return &driven.QueryResponse{}, nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

func (m *mockSearchEngine) Suggest(_ context.Context, req driven.SuggestRequest) ([]domain.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestRequests = append(m.suggestRequests, req)
	if m.suggestErr != nil {
		return nil, m.suggestErr
	}
	return m.suggestions, nil
}

func (m *mockSearchEngine) Close() error {
	return nil
}

// mockFileSystem implements driven.FileSystem for testing.
type mockFileSystem struct {
	existing map[string]bool
}

func (m *mockFileSystem) Exists(path string) bool {
	return m.existing[path]
}

// mockPreviewProcessor implements driven.PreviewProcessor for testing.
type mockPreviewProcessor struct {
	available map[string]bool
}

func (m *mockPreviewProcessor) PreviewAvailableFor(path string) bool {
	return m.available[path]
}
