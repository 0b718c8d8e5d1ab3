package driven

import (
	"context"

	"github.com/custodia-labs/deskseek/internal/core/domain"
)

// MatchAllQuery matches every document in the index. Used for count-only
// requests and for lookups that filter on a single field.
const MatchAllQuery = "*:*"

// HighlightSpec requests highlighted snippets over one field.
type HighlightSpec struct {
	// Field is the field to highlight.
	Field string

	// Snippets is the maximum number of fragments per hit.
	Snippets int

	// FragmentSize caps the fragment length in characters.
	FragmentSize int
}

// MoreLikeThisSpec requests similar-document candidates per hit.
type MoreLikeThisSpec struct {
	// Field is the field similarity is computed over.
	Field string

	// Count is the number of candidates per hit.
	Count int
}

// QueryRequest carries everything the engine needs to answer one query.
type QueryRequest struct {
	// Query is the free-text query. MatchAllQuery matches everything.
	Query string

	// Fields lists the stored fields to return per hit. Nil means all
	// stored fields. The relevance score is always returned.
	Fields []string

	// Rows is the number of hits to return. Zero requests a count-only
	// response.
	Rows int

	// FacetFields lists the fields to compute value counts for.
	FacetFields []string

	// FilterClauses restrict the result set. Each clause has the form
	// "field:value" with engine-special characters in the value escaped.
	FilterClauses []string

	// Highlight requests snippet highlighting, if non-nil.
	Highlight *HighlightSpec

	// MoreLikeThis requests similar-document candidates, if non-nil.
	MoreLikeThis *MoreLikeThisSpec
}

// EngineHit is one raw hit returned by the engine.
type EngineHit struct {
	// Fields maps stored field names to their values.
	Fields map[string]string

	// Score is the engine's relevance score. Higher is better.
	Score float64
}

// FacetCount is one value/count pair within a facet field.
type FacetCount struct {
	// Value is the raw field value.
	Value string

	// Count is the number of matching documents.
	Count int64
}

// QueryResponse is the engine's raw answer to a QueryRequest.
type QueryResponse struct {
	// TotalMatches is the total number of matching documents,
	// independent of the row limit.
	TotalMatches int64

	// Hits are the returned documents in rank order.
	Hits []EngineHit

	// Facets maps each requested facet field to its value counts.
	Facets map[string][]FacetCount

	// Highlights maps a hit's unique id to its highlight fragments
	// for the requested highlight field.
	Highlights map[string][]string

	// MoreLikeThis maps a hit's unique id to its similar-document
	// candidates, when requested.
	MoreLikeThis map[string][]EngineHit
}

// SuggestRequest asks the engine for completions of a partially typed
// input. The last word is completed; any preceding words must also
// occur in the index for a phrase to be suggested.
type SuggestRequest struct {
	// Term is the partially typed input.
	Term string

	// Slop is the maximum number of tokens allowed between the words
	// of a multi-word suggestion. Ignored when InOrder is set.
	Slop int

	// InOrder requires the words of a multi-word suggestion to appear
	// adjacent and in input order.
	InOrder bool

	// Count is the maximum number of suggestions.
	Count int
}

// SearchEngine is the external full-text search collaborator.
// Implementations must be safe for concurrent use: index writes may
// arrive from parallel producers while queries are running. No call
// may block indefinitely; failures surface as errors.
type SearchEngine interface {
	// Add indexes a field set, replacing any document with the same
	// unique id.
	Add(ctx context.Context, fields domain.FieldSet) error

	// DeleteByID removes the document with the given unique id.
	DeleteByID(ctx context.Context, id string) error

	// Query executes a search and returns the raw response.
	Query(ctx context.Context, req QueryRequest) (*QueryResponse, error)

	// Suggest returns term completions for a partially typed input.
	Suggest(ctx context.Context, req SuggestRequest) ([]domain.Suggestion, error)

	// Close releases engine resources. Safe to call exactly once.
	Close() error
}
