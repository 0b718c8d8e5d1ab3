package domain

import "time"

// FilterSelection is one caller-supplied drilldown selection,
// a facet field narrowed to a single value.
type FilterSelection struct {
	// Field is the facet field identifier.
	Field string

	// Value is the selected facet value.
	Value string
}

// QueryFilter is one active facet selection as surfaced to the UI.
type QueryFilter struct {
	// Label is the human-readable description, "Title : value".
	Label string

	// RemoveLink navigates to the same query without this filter.
	RemoveLink string
}

// Facet is one value within a facet dimension. Its count is always
// greater than zero.
type Facet struct {
	// Label is the display label, possibly transformed from the raw value.
	Label string

	// Count is the number of matching documents.
	Count int64

	// Link applies this value as a drilldown filter.
	Link string
}

// FacetDimension is a facet field's full value list for one query.
// A dimension is only emitted when it has more than one facet; a
// singleton carries no discriminating value.
type FacetDimension struct {
	// Title is the display title of the facet field.
	Title string

	// Facets is the ordered value list.
	Facets []Facet
}

// QueryResultDocument is one hit surfaced to the user.
type QueryResultDocument struct {
	// Position is the ordinal of the hit in engine order, starting at 0.
	Position int

	// FileName is the path of the backing file.
	FileName string

	// Highlight is the merged highlighted snippet text.
	Highlight string

	// LastModified is the stored modification time of the file.
	LastModified time.Time

	// NormalizedScore is the relevance score scaled to 0..5.
	NormalizedScore int

	// UniqueID identifies the document in the index.
	UniqueID string

	// PreviewAvailable reports whether a preview can be rendered.
	PreviewAvailable bool

	// SimilarFiles lists the unique ids of similar documents.
	SimilarFiles []string
}

// QueryResult is the full answer to one query.
type QueryResult struct {
	// EscapedQuery is the original query text, HTML-escaped for safe
	// embedding.
	EscapedQuery string

	// Elapsed is the wall-clock duration from just before the engine
	// call to just after hit post-processing.
	Elapsed time.Duration

	// Documents are the surviving hits in ordinal order.
	Documents []QueryResultDocument

	// Dimensions are the facet dimensions in catalog order.
	Dimensions []FacetDimension

	// IndexSize is the current total number of indexed documents.
	IndexSize int64

	// ActiveFilters are the drilldown filters, most recently applied
	// first.
	ActiveFilters []QueryFilter
}

// Suggestion is one completion offered for a partially typed term.
type Suggestion struct {
	// Label is the display form of the suggestion.
	Label string

	// Value is the text to substitute into the query.
	Value string
}

// UpdateCheckResult is the outcome of a staleness check.
type UpdateCheckResult int

const (
	// UpdateCheckUpdated indicates the file is new or changed and must
	// be re-indexed.
	UpdateCheckUpdated UpdateCheckResult = iota

	// UpdateCheckUnmodified indicates the stored document is current.
	UpdateCheckUnmodified
)

// String returns a human-readable name for the result.
func (r UpdateCheckResult) String() string {
	switch r {
	case UpdateCheckUpdated:
		return "UPDATED"
	case UpdateCheckUnmodified:
		return "UNMODIFIED"
	default:
		return "UNKNOWN"
	}
}
