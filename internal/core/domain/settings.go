package domain

// Settings is the immutable search configuration. It is built once at
// startup, passed by value into the services that need it, and never
// mutated afterwards.
type Settings struct {
	// NumberOfSearchResults is the row limit requested per query.
	NumberOfSearchResults int `toml:"number_of_search_results"`

	// NumberOfSuggestions is the maximum number of term suggestions.
	NumberOfSuggestions int `toml:"number_of_suggestions"`

	// SuggestionSlop is the allowed word distance for phrase suggestions.
	SuggestionSlop int `toml:"suggestion_slop"`

	// SuggestionInOrder requires suggestion terms to appear in query order.
	SuggestionInOrder bool `toml:"suggestion_in_order"`

	// ShowSimilarDocuments enables more-like-this lookups per hit.
	ShowSimilarDocuments bool `toml:"show_similar_documents"`
}

// DefaultSettings returns the default search configuration.
func DefaultSettings() Settings {
	return Settings{
		NumberOfSearchResults: 50,
		NumberOfSuggestions:   10,
		SuggestionSlop:        6,
		SuggestionInOrder:     false,
		ShowSimilarDocuments:  false,
	}
}
