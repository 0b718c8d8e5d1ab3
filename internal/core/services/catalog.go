package services

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/custodia-labs/deskseek/internal/core/domain"
)

// labelTransform turns a raw facet value into its display label.
type labelTransform func(raw string) string

// facetEntry is one catalog row: a facet field, its display title and
// an optional label transform.
type facetEntry struct {
	field     string
	title     string
	transform labelTransform
}

// label applies the entry's transform, if any.
func (e facetEntry) label(raw string) string {
	if e.transform != nil {
		return e.transform(raw)
	}
	return raw
}

// FacetCatalog is the ordered, fixed mapping from facet field
// identifiers to display titles. It is built once at startup and
// read-only for the process lifetime, so it needs no synchronisation.
// New facets are added here, not hardwired elsewhere.
type FacetCatalog struct {
	entries []facetEntry
}

// NewFacetCatalog creates the catalog with the standard facet fields.
func NewFacetCatalog() *FacetCatalog {
	return &FacetCatalog{
		entries: []facetEntry{
			{field: domain.FieldLanguage, title: "Language", transform: languageDisplayName},
			{field: domain.AttributePrefix + "author", title: "Author"},
			{field: domain.AttributePrefix + "last-modified-year", title: "Last modified"},
			{field: domain.AttributePrefix + domain.FieldExtension, title: "File type"},
		},
	}
}

// Fields returns the facet field identifiers in catalog order. The
// order is stable so every query requests the same facets.
func (c *FacetCatalog) Fields() []string {
	fields := make([]string, len(c.entries))
	for i, e := range c.entries {
		fields[i] = e.field
	}
	return fields
}

// TitleOf returns the display title for a facet field.
func (c *FacetCatalog) TitleOf(field string) (string, error) {
	for _, e := range c.entries {
		if e.field == field {
			return e.title, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnknownFacetField, field)
}

// languageDisplayName maps a language code to its English display name.
// Codes that cannot be parsed, or have no known name, are shown verbatim.
func languageDisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}
