package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskseek/internal/core/domain"
)

const testBasePath = "http://localhost:4711/search/hello"

func TestQueryBuilder_RequestShape(t *testing.T) {
	builder := NewQueryBuilder(NewFacetCatalog())

	req, filters := builder.Build("hello", testBasePath, 50, 5, nil, false)

	assert.Equal(t, "hello", req.Query)
	assert.Equal(t, 50, req.Rows)
	assert.Equal(t, []string{
		"language",
		"attr_author",
		"attr_last-modified-year",
		"attr_extension",
	}, req.FacetFields)
	require.NotNil(t, req.Highlight)
	assert.Equal(t, domain.FieldContent, req.Highlight.Field)
	assert.Equal(t, 5, req.Highlight.Snippets)
	assert.Equal(t, 100, req.Highlight.FragmentSize)
	assert.Nil(t, req.MoreLikeThis)
	assert.Empty(t, req.FilterClauses)
	assert.Empty(t, filters)
}

func TestQueryBuilder_SimilarityEnabled(t *testing.T) {
	builder := NewQueryBuilder(NewFacetCatalog())

	req, _ := builder.Build("hello", testBasePath, 50, 5, nil, true)

	require.NotNil(t, req.MoreLikeThis)
	assert.Equal(t, domain.FieldContent, req.MoreLikeThis.Field)
	assert.Equal(t, 5, req.MoreLikeThis.Count)
}

func TestQueryBuilder_FilterClausesAndLabels(t *testing.T) {
	builder := NewQueryBuilder(NewFacetCatalog())
	selections := []domain.FilterSelection{
		{Field: "attr_author", Value: "Max Mustermann"},
		{Field: "language", Value: "en"},
	}
	basePath := testBasePath + "/attr_author%3DMax+Mustermann/language%3Den"

	req, filters := builder.Build("hello", basePath, 50, 5, selections, false)

	assert.Equal(t, []string{
		`attr_author:Max\ Mustermann`,
		"language:en",
	}, req.FilterClauses)

	require.Len(t, filters, 2)
	assert.Equal(t, "Author : Max Mustermann", filters[0].Label)
	assert.Equal(t, testBasePath+"/language%3Den", filters[0].RemoveLink)
	assert.Equal(t, "Language : en", filters[1].Label)
	assert.Equal(t, testBasePath+"/attr_author%3DMax+Mustermann", filters[1].RemoveLink)
}

func TestQueryBuilder_UnknownFilterFieldFallsBackToFieldName(t *testing.T) {
	builder := NewQueryBuilder(NewFacetCatalog())
	selections := []domain.FilterSelection{
		{Field: "attr_nope", Value: "x"},
	}
	basePath := testBasePath + "/attr_nope%3Dx"

	req, filters := builder.Build("hello", basePath, 50, 5, selections, false)

	assert.Equal(t, []string{"attr_nope:x"}, req.FilterClauses)
	require.Len(t, filters, 1)
	assert.Equal(t, "attr_nope : x", filters[0].Label)
}
