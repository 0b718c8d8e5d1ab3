package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskseek/internal/core/domain"
	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, engine.Close())
	})
	return engine
}

func docFields(id, author, content string) domain.FieldSet {
	var fields domain.FieldSet
	fields.Set(domain.FieldUniqueID, id)
	fields.Set(domain.FieldLocationID, "loc-1")
	fields.Set(domain.FieldLastModified, "1700000000000")
	if author != "" {
		fields.Set("attr_author", author)
	}
	fields.Set(domain.FieldContent, content)
	return fields
}

func addDoc(t *testing.T, engine *Engine, id, author, content string) {
	t.Helper()
	require.NoError(t, engine.Add(context.Background(), docFields(id, author, content)))
}

func countAll(t *testing.T, engine *Engine) int64 {
	t.Helper()
	resp, err := engine.Query(context.Background(), driven.QueryRequest{
		Query: driven.MatchAllQuery,
	})
	require.NoError(t, err)
	return resp.TotalMatches
}

func TestAdd_RequiresUniqueID(t *testing.T) {
	engine := newTestEngine(t)

	var fields domain.FieldSet
	fields.Set(domain.FieldContent, "orphaned text")

	err := engine.Add(context.Background(), fields)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdd_MatchAllCount(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello world")
	addDoc(t, engine, "/docs/b.txt", "Bob", "goodbye moon")

	resp, err := engine.Query(context.Background(), driven.QueryRequest{
		Query: driven.MatchAllQuery,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalMatches)
	assert.Empty(t, resp.Hits, "count-only query loads no hits")
}

func TestAdd_ReplacesExistingDocument(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello world")
	addDoc(t, engine, "/docs/a.txt", "Ann", "goodbye moon")

	assert.Equal(t, int64(1), countAll(t, engine))

	resp, err := engine.Query(context.Background(), driven.QueryRequest{Query: "goodbye", Rows: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalMatches)

	resp, err = engine.Query(context.Background(), driven.QueryRequest{Query: "hello", Rows: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalMatches, "old content is gone after replace")
}

func TestQuery_TextMatch(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello world")
	addDoc(t, engine, "/docs/b.txt", "Bob", "goodbye moon")

	resp, err := engine.Query(context.Background(), driven.QueryRequest{Query: "hello", Rows: 10})

	require.NoError(t, err)
	require.Len(t, resp.Hits, 1)
	hit := resp.Hits[0]
	assert.Equal(t, "/docs/a.txt", hit.Fields[domain.FieldUniqueID])
	assert.Equal(t, "Ann", hit.Fields["attr_author"])
	assert.Equal(t, "1700000000000", hit.Fields[domain.FieldLastModified])
	assert.Greater(t, hit.Score, 0.0, "bm25 ranks map to positive scores")
}

func TestQuery_FieldRestriction(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello world")

	resp, err := engine.Query(context.Background(), driven.QueryRequest{
		Query:  "hello",
		Fields: []string{domain.FieldLastModified},
		Rows:   10,
	})

	require.NoError(t, err)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, map[string]string{
		domain.FieldLastModified: "1700000000000",
	}, resp.Hits[0].Fields)
}

func TestQuery_FilterClauses(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello world")
	addDoc(t, engine, "/docs/b.txt", "Max Mustermann", "hello there")

	t.Run("plain value", func(t *testing.T) {
		resp, err := engine.Query(context.Background(), driven.QueryRequest{
			Query:         "hello",
			Rows:          10,
			FilterClauses: []string{"attr_author:Ann"},
		})
		require.NoError(t, err)
		require.Len(t, resp.Hits, 1)
		assert.Equal(t, "/docs/a.txt", resp.Hits[0].Fields[domain.FieldUniqueID])
	})

	t.Run("escaped value", func(t *testing.T) {
		resp, err := engine.Query(context.Background(), driven.QueryRequest{
			Query:         "hello",
			Rows:          10,
			FilterClauses: []string{`attr_author:Max\ Mustermann`},
		})
		require.NoError(t, err)
		require.Len(t, resp.Hits, 1)
		assert.Equal(t, "/docs/b.txt", resp.Hits[0].Fields[domain.FieldUniqueID])
	})

	t.Run("filter on match-all", func(t *testing.T) {
		resp, err := engine.Query(context.Background(), driven.QueryRequest{
			Query:         driven.MatchAllQuery,
			Rows:          10,
			FilterClauses: []string{"attr_author:Ann"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.TotalMatches)
	})

	t.Run("malformed clause", func(t *testing.T) {
		_, err := engine.Query(context.Background(), driven.QueryRequest{
			Query:         "hello",
			Rows:          10,
			FilterClauses: []string{"no-colon"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestQuery_Highlight(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "say hello to the wide world")

	resp, err := engine.Query(context.Background(), driven.QueryRequest{
		Query: "hello",
		Rows:  10,
		Highlight: &driven.HighlightSpec{
			Field:        domain.FieldContent,
			Snippets:     5,
			FragmentSize: 100,
		},
	})

	require.NoError(t, err)
	fragments := resp.Highlights["/docs/a.txt"]
	require.NotEmpty(t, fragments)
	assert.Contains(t, fragments[0], "<em>hello</em>")
}

func TestQuery_Facets(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello world")
	addDoc(t, engine, "/docs/b.txt", "Ann", "hello again")
	addDoc(t, engine, "/docs/c.txt", "Bob", "hello there")
	addDoc(t, engine, "/docs/d.txt", "Zoe", "something else")

	resp, err := engine.Query(context.Background(), driven.QueryRequest{
		Query:       "hello",
		FacetFields: []string{"attr_author"},
	})

	require.NoError(t, err)
	assert.Equal(t, []driven.FacetCount{
		{Value: "Ann", Count: 2},
		{Value: "Bob", Count: 1},
	}, resp.Facets["attr_author"], "facets count only the matched set, most frequent first")
}

func TestDeleteByID(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello world")

	require.NoError(t, engine.DeleteByID(context.Background(), "/docs/a.txt"))

	assert.Equal(t, int64(0), countAll(t, engine))

	resp, err := engine.Query(context.Background(), driven.QueryRequest{Query: "hello", Rows: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Hits)
}

func TestDeleteByID_Unknown(t *testing.T) {
	engine := newTestEngine(t)

	assert.NoError(t, engine.DeleteByID(context.Background(), "/docs/missing.txt"))
}

func TestSuggest(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello helicopter hello")
	addDoc(t, engine, "/docs/b.txt", "Bob", "goodbye moon")

	suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{
		Term:  "hel",
		Count: 10,
	})

	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "hello", suggestions[0].Value, "most frequent term first")
	assert.Equal(t, "helicopter", suggestions[1].Value)
	assert.Equal(t, suggestions[0].Label, suggestions[0].Value)
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "Hello World")

	suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{Term: "HEL", Count: 10})

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "hello", suggestions[0].Value)
}

func TestSuggest_EmptyTerm(t *testing.T) {
	engine := newTestEngine(t)

	suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{Term: "   "})

	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggest_PhraseWithinSlop(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "hello brave new world")

	t.Run("two intervening tokens allowed", func(t *testing.T) {
		suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{
			Term:  "hello wor",
			Slop:  2,
			Count: 10,
		})
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "hello world", suggestions[0].Value)
		assert.Equal(t, "hello world", suggestions[0].Label)
	})

	t.Run("outside slop", func(t *testing.T) {
		suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{
			Term:  "hello wor",
			Slop:  1,
			Count: 10,
		})
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})
}

func TestSuggest_PhraseInOrder(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "world of hello")

	t.Run("unordered proximity matches", func(t *testing.T) {
		suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{
			Term:  "hello wor",
			Slop:  6,
			Count: 10,
		})
		require.NoError(t, err)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "hello world", suggestions[0].Value)
	})

	t.Run("ordered phrase does not", func(t *testing.T) {
		suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{
			Term:    "hello wor",
			Slop:    6,
			InOrder: true,
			Count:   10,
		})
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})
}

func TestSuggest_ExactPhraseInOrder(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "say hello world again")

	suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{
		Term:    "hello wor",
		InOrder: true,
		Count:   10,
	})

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "hello world", suggestions[0].Value)
}

func TestSuggest_CountLimit(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "alpha alpine already also although")

	suggestions, err := engine.Suggest(context.Background(), driven.SuggestRequest{Term: "al", Count: 2})

	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestQuery_MoreLikeThis(t *testing.T) {
	engine := newTestEngine(t)
	addDoc(t, engine, "/docs/a.txt", "Ann", "kubernetes cluster deployment notes")
	addDoc(t, engine, "/docs/b.txt", "Bob", "kubernetes cluster rollout guide")
	addDoc(t, engine, "/docs/c.txt", "Cem", "cat dog")

	resp, err := engine.Query(context.Background(), driven.QueryRequest{
		Query: "deployment",
		Rows:  10,
		MoreLikeThis: &driven.MoreLikeThisSpec{
			Field: domain.FieldContent,
			Count: 5,
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Hits, 1)

	similar := resp.MoreLikeThis["/docs/a.txt"]
	require.Len(t, similar, 1, "only the document sharing terms qualifies")
	assert.Equal(t, "/docs/b.txt", similar[0].Fields[domain.FieldUniqueID])
}
