package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/deskseek/internal/adapters/driven/engine/sqlite/migrations"
	"github.com/custodia-labs/deskseek/internal/core/domain"
	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// defaultSuggestionCount bounds suggestion responses when the request
// carries no count.
const defaultSuggestionCount = 10

// Engine is an SQLite/FTS5-backed implementation of the search engine
// port. It is safe for concurrent use; database/sql serialises access
// and the database runs in WAL mode.
type Engine struct {
	db   *sql.DB
	path string
}

// NewEngine creates a new engine at the specified data directory.
// If dataDir is empty, defaults to ~/.deskseek/index.
func NewEngine(dataDir string) (*Engine, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".deskseek", "index")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	e := &Engine{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := e.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return e, nil
}

// Close closes the database connection.
func (e *Engine) Close() error {
	return e.db.Close()
}

// Path returns the database file path.
func (e *Engine) Path() string {
	return e.path
}

// migrate runs all pending migrations.
func (e *Engine) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := e.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := e.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := e.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := e.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Add indexes a field set, replacing any document with the same unique id.
func (e *Engine) Add(ctx context.Context, fields domain.FieldSet) error {
	id, ok := fields.Get(domain.FieldUniqueID)
	if !ok || id == "" {
		return fmt.Errorf("%w: field set without %s", domain.ErrInvalidInput, domain.FieldUniqueID)
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit.

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM content_fts WHERE uniqueid = ?", id); err != nil {
		return fmt.Errorf("clearing content index: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM documents WHERE uniqueid = ?", id); err != nil {
		return fmt.Errorf("clearing document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO documents (uniqueid) VALUES (?)", id); err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	for _, field := range fields.Fields() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO document_fields (uniqueid, name, value) VALUES (?, ?, ?)",
			id, field.Name, field.Value); err != nil {
			return fmt.Errorf("inserting field %s: %w", field.Name, err)
		}
	}

	content, _ := fields.Get(domain.FieldContent)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO content_fts (uniqueid, content) VALUES (?, ?)", id, content); err != nil {
		return fmt.Errorf("indexing content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// DeleteByID removes the document with the given unique id.
func (e *Engine) DeleteByID(ctx context.Context, id string) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit.

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM content_fts WHERE uniqueid = ?", id); err != nil {
		return fmt.Errorf("deleting content index: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM documents WHERE uniqueid = ?", id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// matchSet is the SQL selecting the (uniqueid, rank) pairs matching a
// request's query and filter clauses, independent of the row limit.
type matchSet struct {
	sql  string
	args []any
}

// buildMatchSet translates the request's query and filters into SQL.
func buildMatchSet(req driven.QueryRequest) (matchSet, error) {
	var m matchSet

	matchExpr := ftsMatchExpression(req.Query)
	if matchExpr == "" {
		m.sql = "SELECT b.uniqueid AS uniqueid, 0.0 AS rank FROM documents b WHERE 1 = 1"
	} else {
		m.sql = "SELECT b.uniqueid AS uniqueid, bm25(content_fts) AS rank FROM content_fts b WHERE content_fts MATCH ?"
		m.args = append(m.args, matchExpr)
	}

	for _, clause := range req.FilterClauses {
		field, value, err := parseFilterClause(clause)
		if err != nil {
			return matchSet{}, err
		}
		m.sql += " AND EXISTS (SELECT 1 FROM document_fields df WHERE df.uniqueid = b.uniqueid AND df.name = ? AND df.value = ?)"
		m.args = append(m.args, field, value)
	}

	return m, nil
}

// Query executes a search and returns the raw response.
func (e *Engine) Query(ctx context.Context, req driven.QueryRequest) (*driven.QueryResponse, error) {
	match, err := buildMatchSet(req)
	if err != nil {
		return nil, err
	}

	resp := &driven.QueryResponse{
		Facets:       make(map[string][]driven.FacetCount),
		Highlights:   make(map[string][]string),
		MoreLikeThis: make(map[string][]driven.EngineHit),
	}

	// Total match count, independent of the row limit.
	countRow := e.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ("+match.sql+")", match.args...)
	if err := countRow.Scan(&resp.TotalMatches); err != nil {
		return nil, fmt.Errorf("counting matches: %w", err)
	}

	if req.Rows > 0 {
		if err := e.loadHits(ctx, req, match, resp); err != nil {
			return nil, err
		}
	}

	for _, field := range req.FacetFields {
		counts, err := e.facetCounts(ctx, match, field)
		if err != nil {
			return nil, err
		}
		resp.Facets[field] = counts
	}

	return resp, nil
}

// loadHits fills the response's hits, highlights and more-like-this sets.
func (e *Engine) loadHits(ctx context.Context, req driven.QueryRequest, match matchSet, resp *driven.QueryResponse) error {
	args := append(append([]any{}, match.args...), req.Rows)
	rows, err := e.db.QueryContext(ctx,
		"SELECT uniqueid, rank FROM ("+match.sql+") ORDER BY rank, uniqueid LIMIT ?", args...)
	if err != nil {
		return fmt.Errorf("querying hits: %w", err)
	}
	defer rows.Close()

	type rankedID struct {
		id   string
		rank float64
	}
	var ranked []rankedID
	for rows.Next() {
		var r rankedID
		if err := rows.Scan(&r.id, &r.rank); err != nil {
			return fmt.Errorf("scanning hit: %w", err)
		}
		ranked = append(ranked, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating hits: %w", err)
	}

	matchExpr := ftsMatchExpression(req.Query)

	for _, r := range ranked {
		fields, err := e.loadFields(ctx, r.id, req.Fields)
		if err != nil {
			return err
		}
		// bm25 ranks are negative, lower is better.
		resp.Hits = append(resp.Hits, driven.EngineHit{Fields: fields, Score: -r.rank})

		if req.Highlight != nil && matchExpr != "" {
			fragment, err := e.snippet(ctx, r.id, matchExpr, req.Highlight.FragmentSize)
			if err != nil {
				return err
			}
			if fragment != "" {
				resp.Highlights[r.id] = []string{fragment}
			}
		}

		if req.MoreLikeThis != nil {
			similar, err := e.moreLikeThis(ctx, r.id, req.MoreLikeThis.Count)
			if err != nil {
				return err
			}
			if len(similar) > 0 {
				resp.MoreLikeThis[r.id] = similar
			}
		}
	}
	return nil
}

// loadFields returns the stored fields of a document, restricted to
// only when non-empty.
func (e *Engine) loadFields(ctx context.Context, id string, only []string) (map[string]string, error) {
	rows, err := e.db.QueryContext(ctx,
		"SELECT name, value FROM document_fields WHERE uniqueid = ?", id)
	if err != nil {
		return nil, fmt.Errorf("loading fields for %s: %w", id, err)
	}
	defer rows.Close()

	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		wanted[name] = true
	}

	fields := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		if len(only) > 0 && !wanted[name] {
			continue
		}
		fields[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fields: %w", err)
	}
	return fields, nil
}

// snippet returns one highlighted fragment for a hit.
func (e *Engine) snippet(ctx context.Context, id, matchExpr string, fragmentSize int) (string, error) {
	// FTS5 snippets are sized in tokens, not characters.
	tokens := fragmentSize / 5
	if tokens < 8 {
		tokens = 8
	}
	if tokens > 64 {
		tokens = 64
	}

	row := e.db.QueryRowContext(ctx,
		"SELECT snippet(content_fts, 1, '<em>', '</em>', '...', ?) FROM content_fts WHERE uniqueid = ? AND content_fts MATCH ?",
		tokens, id, matchExpr)

	var fragment string
	if err := row.Scan(&fragment); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("highlighting %s: %w", id, err)
	}
	return fragment, nil
}

// facetCounts returns the value counts of one field over the matched set.
func (e *Engine) facetCounts(ctx context.Context, match matchSet, field string) ([]driven.FacetCount, error) {
	args := append(append([]any{}, match.args...), field)
	rows, err := e.db.QueryContext(ctx,
		"SELECT df.value, COUNT(*) FROM document_fields df JOIN ("+match.sql+") m ON m.uniqueid = df.uniqueid WHERE df.name = ? GROUP BY df.value ORDER BY COUNT(*) DESC, df.value",
		args...)
	if err != nil {
		return nil, fmt.Errorf("faceting %s: %w", field, err)
	}
	defer rows.Close()

	var counts []driven.FacetCount
	for rows.Next() {
		var c driven.FacetCount
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning facet count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating facet counts: %w", err)
	}
	return counts, nil
}

// moreLikeThis finds documents sharing characteristic terms with the
// given document.
func (e *Engine) moreLikeThis(ctx context.Context, id string, count int) ([]driven.EngineHit, error) {
	var content string
	row := e.db.QueryRowContext(ctx,
		"SELECT value FROM document_fields WHERE uniqueid = ? AND name = ?", id, domain.FieldContent)
	if err := row.Scan(&content); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("loading content of %s: %w", id, err)
	}

	matchExpr := similarityExpression(content)
	if matchExpr == "" {
		return nil, nil
	}

	rows, err := e.db.QueryContext(ctx,
		"SELECT f.uniqueid, bm25(content_fts) FROM content_fts f WHERE content_fts MATCH ? AND f.uniqueid != ? ORDER BY bm25(content_fts) LIMIT ?",
		matchExpr, id, count)
	if err != nil {
		return nil, fmt.Errorf("finding similar documents for %s: %w", id, err)
	}
	defer rows.Close()

	var hits []driven.EngineHit
	for rows.Next() {
		var similarID string
		var rank float64
		if err := rows.Scan(&similarID, &rank); err != nil {
			return nil, fmt.Errorf("scanning similar document: %w", err)
		}
		hits = append(hits, driven.EngineHit{
			Fields: map[string]string{domain.FieldUniqueID: similarID},
			Score:  -rank,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating similar documents: %w", err)
	}
	return hits, nil
}

// Suggest completes the input's last word from the content vocabulary.
// For a multi-word input every candidate phrase is verified against the
// index: with InOrder set the words must occur adjacent and in input
// order, otherwise within Slop tokens of each other in any order.
func (e *Engine) Suggest(ctx context.Context, req driven.SuggestRequest) ([]domain.Suggestion, error) {
	term := strings.ToLower(strings.TrimSpace(req.Term))
	if term == "" {
		return nil, nil
	}

	count := req.Count
	if count <= 0 {
		count = defaultSuggestionCount
	}

	words := strings.Fields(term)
	preceding := words[:len(words)-1]

	completions, err := e.completions(ctx, words[len(words)-1], count)
	if err != nil {
		return nil, err
	}

	var suggestions []domain.Suggestion
	for _, completion := range completions {
		suggested := completion
		if len(preceding) > 0 {
			phrase := append(append([]string{}, preceding...), completion)
			ok, err := e.phraseExists(ctx, phrase, req.Slop, req.InOrder)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			suggested = strings.Join(phrase, " ")
		}
		suggestions = append(suggestions, domain.Suggestion{Label: suggested, Value: suggested})
	}
	return suggestions, nil
}

// completions returns up to count vocabulary terms starting with
// prefix, most frequent first.
func (e *Engine) completions(ctx context.Context, prefix string, count int) ([]string, error) {
	rows, err := e.db.QueryContext(ctx,
		"SELECT term FROM content_terms WHERE term >= ? AND term < ? ORDER BY cnt DESC, term LIMIT ?",
		prefix, prefix+"\uffff", count)
	if err != nil {
		return nil, fmt.Errorf("querying suggestions: %w", err)
	}
	defer rows.Close()

	var completions []string
	for rows.Next() {
		var completion string
		if err := rows.Scan(&completion); err != nil {
			return nil, fmt.Errorf("scanning suggestion: %w", err)
		}
		completions = append(completions, completion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suggestions: %w", err)
	}
	return completions, nil
}

// phraseExists reports whether any indexed document contains the words
// as a phrase. Ordered matching uses an exact FTS5 phrase; unordered
// matching uses NEAR with slop as the token distance.
func (e *Engine) phraseExists(ctx context.Context, words []string, slop int, inOrder bool) (bool, error) {
	var expr string
	if inOrder {
		expr = `"` + strings.ReplaceAll(strings.Join(words, " "), `"`, `""`) + `"`
	} else {
		if slop < 0 {
			slop = 0
		}
		quoted := make([]string, 0, len(words))
		for _, word := range words {
			quoted = append(quoted, `"`+strings.ReplaceAll(word, `"`, `""`)+`"`)
		}
		expr = "NEAR(" + strings.Join(quoted, " ") + ", " + strconv.Itoa(slop) + ")"
	}

	row := e.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM content_fts WHERE content_fts MATCH ?)", expr)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("verifying phrase %q: %w", strings.Join(words, " "), err)
	}
	return exists, nil
}

// ftsMatchExpression turns a free-text query into an FTS5 match
// expression with every term quoted. Returns "" for the match-all
// query or an empty input.
func ftsMatchExpression(query string) string {
	if query == driven.MatchAllQuery {
		return ""
	}
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.Trim(term, `"`)
		if term == "" {
			continue
		}
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}

// parseFilterClause splits a "field:value" clause and removes the
// escaping applied to the value.
func parseFilterClause(clause string) (field, value string, err error) {
	idx := strings.Index(clause, ":")
	if idx <= 0 {
		return "", "", fmt.Errorf("%w: filter clause %q", domain.ErrInvalidInput, clause)
	}
	return clause[:idx], unescapeQueryChars(clause[idx+1:]), nil
}

// unescapeQueryChars removes backslash escaping from a filter value.
func unescapeQueryChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// similarityExpression builds an OR query over the characteristic
// terms of a document's content.
func similarityExpression(content string) string {
	const maxTerms = 8

	seen := make(map[string]bool)
	var terms []string
	for _, token := range strings.Fields(strings.ToLower(content)) {
		token = strings.Trim(token, `.,;:!?"'()[]{}`)
		if len(token) < 4 || seen[token] {
			continue
		}
		seen[token] = true
		terms = append(terms, `"`+strings.ReplaceAll(token, `"`, `""`)+`"`)
		if len(terms) == maxTerms {
			break
		}
	}
	return strings.Join(terms, " OR ")
}
