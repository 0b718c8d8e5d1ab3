// Package sqlite implements the search engine port on top of SQLite
// with FTS5. Documents are stored as flat field sets; the content
// field is indexed for BM25-ranked matching, snippet highlighting,
// more-like-this candidates and vocabulary-based term suggestions.
//
// The adapter owns ranking, tokenisation and the storage format; the
// core only sees the driven.SearchEngine contract.
package sqlite
