package domain

import "time"

// MetadataValue is the value of one extracted metadata attribute.
// It is a sealed two-variant union: TextValue or TimeValue. Adding a
// third kind is a deliberate, compile-checked extension.
type MetadataValue interface {
	metadataValue()
}

// TextValue is a plain text metadata value.
type TextValue string

func (TextValue) metadataValue() {}

// TimeValue is a timestamp metadata value.
type TimeValue time.Time

func (TimeValue) metadataValue() {}

// MetadataEntry is one extracted attribute of a file.
// Entries are produced by the external content extractor and are
// read-only to this core.
type MetadataEntry struct {
	// Key is the attribute name. Entries with an empty key are skipped.
	Key string

	// Value is the attribute value.
	Value MetadataValue
}

// Content is an extracted file ready for indexing.
// It is produced by the external content extractor, one per file,
// and consumed once by the document mapper.
type Content struct {
	// FileName is the absolute path of the file. It doubles as the
	// document's unique id.
	FileName string

	// FileSize is the file size in bytes.
	FileSize int64

	// LastModified is the file's modification time.
	LastModified time.Time

	// Language is the detected language code.
	Language string

	// Text is the extracted raw text.
	Text string

	// Metadata is the ordered sequence of extracted attributes.
	Metadata []MetadataEntry
}
