package domain

// Stable field identifiers used in every record handed to the search engine.
// These names are a wire contract with the engine; they never change and
// are never empty.
const (
	// FieldUniqueID uniquely identifies a document. It is the file name.
	FieldUniqueID = "uniqueid"

	// FieldLocationID identifies the configured location the file came from.
	FieldLocationID = "locationid"

	// FieldContentMD5 is the content-addressed digest of the raw text,
	// used for deduplication and staleness checks.
	FieldContentMD5 = "contentmd5"

	// FieldFileSize is the file size in bytes, stored as decimal text.
	FieldFileSize = "filesize"

	// FieldLastModified is the modification time in Unix milliseconds,
	// stored as decimal text.
	FieldLastModified = "lastmodified"

	// FieldLanguage is the detected language code.
	FieldLanguage = "language"

	// FieldContent is the full document body.
	FieldContent = "content"

	// FieldExtension is the file extension, carried as a metadata attribute.
	FieldExtension = "extension"

	// AttributePrefix prefixes every field derived from extracted metadata.
	AttributePrefix = "attr_"
)

// Field is one named value within a FieldSet.
type Field struct {
	// Name is the stable field identifier. Never empty.
	Name string

	// Value is the field content.
	Value string
}

// FieldSet is the flattened record sent to the search engine.
// Fields keep their insertion order; setting a name twice replaces
// the earlier value in place.
type FieldSet struct {
	fields []Field
}

// Set stores value under name, replacing any existing value.
// Empty names are ignored.
func (s *FieldSet) Set(name, value string) {
	if name == "" {
		return
	}
	for i := range s.fields {
		if s.fields[i].Name == name {
			s.fields[i].Value = value
			return
		}
	}
	s.fields = append(s.fields, Field{Name: name, Value: value})
}

// Get returns the value stored under name.
func (s *FieldSet) Get(name string) (string, bool) {
	for i := range s.fields {
		if s.fields[i].Name == name {
			return s.fields[i].Value, true
		}
	}
	return "", false
}

// Fields returns all fields in insertion order.
func (s *FieldSet) Fields() []Field {
	return s.fields
}

// Len returns the number of fields.
func (s *FieldSet) Len() int {
	return len(s.fields)
}
