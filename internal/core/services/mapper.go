package services

import (
	"crypto/md5" //nolint:gosec // Content fingerprint for dedup, not a security boundary.
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/deskseek/internal/core/domain"
)

// DocumentMapper converts extracted content into a flat field set ready
// for indexing. It has no side effects and never talks to the engine.
type DocumentMapper struct{}

// NewDocumentMapper creates a new document mapper.
func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

// MapToFields flattens content into the engine record. Text metadata is
// stored verbatim under attr_<key>; timestamp metadata is expanded into
// three date buckets so the same attribute can be faceted at day, month
// and year granularity without the engine understanding dates. The
// document body is set last.
func (m *DocumentMapper) MapToFields(locationID string, content *domain.Content) domain.FieldSet {
	var fields domain.FieldSet

	fields.Set(domain.FieldUniqueID, content.FileName)
	fields.Set(domain.FieldLocationID, locationID)
	digest := md5.Sum([]byte(content.Text)) //nolint:gosec // See import note.
	fields.Set(domain.FieldContentMD5, hex.EncodeToString(digest[:]))
	fields.Set(domain.FieldFileSize, strconv.FormatInt(content.FileSize, 10))
	fields.Set(domain.FieldLastModified, strconv.FormatInt(content.LastModified.UnixMilli(), 10))
	fields.Set(domain.FieldLanguage, content.Language)

	for _, entry := range content.Metadata {
		if entry.Key == "" {
			continue
		}
		name := domain.AttributePrefix + entry.Key
		switch value := entry.Value.(type) {
		case domain.TextValue:
			if value != "" {
				fields.Set(name, string(value))
			}
		case domain.TimeValue:
			t := time.Time(value).UTC()
			fields.Set(name+"-year-month-day", fmt.Sprintf("%04d/%02d/%02d", t.Year(), t.Month(), t.Day()))
			fields.Set(name+"-year", fmt.Sprintf("%04d", t.Year()))
			fields.Set(name+"-year-month", fmt.Sprintf("%04d/%02d", t.Year(), t.Month()))
		default:
			// Other value kinds carry nothing indexable.
		}
	}

	fields.Set(domain.FieldContent, content.Text)

	return fields
}
