package fs

import (
	"path/filepath"
	"strings"

	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
)

// Ensure ExtensionPreview implements the interface.
var _ driven.PreviewProcessor = (*ExtensionPreview)(nil)

// ExtensionPreview decides preview availability by file extension.
type ExtensionPreview struct {
	extensions map[string]bool
}

// NewExtensionPreview creates a preview processor for the file types a
// preview can be rendered for.
func NewExtensionPreview() *ExtensionPreview {
	return &ExtensionPreview{
		extensions: map[string]bool{
			".pdf":  true,
			".png":  true,
			".jpg":  true,
			".jpeg": true,
			".gif":  true,
			".bmp":  true,
			".tiff": true,
		},
	}
}

// PreviewAvailableFor reports whether the file at path has a
// renderable preview.
func (p *ExtensionPreview) PreviewAvailableFor(path string) bool {
	return p.extensions[strings.ToLower(filepath.Ext(path))]
}
