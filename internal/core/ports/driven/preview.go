package driven

// PreviewProcessor reports whether a preview can be rendered for a file.
type PreviewProcessor interface {
	// PreviewAvailableFor reports whether the file at path has a
	// renderable preview.
	PreviewAvailableFor(path string) bool
}
