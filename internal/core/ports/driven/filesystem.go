package driven

// FileSystem answers existence checks against the local filesystem.
// Used by result assembly to detect index entries whose backing file
// is gone.
type FileSystem interface {
	// Exists reports whether the file at path is present.
	Exists(path string) bool
}
