// Package fs provides local filesystem adapters for the driven ports.
package fs

import (
	"os"

	"github.com/custodia-labs/deskseek/internal/core/ports/driven"
)

// Ensure Local implements the interface.
var _ driven.FileSystem = (*Local)(nil)

// Local answers existence checks against the local filesystem.
type Local struct{}

// NewLocal creates a new local filesystem adapter.
func NewLocal() *Local {
	return &Local{}
}

// Exists reports whether the file at path is present.
func (*Local) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
