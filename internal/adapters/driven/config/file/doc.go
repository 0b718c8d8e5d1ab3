// Package file provides file-based configuration storage.
package file
