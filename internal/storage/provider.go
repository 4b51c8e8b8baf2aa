// Package storage defines the data-directory file-system abstraction.
package storage

import "time"

// Item is a file returned by List.
type Item struct {
	Path    string    `json:"path"` // relative to the storage root
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Provider is the interface for data-directory file operations.
type Provider interface {
	// Root returns the absolute path of the storage root.
	Root() string
	// Abs resolves path (relative to root) to an absolute path inside root.
	Abs(path string) (string, error)
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)
	// List returns the files in dir whose base name matches the glob pattern.
	List(dir, pattern string) ([]Item, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
