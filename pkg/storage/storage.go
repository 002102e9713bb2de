package storage

import (
	"context"
	"errors"
	"os"
)

var (
	// ErrNotFound is returned when a key does not exist in storage.
	ErrNotFound = errors.New("Not found")
)

// Storage is a key/value document store geared towards "bucket" style storage.
type Storage interface {
	// Write stores body at key, replacing any previous value.
	Write(ctx context.Context, key string, body []byte, options *Options) error

	// Read returns the value stored at key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Remove deletes the value stored at key. A missing key returns ErrNotFound.
	Remove(ctx context.Context, key string) error
}

// Options are optional settings for a Write.
type Options struct {
	TTL     int64       // Seconds until the object expires. Zero means never. S3 only.
	Mode    os.FileMode // File mode. Filesystem only.
	DirMode os.FileMode // Mode used for created directories. Filesystem only.
}

// NewOptions returns the default Options.
func NewOptions() Options {
	return Options{
		Mode:    0644,
		DirMode: 0755,
	}
}

// CreateStorage returns the Storage described by the config. A bucket named "standalone" is
// stored on the local filesystem under Root, anything else is treated as an S3 bucket.
func CreateStorage(config Config) Storage {
	if config.IsStandalone() {
		return NewFilesystemStorage(config)
	}

	return NewS3Storage(config)
}
