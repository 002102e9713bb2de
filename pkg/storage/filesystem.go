package storage

import (
	"context"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FilesystemStorage implements the Storage interface for interacting with
// the local filesystem.
type FilesystemStorage struct {
	Config Config
}

// NewFilesystemStorage implements the Storage interface for simple S3 like
// file system interactions.
func NewFilesystemStorage(config Config) FilesystemStorage {
	return FilesystemStorage{
		Config: config,
	}
}

// Write writes the data to a file on the local filesystem. The data is written to a temporary
// file first and renamed into place so a reader never sees a partially written value.
func (f FilesystemStorage) Write(ctx context.Context,
	key string,
	body []byte,
	options *Options) error {

	// make sure that the Options argument is valid
	if options == nil {
		opts := NewOptions()
		options = &opts
	}

	filename := f.buildPath(key)

	// make sure directory exists.
	dir := path.Dir(filepath.ToSlash(filename))

	if err := f.ensureExists(filepath.FromSlash(dir), options); err != nil {
		return err
	}

	var mode os.FileMode = 0644

	if options.Mode != 0 {
		mode = options.Mode
	}

	tmp := filename + ".tmp"
	if err := ioutil.WriteFile(tmp, body, mode); err != nil {
		return err
	}

	return os.Rename(tmp, filename)
}

// Read reads the data from a file on the local filesystem.
func (f FilesystemStorage) Read(ctx context.Context,
	key string) ([]byte, error) {

	filename := f.buildPath(key)

	// check for existence of file
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, ErrNotFound
	}

	return ioutil.ReadFile(filename)
}

// Remove removes the file stored at key.
func (f FilesystemStorage) Remove(ctx context.Context, key string) error {
	err := os.Remove(f.buildPath(key))
	if os.IsNotExist(err) {
		return ErrNotFound
	}

	return err
}

func (f FilesystemStorage) buildPath(key string) string {
	parts := []string{
		f.Config.Root,
		f.Config.Bucket,
	}

	if len(key) > 0 {
		parts = append(parts, key)
	}

	s := strings.Join(parts, "/")

	return filepath.FromSlash(s)
}

func (f FilesystemStorage) ensureExists(dir string, options *Options) error {
	if options == nil {
		opts := NewOptions()
		options = &opts
	}

	dirMode := options.DirMode
	if dirMode == 0 {
		dirMode = 0755
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return err
		}
	}

	return nil
}
