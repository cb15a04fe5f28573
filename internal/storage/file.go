// ABOUTME: JSON file Blob on an afero filesystem.
// ABOUTME: Writes go through a temp file and rename so a crash never leaves a torn blob.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps the intervals blob in a single file.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore returns a FileStore writing to path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// OpenFile returns a FileStore on the OS filesystem.
func OpenFile(path string) *FileStore {
	return NewFileStore(afero.NewOsFs(), path)
}

// Path returns the blob file path.
func (f *FileStore) Path() string {
	return f.path
}

// Read returns the file contents, or nil if the file does not exist.
func (f *FileStore) Read() ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return data, nil
}

// Write atomically replaces the file contents.
func (f *FileStore) Write(data []byte) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (f *FileStore) Close() error {
	return nil
}
