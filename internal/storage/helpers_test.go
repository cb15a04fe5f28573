// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides temp-dir backed blobs and a blob that fails on demand.
package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupMemFile(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(afero.NewMemMapFs(), "/data/intervals.json")
}

var errDiskFull = errors.New("disk full")

// flakyBlob is an in-memory Blob whose reads and writes can be made to fail.
type flakyBlob struct {
	data      []byte
	failRead  bool
	failWrite bool
	writes    int
}

func (f *flakyBlob) Read() ([]byte, error) {
	if f.failRead {
		return nil, errDiskFull
	}
	return f.data, nil
}

func (f *flakyBlob) Write(data []byte) error {
	if f.failWrite {
		return errDiskFull
	}
	f.writes++
	f.data = append([]byte(nil), data...)
	return nil
}

func (f *flakyBlob) Close() error { return nil }
