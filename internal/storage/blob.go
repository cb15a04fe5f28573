// ABOUTME: Blob interface for the single durable buffer that holds all intervals.
// ABOUTME: Defines PersistenceError shared by every storage backend.
package storage

import (
	"fmt"
)

// BlobName is the key under which every backend stores the intervals blob.
const BlobName = "intervals_by_date"

// Blob is one opaque durable byte buffer.
// Read returns nil, nil when nothing has been written yet.
type Blob interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Close() error
}

// PersistenceError reports a failed encode, decode, read or write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
