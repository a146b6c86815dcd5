// Package store defines the ordered key-value contract indexers write to.
package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("store closed")
)

// Marker is the zero-length value of presence-only records. A key holding a Marker is
// present; it is not the same as a missing key.
type Marker struct{}

// Bytes is the stored form of a Marker.
func (Marker) Bytes() []byte { return []byte{} }

// ScanOptions bounds a range scan. Both bounds are inclusive; a nil bound is open.
type ScanOptions struct {
	GreaterOrEqual []byte
	LessOrEqual    []byte
}

// ScanFunc is called for every entry of a scan in ascending key order.
// Returning an error stops the scan and is returned by Scan.
// key and value are only valid for the duration of the call unless copied.
type ScanFunc func(key, value []byte) error

// Reader is the read side of an ordered store.
type Reader interface {
	Has(ctx context.Context, key []byte) (bool, error)
	Get(ctx context.Context, key []byte) ([]byte, error)
	Scan(ctx context.Context, opts ScanOptions, fn ScanFunc) error
}

// Writer collects mutations.
type Writer interface {
	Put(key, value []byte) error
	// Mark stores a presence-only record.
	Mark(key []byte) error
	Delete(key []byte) error
}

// Batch is a set of mutations committed atomically by Write.
// A failed Write leaves the store unchanged.
type Batch interface {
	Writer

	// Len is the number of buffered operations.
	Len() int
	Write(ctx context.Context) error
	Reset()
}

// OrderedStore is a durable ordered key-value namespace with atomic batches.
type OrderedStore interface {
	Reader

	NewBatch() Batch
	Close() error
}

// WriteError is returned when a batch commit fails. Nothing from the batch was applied,
// so the operation that produced it can be retried.
type WriteError struct {
	Op  string
	Err error
}

// NewWriteError creates a new WriteError.
func NewWriteError(op string, err error) *WriteError {
	return &WriteError{Op: op, Err: err}
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store write failed during %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// InBounds reports whether key lies inside opts.
func (o ScanOptions) InBounds(key []byte) bool {
	if o.GreaterOrEqual != nil && string(key) < string(o.GreaterOrEqual) {
		return false
	}
	if o.LessOrEqual != nil && string(key) > string(o.LessOrEqual) {
		return false
	}
	return true
}
