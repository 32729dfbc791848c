package bytestore

import (
	"errors"
	"fmt"
)

// Open errors
var (
	// ErrNotFound indicates that the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrAccess indicates that the file cannot be opened for reading, or that
	// a commit was attempted on a store opened read-only.
	ErrAccess = errors.New("access denied")
)

// Edit errors
var (
	// ErrBounds indicates that a write falls outside the file.
	ErrBounds = errors.New("write out of bounds")
)

// I/O errors
var (
	// ErrIO indicates that the underlying file failed a read or write.
	ErrIO = errors.New("i/o failure")

	// ErrClosed indicates use of a store after Close.
	ErrClosed = errors.New("store closed")
)

// BoundsError describes a rejected Write.
type BoundsError struct {
	Offset int64
	Length int
	Size   int64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("write [%d, %d) outside file of %d bytes", e.Offset, e.Offset+int64(e.Length), e.Size)
}

func (e *BoundsError) Is(target error) bool { return target == ErrBounds }

// CommitError describes where a Commit stopped. Runs before Offset were
// written and are no longer pending; the run at Offset and everything after it
// are still pending.
type CommitError struct {
	Offset    int64
	Committed int
	Err       error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit at offset %d: %v", e.Offset, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
