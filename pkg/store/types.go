package store

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ssargent/bookdb/pkg/codec"
)

// LineWriterConfig holds configuration for the line writer
type LineWriterConfig struct {
	FilePath string // Path to the backing file
	Fsync    bool   // Sync to disk after every Put
}

// LineReaderConfig holds configuration for the line reader
type LineReaderConfig struct {
	FilePath string // Path to the backing file
}

// StoreConfig holds configuration for the book store
type StoreConfig struct {
	FilePath string // Backing file, one record per line
	Fsync    bool   // Fsync each append before closing the file
}

// RecordIterator provides streaming access to records
type RecordIterator interface {
	Next() bool
	Record() codec.Record
	Err() error
	Close() error
}

// Observer receives the outcome of every store operation.
// metrics.Metrics satisfies it.
type Observer interface {
	ObserveLoad(elapsed time.Duration, records int, err error)
	ObserveAppend(elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveLoad(time.Duration, int, error) {}
func (nopObserver) ObserveAppend(time.Duration, error)    {}

// Errors
var (
	ErrNotFound = errors.New("database file not found")
	ErrNoPath   = errors.New("no database file path configured")
)

// NotFoundError is returned by Load when the backing file does not exist
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("database file %q not found", e.Path)
}

// Is lets errors.Is match ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// LoadError reports the first stored line that could not be decoded.
// The load is abandoned and no records are returned.
type LoadError struct {
	Path string
	Line int    // 1-based
	Raw  string // offending line without terminator
	Err  error  // underlying *codec.MalformedRecordError
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("invalid record in %q on line %d: %q (expected %s)", e.Path, e.Line, e.Raw, codec.Schema)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IOError wraps a filesystem failure during load or append
type IOError struct {
	Op   string // "open", "read", "write", "stat" or "close"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
