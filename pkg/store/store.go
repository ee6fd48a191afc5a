package store

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/ssargent/bookdb/pkg/codec"
)

// Store owns load and append operations against a single backing file.
// It keeps no records in memory between calls.
type Store struct {
	config   StoreConfig
	logger   *slog.Logger
	observer Observer
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for operation diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers an observer notified after every load and append
func WithObserver(observer Observer) Option {
	return func(s *Store) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// NewStore creates a store for the configured backing file
func NewStore(config StoreConfig, opts ...Option) (*Store, error) {
	if config.FilePath == "" {
		return nil, ErrNoPath
	}

	s := &Store{
		config:   config,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("db", config.FilePath)

	return s, nil
}

// Load reads every record from the backing file, sorted ascending by
// codec.SortKey. Records with equal keys keep their file order.
func (s *Store) Load() ([]codec.Record, error) {
	start := time.Now()
	records, err := s.load()
	elapsed := time.Since(start)

	s.observer.ObserveLoad(elapsed, len(records), err)
	if err != nil {
		s.logger.Debug("load failed", "error", err, "elapsed", elapsed)
		return nil, err
	}
	s.logger.Debug("loaded records", "count", len(records), "elapsed", elapsed)

	return records, nil
}

func (s *Store) load() ([]codec.Record, error) {
	path := s.config.FilePath

	reader, err := NewLineReader(LineReaderConfig{FilePath: path})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer reader.Close()

	records := []codec.Record{}
	it := reader.Iterator()
	defer it.Close()
	for it.Next() {
		records = append(records, it.Record())
	}
	if err := it.Err(); err != nil {
		var malformed *codec.MalformedRecordError
		if errors.As(err, &malformed) {
			return nil, &LoadError{Path: path, Line: malformed.Line, Raw: malformed.Raw, Err: err}
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	slices.SortStableFunc(records, codec.Compare)
	return records, nil
}

// Append adds a record to the end of the backing file, creating the file if
// it does not exist. The record is written as given; nothing is re-read.
func (s *Store) Append(record codec.Record) error {
	start := time.Now()
	err := s.append(record)
	elapsed := time.Since(start)

	s.observer.ObserveAppend(elapsed, err)
	if err != nil {
		s.logger.Debug("append failed", "error", err, "elapsed", elapsed)
		return err
	}
	s.logger.Debug("appended record", "title", record.Title, "elapsed", elapsed)

	return nil
}

func (s *Store) append(record codec.Record) error {
	path := s.config.FilePath

	writer, err := NewLineWriter(LineWriterConfig{FilePath: path, Fsync: s.config.Fsync})
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}

	if _, err := writer.Put(record); err != nil {
		_ = writer.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if err := writer.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}

	return nil
}

// Stats summarises the backing file
type Stats struct {
	Records   int    `json:"records"`
	SizeBytes int64  `json:"size_bytes"`
	Undated   int    `json:"undated"`              // records whose year holds no digits
	FirstKey  string `json:"first_key,omitempty"` // smallest non-empty sort key
	LastKey   string `json:"last_key,omitempty"`  // largest sort key
}

// Stats loads the backing file and reports its size and key range
func (s *Store) Stats() (*Stats, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(s.config.FilePath)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: s.config.FilePath, Err: err}
	}

	stats := &Stats{
		Records:   len(records),
		SizeBytes: info.Size(),
	}
	for _, r := range records {
		key := codec.SortKey(r)
		if key == "" {
			stats.Undated++
			continue
		}
		if stats.FirstKey == "" {
			stats.FirstKey = key
		}
		stats.LastKey = key
	}

	return stats, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.config.FilePath
}

// Load reads and sorts all records from path with a default store
func Load(path string) ([]codec.Record, error) {
	s, err := NewStore(StoreConfig{FilePath: path})
	if err != nil {
		return nil, err
	}
	return s.Load()
}

// Append writes one record to path with a default store
func Append(path string, record codec.Record) error {
	s, err := NewStore(StoreConfig{FilePath: path})
	if err != nil {
		return err
	}
	return s.Append(record)
}
