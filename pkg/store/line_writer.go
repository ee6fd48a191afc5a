package store

import (
	"os"
	"strings"

	"github.com/ssargent/bookdb/pkg/codec"
)

// LineWriter handles append-only writes to the backing file
type LineWriter struct {
	file   *os.File
	codec  *codec.RecordCodec
	config LineWriterConfig
	offset int64 // Current file size
	// whether the last byte on disk is a newline, so no separator is needed
	terminated bool
}

// NewLineWriter opens the backing file for appending, creating it if needed.
// Parent directories are not created.
func NewLineWriter(config LineWriterConfig) (*LineWriter, error) {
	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	writer := &LineWriter{
		file:   file,
		codec:  codec.NewRecordCodec(),
		config: config,
		offset: stat.Size(),
	}

	if writer.offset > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, writer.offset-1); err != nil {
			_ = file.Close()
			return nil, err
		}
		writer.terminated = last[0] == '\n'
	}

	return writer, nil
}

// Put appends a record and returns the offset at which its line starts.
// A newline separator is written first unless the file is empty or already
// ends with one, so the file never gains a blank line.
func (w *LineWriter) Put(r codec.Record) (int64, error) {
	var b strings.Builder
	if w.offset > 0 && !w.terminated {
		b.WriteByte('\n')
	}
	recordOffset := w.offset + int64(b.Len())
	b.WriteString(w.codec.Encode(r))

	// Separator and line go out in a single write
	n, err := w.file.WriteString(b.String())
	w.offset += int64(n)
	if err != nil {
		return 0, err
	}
	w.terminated = false

	if w.config.Fsync {
		if err := w.file.Sync(); err != nil {
			return 0, err
		}
	}

	return recordOffset, nil
}

// Sync forces a fsync to disk
func (w *LineWriter) Sync() error {
	return w.file.Sync()
}

// Close closes the line writer
func (w *LineWriter) Close() error {
	return w.file.Close()
}

// Size returns the current size of the backing file
func (w *LineWriter) Size() int64 {
	return w.offset
}

// Path returns the file path
func (w *LineWriter) Path() string {
	return w.config.FilePath
}
