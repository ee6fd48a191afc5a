package store

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/ssargent/bookdb/pkg/codec"
)

// LineReader provides sequential access to the records of a backing file
type LineReader struct {
	file   *os.File
	reader *bufio.Reader
	codec  *codec.RecordCodec
	line   int // number of the last line read, 1-based
	config LineReaderConfig
}

// NewLineReader opens the backing file for reading
func NewLineReader(config LineReaderConfig) (*LineReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	return &LineReader{
		file:   file,
		reader: bufio.NewReader(file),
		codec:  codec.NewRecordCodec(),
		config: config,
	}, nil
}

// ReadNext decodes the next line. It returns io.EOF after the last record and
// a *codec.MalformedRecordError for a line that does not hold four fields.
func (r *LineReader) ReadNext() (codec.Record, error) {
	for {
		text, err := r.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return codec.Record{}, err
		}
		if err == io.EOF && text == "" {
			return codec.Record{}, io.EOF
		}
		r.line++

		// Files written by older releases start with an empty line.
		if r.line == 1 && strings.TrimRight(text, "\r\n") == "" {
			continue
		}

		return r.codec.Decode(text, r.line)
	}
}

// Line returns the 1-based number of the last line read
func (r *LineReader) Line() int {
	return r.line
}

// Path returns the file path
func (r *LineReader) Path() string {
	return r.config.FilePath
}

// Iterator returns a streaming iterator for records
func (r *LineReader) Iterator() RecordIterator {
	return &lineRecordIterator{reader: r}
}

// Close closes the line reader
func (r *LineReader) Close() error {
	return r.file.Close()
}

// lineRecordIterator implements RecordIterator for streaming access
type lineRecordIterator struct {
	reader *LineReader
	record codec.Record
	err    error
}

func (it *lineRecordIterator) Next() bool {
	if it.err != nil {
		return false
	}
	it.record, it.err = it.reader.ReadNext()
	return it.err == nil
}

func (it *lineRecordIterator) Record() codec.Record {
	return it.record
}

// Err returns the error that stopped iteration, nil at a clean end of file
func (it *lineRecordIterator) Err() error {
	if it.err == io.EOF {
		return nil
	}
	return it.err
}

func (it *lineRecordIterator) Close() error {
	// Don't close the underlying reader as it's owned by the caller
	return nil
}
