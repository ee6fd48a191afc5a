package codec

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// Delimiter separates the fields of a record on disk
	Delimiter = "/"
	// FieldCount is the number of fields every record carries
	FieldCount = 4
	// Schema describes the expected layout of a stored line
	Schema = "Title/Author/ISBN/Year"
)

// ErrMalformedRecord is matched by every *MalformedRecordError
var ErrMalformedRecord = errors.New("malformed record")

// Record represents one book entry
type Record struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Year   string `json:"year"`
}

// NewRecord creates a record from the four field values, stored as given
func NewRecord(title, author, isbn, year string) Record {
	return Record{
		Title:  title,
		Author: author,
		ISBN:   isbn,
		Year:   year,
	}
}

// Fields returns the field values in column order
func (r Record) Fields() [FieldCount]string {
	return [FieldCount]string{r.Title, r.Author, r.ISBN, r.Year}
}

// MalformedRecordError reports a stored line that does not split into FieldCount fields
type MalformedRecordError struct {
	Line int    // 1-based line number
	Raw  string // line content without its terminator
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record on line %d: %q (expected %s)", e.Line, e.Raw, Schema)
}

// Is lets errors.Is match ErrMalformedRecord
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// RecordCodec handles serialization and deserialization of records
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Encode serializes a record into a single line without a terminator
// Format: Title/Author/ISBN/Year
func (c *RecordCodec) Encode(r Record) string {
	fields := r.Fields()
	return strings.Join(fields[:], Delimiter)
}

// Decode parses one stored line. lineNumber is only used for error reporting.
func (c *RecordCodec) Decode(line string, lineNumber int) (Record, error) {
	raw := strings.TrimRight(line, "\r\n")

	parts := strings.Split(raw, Delimiter)
	if len(parts) != FieldCount {
		return Record{}, &MalformedRecordError{Line: lineNumber, Raw: raw}
	}

	return NewRecord(parts[0], parts[1], parts[2], parts[3]), nil
}

// SortKey returns the digit characters of the year field in their original order
func SortKey(r Record) string {
	var b strings.Builder
	for _, ch := range r.Year {
		if unicode.IsDigit(ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// Compare orders two records by their sort keys as text.
// Intended for slices.SortStableFunc.
func Compare(a, b Record) int {
	return strings.Compare(SortKey(a), SortKey(b))
}
