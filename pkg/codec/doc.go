// Package codec provides book record serialization and deserialization for bookdb.
//
// The codec package implements the line-oriented text format used by the
// bookdb backing file. It is the foundation for the store's load and append
// operations.
//
// # Record Format
//
// Each record occupies exactly one line. The four fields are joined with a
// forward slash:
//
//	Title/Author/ISBN/Year
//
// Fields:
//   - Title: book title, free text
//   - Author: author name, free text
//   - ISBN: stored as text, no checksum validation
//   - Year: free text; only its digit characters are used for ordering
//
// There is no header line and no escaping. A field containing the delimiter
// produces a line that no longer splits into four parts and is rejected when the
// file is read back. Callers are expected to keep the delimiter out of field
// values.
//
// # Usage
//
// Basic encoding and decoding:
//
//	c := codec.NewRecordCodec()
//
//	line := c.Encode(codec.NewRecord("Dune", "Frank Herbert", "9780441013593", "1965"))
//
//	record, err := c.Decode(line, 1)
//	if err != nil {
//	    return err // *MalformedRecordError
//	}
//
// # Ordering
//
// SortKey extracts the digits of the Year field in their original order.
// Keys are compared as text, not as numbers, so "100" sorts before "9" and a
// year without digits sorts first. Use Compare with slices.SortStableFunc to
// keep records with equal keys in file order.
//
// # Error Handling
//
// Decode returns a *MalformedRecordError carrying the 1-based line number and
// the raw line whenever a line does not split into exactly four fields. The
// error matches ErrMalformedRecord with errors.Is.
//
// # Thread Safety
//
// RecordCodec instances hold no state and are safe for concurrent use. Record
// is a plain value type.
package codec
