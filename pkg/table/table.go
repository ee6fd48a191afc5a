// Package table renders book records as a bordered, column-aligned text table
// and draws the framed message boxes used by the interactive shell.
package table

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ssargent/bookdb/pkg/codec"
)

const (
	// cellPadding is the number of spaces on each side of a value
	cellPadding = 2
	// frameWidth is the width a row adds on top of its values: per column a
	// border and two paddings, plus the closing border.
	frameWidth = codec.FieldCount*(1+2*cellPadding) + 1
)

// DefaultHeaders are the column titles used by bookdb
var DefaultHeaders = [codec.FieldCount]string{"BOOK", "WRITER", "ISBN", "PUBLISHING YEAR"}

// Widths returns, per column, the longest value among the headers and every
// row, measured in runes. The header seeds each maximum, so an empty row set
// yields the header lengths.
func Widths(headers [codec.FieldCount]string, rows []codec.Record) [codec.FieldCount]int {
	var widths [codec.FieldCount]int
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, v := range row.Fields() {
			widths[i] = max(widths[i], utf8.RuneCountInString(v))
		}
	}
	return widths
}

// BorderWidth is the length of every line of a rendered table
func BorderWidth(widths [codec.FieldCount]int) int {
	total := frameWidth
	for _, w := range widths {
		total += w
	}
	return total
}

// Render writes the table: border, header row, separator, one line per record
// in the given order, border. Rows are not sorted here.
func Render(w io.Writer, headers [codec.FieldCount]string, rows []codec.Record) error {
	widths := Widths(headers, rows)
	border := strings.Repeat("-", BorderWidth(widths))

	bw := bufio.NewWriter(w)

	writeLine(bw, border)
	writeRow(bw, headers, widths)
	writeLine(bw, border)
	for _, row := range rows {
		writeRow(bw, row.Fields(), widths)
	}
	writeLine(bw, border)

	return bw.Flush()
}

// String renders the table into a string
func String(headers [codec.FieldCount]string, rows []codec.Record) string {
	var b strings.Builder
	_ = Render(&b, headers, rows)
	return b.String()
}

func writeRow(w *bufio.Writer, values [codec.FieldCount]string, widths [codec.FieldCount]int) {
	pad := strings.Repeat(" ", cellPadding)
	for i, v := range values {
		w.WriteString("|")
		w.WriteString(pad)
		w.WriteString(v)
		w.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v)))
		w.WriteString(pad)
	}
	w.WriteString("|\n")
}

func writeLine(w *bufio.Writer, s string) {
	w.WriteString(s)
	w.WriteByte('\n')
}
