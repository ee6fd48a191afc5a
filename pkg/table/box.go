package table

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// BoxStyle selects the characters used to frame a box
type BoxStyle struct {
	Side       string // left and right edge of each line
	Horizontal string // top and bottom border
}

var (
	// InfoStyle frames headings and notices
	InfoStyle = BoxStyle{Side: "|", Horizontal: "-"}
	// ErrorStyle frames error explanations
	ErrorStyle = BoxStyle{Side: "!", Horizontal: "!"}
)

// Box writes lines inside a frame, preceded and followed by an empty line.
// The frame is six characters wider than the longest line.
func Box(w io.Writer, lines []string, style BoxStyle) error {
	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	width := longest + 6
	border := strings.Repeat(style.Horizontal, width)

	bw := bufio.NewWriter(w)
	bw.WriteString("\n")
	writeLine(bw, border)
	for _, l := range lines {
		bw.WriteString(style.Side)
		bw.WriteString("  ")
		bw.WriteString(l)
		bw.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(l)-4))
		writeLine(bw, style.Side)
	}
	writeLine(bw, border)
	bw.WriteString("\n")

	return bw.Flush()
}
