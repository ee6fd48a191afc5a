// Package shell implements the interactive menu of bookdb.
//
// The shell is thin glue: it prompts for input, hands raw strings to the
// store, and prints either the rendered table or a framed explanation of the
// error the store returned. It never exits the process itself; Run returns
// when the user quits or input ends.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ssargent/bookdb/pkg/codec"
	"github.com/ssargent/bookdb/pkg/table"
)

// clearSequence moves the cursor home and erases the screen
const clearSequence = "\033[H\033[2J"

// RecordStore is the part of store.Store the shell uses
type RecordStore interface {
	Load() ([]codec.Record, error)
	Append(record codec.Record) error
	Path() string
}

// Shell runs the menu loop against one store
type Shell struct {
	store    RecordStore
	in       *bufio.Reader
	out      io.Writer
	logger   *slog.Logger
	terminal bool
	headers  [codec.FieldCount]string
}

// Option configures a Shell
type Option func(*Shell)

// WithLogger sets the logger used for failure diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTerminal marks the output as an interactive terminal, enabling screen clears
func WithTerminal(terminal bool) Option {
	return func(s *Shell) {
		s.terminal = terminal
	}
}

// New creates a shell reading answers from in and writing to out
func New(store RecordStore, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store:   store,
		in:      bufio.NewReader(in),
		out:     out,
		logger:  slog.Default(),
		headers: table.DefaultHeaders,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user quits or input is exhausted
func (s *Shell) Run() error {
	for {
		s.printMenu()

		input, err := s.prompt("Type your option and press enter: ")
		if isEOF(err) {
			return s.quit()
		}
		if err != nil {
			return fmt.Errorf("read menu option: %w", err)
		}

		action := ParseAction(input)
		s.logger.Debug("menu action", "input", input, "action", action)

		switch action {
		case ActionAdd:
			err = s.add()
		case ActionList:
			s.list()
		case ActionClear:
			s.clear()
		case ActionQuit:
			return s.quit()
		default:
			s.invalid(input)
		}

		if isEOF(err) {
			return s.quit()
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) printMenu() {
	s.box(table.InfoStyle, "Book Database")
	s.println("1) Add new book")
	s.println("2) Print current database content in ascending order by publishing year")
	s.println("Q) Exit the program")
	s.println("C) Clear terminal screen")
	s.println("")
}

// add collects a record, asks for confirmation and appends it
func (s *Shell) add() error {
	s.box(table.InfoStyle, "Add new book")

	var fields [codec.FieldCount]string
	questions := [codec.FieldCount]string{
		"Give books name: ",
		"Give authors name: ",
		"Give ISBN: ",
		"Give publishing year: ",
	}
	for i, q := range questions {
		answer, err := s.prompt(q)
		if err != nil {
			return err
		}
		fields[i] = answer
	}
	record := codec.NewRecord(fields[0], fields[1], fields[2], fields[3])

	for {
		s.box(table.InfoStyle, "Verify given data before saving to database...")
		s.println("Book name: " + record.Title)
		s.println("Author: " + record.Author)
		s.println("ISBN: " + record.ISBN)
		s.println("Publishing year: " + record.Year)
		s.box(table.InfoStyle, "Is given information ok?")
		s.println("y) Save to database")
		s.println("n) Return to main menu")
		s.println("")

		answer, err := s.prompt("Type your option and press enter: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "y":
			if err := s.store.Append(record); err != nil {
				s.logger.Warn("append failed", "error", err)
				s.box(table.ErrorStyle, Explain(err, s.store.Path())...)
				return nil
			}
			s.println("Book saved to database")
			return nil
		case "n":
			return nil
		}
	}
}

// list loads and prints the table, or explains why it could not
func (s *Shell) list() {
	s.box(table.InfoStyle, "Print database!")

	records, err := s.store.Load()
	if err != nil {
		s.logger.Warn("load failed", "error", err)
		s.box(table.ErrorStyle, Explain(err, s.store.Path())...)
		return
	}

	if err := table.Render(s.out, s.headers, records); err != nil {
		s.logger.Warn("render failed", "error", err)
		return
	}
	s.println("")
}

func (s *Shell) clear() {
	if !s.terminal {
		return
	}
	fmt.Fprint(s.out, clearSequence)
}

func (s *Shell) invalid(input string) {
	upper := make([]string, len(validInputs))
	for i, v := range validInputs {
		upper[i] = strings.ToUpper(v)
	}
	s.box(table.ErrorStyle,
		fmt.Sprintf("Invalid input: \"%s\"", input),
		"Valid inputs are: "+strings.Join(upper, ", "),
		returning,
	)
}

func (s *Shell) quit() error {
	s.box(table.InfoStyle, "Exiting the program. Have a lovely day!")
	return nil
}

// prompt prints question and returns the answer without its line terminator.
// A final line without a newline is still returned; io.EOF means no input at all.
func (s *Shell) prompt(question string) (string, error) {
	fmt.Fprint(s.out, question)

	line, err := s.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		if err == io.EOF {
			s.println("")
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Shell) box(style table.BoxStyle, lines ...string) {
	if err := table.Box(s.out, lines, style); err != nil {
		s.logger.Warn("write failed", "error", err)
	}
}

// isEOF reports whether err marks the end of input
func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
