package shell

import (
	"errors"
	"fmt"

	"github.com/ssargent/bookdb/pkg/store"
)

const returning = "Returning to main menu..."

// Explain turns a store error into the lines of an error box
func Explain(err error, path string) []string {
	var (
		notFound *store.NotFoundError
		loadErr  *store.LoadError
		ioErr    *store.IOError
	)

	switch {
	case errors.As(err, &notFound):
		return []string{
			fmt.Sprintf("File from path: \"%s\" not found!", notFound.Path),
			"Make sure you gave the path correctly and try again",
			returning,
		}
	case errors.As(err, &loadErr):
		return []string{
			fmt.Sprintf("File from path: \"%s\" has invalid values!", loadErr.Path),
			fmt.Sprintf("Error found on line %d", loadErr.Line),
			"Faulty data was: " + loadErr.Raw,
			"Correct syntax is: Book Name/Author/ISBN/Publishing Year",
			returning,
		}
	case errors.As(err, &ioErr):
		return []string{
			fmt.Sprintf("Could not access file from path: \"%s\"", path),
			fmt.Sprintf("Operation \"%s\" failed: %v", ioErr.Op, ioErr.Err),
			returning,
		}
	default:
		return []string{err.Error(), returning}
	}
}
