// errors.go
package ul2

import (
	"errors"
	"fmt"

	"github.com/vanlueckn/ul2/pkg/locator"
)

var (
	// ErrLibrariesNotFound indicates no candidate directory held every required library
	ErrLibrariesNotFound = locator.ErrNotFound

	// ErrUnsupportedFormat indicates an unknown output format
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Error wraps an error with additional context
type Error struct {
	Op     string // Operation that failed
	Detail string // Path or format if applicable
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
