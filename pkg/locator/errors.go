// pkg/locator/errors.go
package locator

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates no candidate directory held the full library set
var ErrNotFound = errors.New("library set not found")

// NotFoundError is returned when every candidate failed the presence test
type NotFoundError struct {
	Name  string  // library set name
	Env   string  // override variable the operator should set
	Tried []Probe // every candidate tested, in order
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find %s libraries. Please set %s environment variable to the directory containing the %s libraries.",
		e.Name, e.Env, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
