package artifactory

import (
	"errors"
	"fmt"
)

// ErrNoResults is returned when a search or listing matched nothing.
var ErrNoResults = errors.New("no results found")

// InvalidArgumentError is returned before any request is sent.
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Argument, e.Message)
}

func invalidArgument(argument, format string, a ...interface{}) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Message: fmt.Sprintf(format, a...)}
}
