package transport

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrConnectionFailure = errors.New("Connection failure")
	ErrTransportFailure  = errors.New("Transport failure")
	ErrRequestPending    = errors.New("Request already pending")
	ErrNoRequest         = errors.New("No request pending")
	ErrClosed            = errors.New("Client closed")
)

// Error is returned by every Client operation. Kind is one of the Err
// values above, Err the cause if there is one.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	s := e.Op
	if e.Path != "" {
		s += fmt.Sprintf(" %q", e.Path)
	}
	s += ": " + e.Kind.Error()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Retryable reports whether err is a transport error after which the same
// command can be sent again.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransportFailure)
}
