package command

import "github.com/pkg/errors"

var (
	// ErrEncodingFailure means a payload could not be serialized. Well formed
	// entities never cause it.
	ErrEncodingFailure = errors.New("Failed to encode payload")

	ErrUnknownProperty = errors.New("Unknown property")
	ErrPropertyShape   = errors.New("Property value has the wrong shape")
)
