package scene

import "github.com/pkg/errors"

var (
	// ErrEmptyScene is returned when an object is assembled without geometries.
	ErrEmptyScene = errors.New("Object requires at least one geometry")

	// ErrUnsupportedMedia is returned for image files that are not png.
	ErrUnsupportedMedia = errors.New("Unsupported image type")
)
