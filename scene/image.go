package scene

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"
)

const pngDataURIPrefix = "data:image/png;base64,"

// Image is an embedded picture referenced by image textures.
type Image struct {
	UUID uuid.UUID
	URL  string
}

// NewImage reads the png file at path and embeds it as a data URI.
func NewImage(path string) (Image, error) {
	if err := checkImageExtension(path); err != nil {
		return Image{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, errors.Wrapf(err, "Unable to load file '%s'", path)
	}
	return NewImageFromBytes(path, data)
}

// NewImageFromBytes embeds data that was read from a file called name.
func NewImageFromBytes(name string, data []byte) (Image, error) {
	if err := checkImageExtension(name); err != nil {
		return Image{}, err
	}
	if !filetype.Is(data, "png") {
		return Image{}, errors.Wrapf(ErrUnsupportedMedia, "'%s' is not png data", name)
	}

	var buf strings.Builder
	buf.Grow(len(pngDataURIPrefix) + base64.StdEncoding.EncodedLen(len(data)))
	buf.WriteString(pngDataURIPrefix)
	buf.WriteString(base64.StdEncoding.EncodeToString(data))

	return Image{
		UUID: uuid.New(),
		URL:  buf.String(),
	}, nil
}

func checkImageExtension(name string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext != "png" {
		return errors.Wrapf(ErrUnsupportedMedia, "'%s' has extension %q", name, ext)
	}
	return nil
}
