package scene

import (
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// TextTextureType marks text textures on the wire. Image textures carry no
// marker, the viewer tells them apart by their fields.
const TextTextureType = "_text"

// ClampToEdgeWrapping is the three.js wrap mode image textures default to.
const ClampToEdgeWrapping = 1001

type Texture struct {
	UUID    uuid.UUID
	Content TextureContent
}

// TextureContent is either TextTexture or ImageTexture.
type TextureContent interface {
	textureContent()
}

type TextTexture struct {
	Text     string
	FontSize uint32
	FontFace string
}

type ImageTexture struct {
	Repeat [2]uint32
	Wrap   [2]uint32

	image uuid.UUID
}

func (TextTexture) textureContent()  {}
func (ImageTexture) textureContent() {}

// Image returns the identifier of the image the texture samples, or uuid.Nil
// before the texture has been assembled together with an image.
func (t ImageTexture) Image() uuid.UUID {
	return t.image
}

func NewTexture(content TextureContent) Texture {
	return Texture{
		UUID:    uuid.New(),
		Content: content,
	}
}

func NewTextTexture(text string, fontSize uint32, fontFace string) Texture {
	return NewTexture(TextTexture{
		Text:     norm.NFC.String(text),
		FontSize: fontSize,
		FontFace: fontFace,
	})
}

func NewImageTexture() Texture {
	return NewTexture(ImageTexture{
		Repeat: [2]uint32{1, 1},
		Wrap:   [2]uint32{ClampToEdgeWrapping, ClampToEdgeWrapping},
	})
}
