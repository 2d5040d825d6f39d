// Package texture holds decoded RGBA8 images and the point sampler used by
// the emy shaders.
package texture

import (
	"errors"
	"fmt"

	"github.com/taigrr/emy/pkg/math3d"
)

// ErrInvalidSize is returned when the pixel buffer does not match the
// declared dimensions.
var ErrInvalidSize = errors.New("texture: pixel buffer does not match dimensions")

// Texture is an immutable RGBA8 image, row-major with the origin at the top-left.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte // 4 bytes per pixel
}

// New creates a texture from an RGBA8 buffer. The buffer is retained, not copied.
func New(name string, width, height int, pixels []byte) (*Texture, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidSize, width, height, len(pixels))
	}
	return &Texture{
		Name:   name,
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// Solid creates a 1x1 texture of a single color.
func Solid(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// Color returns the pixel at (x, y) with each channel scaled to [0, 1].
// Coordinates must be in range.
func (t *Texture) Color(x, y int) math3d.Vec4 {
	i := (y*t.Width + x) * 4
	return math3d.V4(
		float64(t.Pixels[i])/255,
		float64(t.Pixels[i+1])/255,
		float64(t.Pixels[i+2])/255,
		float64(t.Pixels[i+3])/255,
	)
}

// ColorUV point-samples the texture at uv. Both axes wrap by their
// fractional part and V is flipped so that v=0 addresses the bottom row.
func (t *Texture) ColorUV(uv math3d.Vec2) math3d.Vec4 {
	x := int(math3d.Fract(uv.X) * float64(t.Width-1))
	y := int(math3d.Fract(1-uv.Y) * float64(t.Height-1))
	return t.Color(x, y)
}
