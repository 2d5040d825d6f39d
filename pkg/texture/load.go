package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Load decodes an image file into a texture.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	tex, err := Decode(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return tex, nil
}

// Decode reads any registered image format (PNG, JPEG, BMP, TIFF, WebP).
func Decode(name string, r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(name, img)
}

// DecodeBytes is Decode over an in-memory buffer, as found in GLB files.
func DecodeBytes(name string, data []byte) (*Texture, error) {
	return Decode(name, bytes.NewReader(data))
}

// FromImage converts a decoded image into an RGBA8 texture with straight
// (non-premultiplied) alpha.
func FromImage(name string, img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidSize)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Copy(nrgba, image.Point{}, img, bounds, draw.Src, nil)
	}

	return New(name, bounds.Dx(), bounds.Dy(), nrgba.Pix)
}
