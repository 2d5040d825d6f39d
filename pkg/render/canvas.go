// Package render provides software rasterization and shading for emy.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/taigrr/emy/pkg/math3d"
	"golang.org/x/image/draw"
)

const (
	// DefaultDegenerateEpsilon is the smallest screen-space doubled area a
	// triangle needs before it is rasterized.
	DefaultDegenerateEpsilon = 1e-2

	// clearByte is written to every color channel by ClearFrame.
	clearByte = 128
)

// Canvas owns an RGBA8 color buffer and a depth buffer of the same size.
// Depth grows toward the viewer; cleared cells hold -Inf.
type Canvas struct {
	Width  int
	Height int
	Pixels []byte    // Row-major RGBA8, origin top-left
	Depth  []float64 // Row-major

	// DegenerateEpsilon rejects triangles whose doubled area is at most this.
	DegenerateEpsilon float64
	// PerspectiveCorrect weights attributes by 1/w before interpolating.
	// Depth always uses the screen-space weights.
	PerspectiveCorrect bool
	// WireColor is used for wireframe edges.
	WireColor math3d.Vec4
}

// NewCanvas creates a cleared canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		Width:             width,
		Height:            height,
		Pixels:            make([]byte, width*height*4),
		Depth:             make([]float64, width*height),
		DegenerateEpsilon: DefaultDegenerateEpsilon,
		WireColor:         math3d.One4(),
	}
	c.ClearFrame()
	return c
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// ClearFrame sets every color byte to 128 and every depth cell to -Inf.
func (c *Canvas) ClearFrame() {
	// Use copy-doubling for faster clearing
	fill(c.Pixels, clearByte)
	fill(c.Depth, math.Inf(-1))
}

func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// SetPixel writes a color with channels in [0, 1]. Values outside that range
// are clamped. Out-of-bounds writes are ignored.
func (c *Canvas) SetPixel(x, y int, col math3d.Vec4) {
	if !c.inBounds(x, y) {
		return
	}
	i := (y*c.Width + x) * 4
	c.Pixels[i] = toByte(col.X)
	c.Pixels[i+1] = toByte(col.Y)
	c.Pixels[i+2] = toByte(col.Z)
	c.Pixels[i+3] = toByte(col.W)
}

func toByte(v float64) uint8 {
	// NaN fails both comparisons and lands on 0.
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// SetPixelDepth writes depth. Out-of-bounds writes are ignored.
func (c *Canvas) SetPixelDepth(x, y int, z float64) {
	if !c.inBounds(x, y) {
		return
	}
	c.Depth[y*c.Width+x] = z
}

// PixelDepth returns the stored depth, or +Inf outside the canvas.
func (c *Canvas) PixelDepth(x, y int) float64 {
	if !c.inBounds(x, y) {
		return math.Inf(1)
	}
	return c.Depth[y*c.Width+x]
}

// Pixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (c *Canvas) Pixel(x, y int) color.RGBA {
	if !c.inBounds(x, y) {
		return color.RGBA{}
	}
	i := (y*c.Width + x) * 4
	return color.RGBA{c.Pixels[i], c.Pixels[i+1], c.Pixels[i+2], c.Pixels[i+3]}
}

// DrawLine draws from (x0, y0) toward (x1, y1) with integer error
// accumulation. The final endpoint is not drawn.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col math3d.Vec4) {
	steep := false
	if abs(x0-x1) < abs(y0-y1) {
		steep = true
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	derr := abs(y1-y0) * 2
	step := -1
	if y1 > y0 {
		step = 1
	}

	errAcc := 0
	y := y0
	for x := x0; x < x1; x++ {
		if steep {
			c.SetPixel(y, x, col)
		} else {
			c.SetPixel(x, y, col)
		}
		errAcc += derr
		if errAcc > dx {
			y += step
			errAcc -= dx * 2
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Image returns a copy of the color buffer. Like the buffer, the image
// holds straight (non-premultiplied) alpha.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	copy(img.Pix, c.Pixels)
	return img
}

// SavePNG saves the color buffer as a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.SavePNGScaled(path, 1)
}

// SavePNGScaled saves the color buffer as a PNG file enlarged by an integer
// factor with nearest-neighbor sampling. Factors below 2 save at native size.
func (c *Canvas) SavePNGScaled(path string, scale int) error {
	var img image.Image = c.Image()
	if scale > 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, c.Width*scale, c.Height*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
