package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/emy/pkg/math3d"
)

// Draw converts the canvas to terminal cells and draws them on the screen.
// The canvas height should be 2x the terminal height.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 canvas rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < c.Width; col++ {
			x := col - area.Min.X
			topColor := c.Pixel(x, topY)
			botColor := c.Pixel(x, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	// Terminals have no alpha channel.
	c.A = 255
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
	ColorDimGray = color.RGBA{80, 80, 80, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// ColorVec converts an 8-bit color to channels in [0, 1].
func ColorVec(c color.RGBA) math3d.Vec4 {
	return math3d.V4(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

// VecColor converts channels in [0, 1] to an 8-bit color, clamping.
func VecColor(v math3d.Vec4) color.RGBA {
	return color.RGBA{toByte(v.X), toByte(v.Y), toByte(v.Z), toByte(v.W)}
}
