// Package config handles emy's scene and driver configuration.
package config

import (
	"errors"
	"fmt"
)

// Output modes.
const (
	ModeTerminal = "terminal"
	ModePNG      = "png"
)

// Config holds all driver settings.
type Config struct {
	Canvas   CanvasConfig   `yaml:"canvas"`
	Camera   CameraConfig   `yaml:"camera"`
	Shading  ShadingConfig  `yaml:"shading"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Textures TexturesConfig `yaml:"textures"`
}

// CanvasConfig holds the render target settings. Width and height apply to
// PNG output; the terminal viewer sizes the canvas from the window.
type CanvasConfig struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	DegenerateEpsilon  float64 `yaml:"degenerate_epsilon"`
	PerspectiveCorrect bool    `yaml:"perspective_correct"`
}

// CameraConfig holds the orbit camera settings.
type CameraConfig struct {
	FOV             float64 `yaml:"fov"` // degrees
	OrbitRadius     float64 `yaml:"orbit_radius"`
	OrbitHeight     float64 `yaml:"orbit_height"`
	OrbitSpeed      float64 `yaml:"orbit_speed"` // radians per second
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

// LightConfig describes one point light.
type LightConfig struct {
	Position  [3]float64 `yaml:"position"`
	Color     [3]float64 `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
}

// ShadingConfig selects the shader and scene lighting.
type ShadingConfig struct {
	Shader       string        `yaml:"shader"`        // lit, unlit, debug
	DebugChannel string        `yaml:"debug_channel"` // used by the debug shader
	Wireframe    bool          `yaml:"wireframe"`
	Ambient      [3]float64    `yaml:"ambient"`
	Lights       []LightConfig `yaml:"lights"`
	ShowAxes     bool          `yaml:"show_axes"`
	ShowBounds   bool          `yaml:"show_bounds"`
	ShowLights   bool          `yaml:"show_lights"`
	ShowGrid     bool          `yaml:"show_grid"`
}

// OutputConfig selects where frames go.
type OutputConfig struct {
	Mode   string `yaml:"mode"` // terminal or png
	Dir    string `yaml:"dir"`
	Frames int    `yaml:"frames"`
	Scale  int    `yaml:"scale"` // PNG upscale factor
	FPS    int    `yaml:"fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// TexturesConfig overrides the material textures of every loaded mesh.
type TexturesConfig struct {
	Albedo   string `yaml:"albedo"`
	Normal   string `yaml:"normal"`
	Specular string `yaml:"specular"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:             320,
			Height:            240,
			DegenerateEpsilon: 1e-2,
		},
		Camera: CameraConfig{
			FOV:             60,
			OrbitRadius:     3,
			OrbitHeight:     1,
			OrbitSpeed:      0.5,
			SpringFrequency: 4.0,
			SpringDamping:   1.0,
		},
		Shading: ShadingConfig{
			Shader:       "lit",
			DebugChannel: "normal",
			Ambient:      [3]float64{0.05, 0.05, 0.05},
			Lights: []LightConfig{
				{Position: [3]float64{2, 3, 4}, Color: [3]float64{1, 1, 1}, Intensity: 25},
				{Position: [3]float64{-3, 1, -2}, Color: [3]float64{0.4, 0.5, 0.7}, Intensity: 8},
			},
		},
		Output: OutputConfig{
			Mode:   ModeTerminal,
			Dir:    "frames",
			Frames: 60,
			Scale:  1,
			FPS:    30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the driver cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Output.Mode != ModeTerminal && c.Output.Mode != ModePNG {
		errs = append(errs, fmt.Errorf("output.mode must be %q or %q, got %q", ModeTerminal, ModePNG, c.Output.Mode))
	}
	if c.Output.Mode == ModePNG {
		if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
			errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
		}
		if c.Output.Frames <= 0 {
			errs = append(errs, fmt.Errorf("output.frames must be positive, got %d", c.Output.Frames))
		}
		if c.Output.Scale < 1 {
			errs = append(errs, fmt.Errorf("output.scale must be at least 1, got %d", c.Output.Scale))
		}
	}
	if c.Output.FPS <= 0 {
		errs = append(errs, fmt.Errorf("output.fps must be positive, got %d", c.Output.FPS))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV))
	}
	if c.Canvas.DegenerateEpsilon < 0 {
		errs = append(errs, fmt.Errorf("canvas.degenerate_epsilon must not be negative, got %v", c.Canvas.DegenerateEpsilon))
	}
	return errors.Join(errs...)
}
