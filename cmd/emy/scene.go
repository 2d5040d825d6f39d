package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/emy/internal/config"
	"github.com/taigrr/emy/internal/logger"
	"github.com/taigrr/emy/pkg/math3d"
	"github.com/taigrr/emy/pkg/models"
	"github.com/taigrr/emy/pkg/render"
	"go.uber.org/zap"
)

// fitSize is the largest bounding-box dimension after normalization.
const fitSize = 2.0

// Scene is everything drawn each frame.
type Scene struct {
	Meshes  []*models.Mesh
	Globals *render.Globals
	Shader  render.Shader
	Channel render.Channel

	Wireframe bool
	Overlay   OverlayFlags

	// Yaw spins every mesh about the world Y axis, in radians.
	Yaw float64
}

// OverlayFlags toggles the guide drawing on top of the shaded frame.
type OverlayFlags struct {
	Axes, Bounds, Lights, Grid bool
}

// Any reports whether any guide is enabled.
func (o OverlayFlags) Any() bool {
	return o.Axes || o.Bounds || o.Lights || o.Grid
}

// loadModel loads every mesh in path, choosing the loader by extension.
func loadModel(path string) ([]*models.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return models.LoadOBJ(path)
	case ".glb", ".gltf":
		return models.LoadGLTF(path)
	}
	return nil, fmt.Errorf("unsupported format: %s (use .obj, .gltf or .glb)", ext)
}

// NewScene loads the models and builds lights and shading from cfg.
func NewScene(cfg *config.Config, paths []string) (*Scene, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no model files given")
	}

	var meshes []*models.Mesh
	for _, path := range paths {
		loaded, err := loadModel(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		for _, m := range loaded {
			logger.Info("loaded mesh",
				zap.String("name", m.Name),
				zap.Int("vertices", m.VertexCount()),
				zap.Int("triangles", m.TriangleCount()),
			)
		}
		meshes = append(meshes, loaded...)
	}

	if err := applyTextureOverrides(meshes, cfg.Textures); err != nil {
		return nil, err
	}
	normalize(meshes)

	channel, err := render.ParseChannel(cfg.Shading.DebugChannel)
	if err != nil {
		return nil, err
	}
	shader, err := render.ShaderByName(cfg.Shading.Shader, channel)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Meshes: meshes,
		Globals: &render.Globals{
			Lights:  lightsFromConfig(cfg.Shading.Lights),
			Ambient: vec3(cfg.Shading.Ambient),
		},
		Shader:    shader,
		Channel:   channel,
		Wireframe: cfg.Shading.Wireframe,
		Overlay: OverlayFlags{
			Axes:   cfg.Shading.ShowAxes,
			Bounds: cfg.Shading.ShowBounds,
			Lights: cfg.Shading.ShowLights,
			Grid:   cfg.Shading.ShowGrid,
		},
	}, nil
}

// applyTextureOverrides replaces the named texture slots of every mesh. Each
// mesh gets its own material copy so shared loader materials stay intact.
func applyTextureOverrides(meshes []*models.Mesh, tc config.TexturesConfig) error {
	files := models.TextureSet{Albedo: tc.Albedo, Normal: tc.Normal, Specular: tc.Specular}
	if files.Empty() {
		return nil
	}

	override, err := models.LoadMaterial("override", "", files)
	if err != nil {
		return err
	}

	for _, m := range meshes {
		mat := models.NewMaterial(override.Name)
		if m.Material != nil {
			copied := *m.Material
			mat = &copied
		}
		if files.Albedo != "" {
			mat.Albedo = override.Albedo
		}
		if files.Normal != "" {
			mat.Normal = override.Normal
		}
		if files.Specular != "" {
			mat.Specular = override.Specular
		}
		m.Material = mat
	}
	return nil
}

// normalize centers the combined bounds of meshes on the origin and scales
// the largest dimension to fitSize.
func normalize(meshes []*models.Mesh) {
	if len(meshes) == 0 {
		return
	}

	lo, hi := meshes[0].BoundsMin, meshes[0].BoundsMax
	for _, m := range meshes[1:] {
		lo = lo.Min(m.BoundsMin)
		hi = hi.Max(m.BoundsMax)
	}

	center := lo.Add(hi).Scale(0.5)
	size := hi.Sub(lo)
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

	transform := math3d.Translate(center.Negate())
	if maxDim > 0 {
		transform = math3d.ScaleUniform(fitSize / maxDim).Mul(transform)
	}
	for _, m := range meshes {
		m.Transform(transform)
	}
}

func vec3(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

func lightsFromConfig(lc []config.LightConfig) []render.Light {
	lights := make([]render.Light, len(lc))
	for i, l := range lc {
		lights[i] = render.Light{
			Position:  vec3(l.Position),
			Color:     vec3(l.Color),
			Intensity: l.Intensity,
		}
	}
	return lights
}

// Orbit eases the camera angle toward a time-driven target with a spring,
// so speed changes and pauses never jump.
type Orbit struct {
	Angle    float64
	velocity float64
	spring   harmonica.Spring

	Radius float64
	Height float64
	Speed  float64 // radians per second
}

// NewOrbit creates an orbit stepped fps times per second.
func NewOrbit(cc config.CameraConfig, fps int) *Orbit {
	return &Orbit{
		spring: harmonica.NewSpring(harmonica.FPS(fps), cc.SpringFrequency, cc.SpringDamping),
		Radius: cc.OrbitRadius,
		Height: cc.OrbitHeight,
		Speed:  cc.OrbitSpeed,
	}
}

// Update advances the spring one step toward the angle for time t and
// places the camera.
func (o *Orbit) Update(cam *render.Camera, t float64) {
	o.Angle, o.velocity = o.spring.Update(o.Angle, o.velocity, t*o.Speed)
	cam.Orbit(o.Angle, o.Radius, o.Height, math3d.Zero3())
}

// Render clears canvas and draws every mesh plus the enabled guides.
func (s *Scene) Render(canvas *render.Canvas, cam *render.Camera) render.DrawStats {
	canvas.ClearFrame()
	s.Globals.Camera = cam

	model := math3d.RotateY(s.Yaw)
	var stats render.DrawStats
	for _, m := range s.Meshes {
		stats = stats.Add(canvas.DrawModel(m, s.Shader, s.Globals, model, s.Wireframe))
	}

	if s.Overlay.Any() {
		o := render.NewOverlay(cam, canvas)
		if s.Overlay.Grid {
			o.DrawGrid(-fitSize/2, fitSize*2, fitSize/4, render.ColorDimGray)
		}
		if s.Overlay.Axes {
			o.DrawAxes(fitSize * 0.75)
		}
		if s.Overlay.Bounds {
			for _, m := range s.Meshes {
				o.DrawBounds(m, model, render.ColorYellow)
			}
		}
		if s.Overlay.Lights {
			o.DrawLights(s.Globals.Lights, 0.2)
		}
	}
	return stats
}
