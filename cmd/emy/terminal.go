package main

import (
	"context"
	"fmt"
	"math"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/emy/internal/config"
	"github.com/taigrr/emy/internal/logger"
	"github.com/taigrr/emy/pkg/render"
	"go.uber.org/zap"
)

// yawStep is how far one arrow key press spins the model.
const yawStep = math.Pi / 12

// viewer owns the terminal render loop state.
type viewer struct {
	cfg    *config.Config
	scene  *Scene
	canvas *render.Canvas
	camera *render.Camera
	orbit  *Orbit
	paused bool
}

// resize rebuilds the canvas for a terminal of cols x rows cells. Each cell
// shows two canvas rows.
func (v *viewer) resize(cols, rows int) {
	v.canvas = newCanvas(v.cfg, max(cols, 1), max(rows*2, 2))
	v.camera.Resize(v.canvas.Width, v.canvas.Height)
}

// handleKey applies one key press. It reports false when the viewer should quit.
func (v *viewer) handleKey(ev uv.KeyPressEvent) bool {
	switch {
	case ev.MatchString("escape", "ctrl+c", "q"):
		return false
	case ev.MatchString("w"):
		v.scene.Wireframe = !v.scene.Wireframe
	case ev.MatchString("1"):
		v.scene.Shader = render.LitShader{}
	case ev.MatchString("2"):
		v.scene.Shader = render.UnlitShader{}
	case ev.MatchString("3"):
		v.scene.Shader = render.DebugShader{Channel: v.scene.Channel}
	case ev.MatchString("c"):
		v.scene.Channel = (v.scene.Channel + 1) % (render.ChannelSpecular + 1)
		if _, ok := v.scene.Shader.(render.DebugShader); ok {
			v.scene.Shader = render.DebugShader{Channel: v.scene.Channel}
		}
	case ev.MatchString("p"):
		v.canvas.PerspectiveCorrect = !v.canvas.PerspectiveCorrect
		v.cfg.Canvas.PerspectiveCorrect = v.canvas.PerspectiveCorrect
	case ev.MatchString("o"):
		on := !v.scene.Overlay.Any()
		v.scene.Overlay = OverlayFlags{Axes: on, Bounds: on, Lights: on, Grid: on}
	case ev.MatchString("space"):
		v.paused = !v.paused
	case ev.MatchString("left", "h"):
		v.scene.Yaw -= yawStep
	case ev.MatchString("right", "l"):
		v.scene.Yaw += yawStep
	}
	return true
}

// runTerminal shows the scene in the terminal until the user quits or ctx
// is cancelled.
func runTerminal(ctx context.Context, cfg *config.Config, scene *Scene) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v := &viewer{
		cfg:   cfg,
		scene: scene,
		orbit: NewOrbit(cfg.Camera, cfg.Output.FPS),
	}
	v.canvas = newCanvas(cfg, 1, 2)
	v.camera = newCamera(cfg, v.canvas)
	v.resize(width, height)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Output.FPS))
	defer ticker.Stop()

	events := term.Events()
	last := time.Now()
	var elapsed float64

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				v.resize(width, height)
			case uv.KeyPressEvent:
				if !v.handleKey(ev) {
					return nil
				}
			}

		case now := <-ticker.C:
			if !v.paused {
				elapsed += now.Sub(last).Seconds()
			}
			last = now
			scene.Globals.Time = elapsed
			v.orbit.Update(v.camera, elapsed)
			stats := scene.Render(v.canvas, v.camera)

			v.canvas.Draw(term, uv.Rect(0, 0, width, height))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			logger.Debug("frame",
				zap.Int("triangles", stats.Triangles),
				zap.Int("fragments", stats.Fragments),
			)
		}
	}
}
