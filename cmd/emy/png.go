package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/taigrr/emy/internal/config"
	"github.com/taigrr/emy/internal/logger"
	"github.com/taigrr/emy/pkg/render"
	"go.uber.org/zap"
)

// renderPNG writes cfg.Output.Frames frames of one orbit to cfg.Output.Dir.
func renderPNG(ctx context.Context, cfg *config.Config, scene *Scene) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	canvas := newCanvas(cfg, cfg.Canvas.Width, cfg.Canvas.Height)
	cam := newCamera(cfg, canvas)
	orbit := NewOrbit(cfg.Camera, cfg.Output.FPS)

	var total render.DrawStats
	for i := range cfg.Output.Frames {
		if err := ctx.Err(); err != nil {
			logger.Warn("render interrupted",
				zap.Int("frame", i),
				zap.Int("frames", cfg.Output.Frames),
			)
			return err
		}

		t := float64(i) / float64(cfg.Output.FPS)
		scene.Globals.Time = t
		orbit.Update(cam, t)
		total = total.Add(scene.Render(canvas, cam))

		path := filepath.Join(cfg.Output.Dir, fmt.Sprintf("frame_%04d.png", i))
		if err := canvas.SavePNGScaled(path, cfg.Output.Scale); err != nil {
			return fmt.Errorf("write frame %d: %w", i, err)
		}
		logger.Debug("wrote frame", zap.String("path", path))
	}

	logger.Info("render complete",
		zap.Int("frames", cfg.Output.Frames),
		zap.String("dir", cfg.Output.Dir),
		zap.Int("triangles", total.Triangles),
		zap.Int("fragments", total.Fragments),
	)
	return nil
}

func newCanvas(cfg *config.Config, width, height int) *render.Canvas {
	canvas := render.NewCanvas(width, height)
	canvas.DegenerateEpsilon = cfg.Canvas.DegenerateEpsilon
	canvas.PerspectiveCorrect = cfg.Canvas.PerspectiveCorrect
	return canvas
}

func newCamera(cfg *config.Config, canvas *render.Canvas) *render.Camera {
	cam := render.NewCamera(canvas.Width, canvas.Height)
	cam.SetFOV(cfg.Camera.FOV * math.Pi / 180)
	return cam
}
