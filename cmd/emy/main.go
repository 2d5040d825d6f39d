// emy - software rasterizer with programmable shading.
// Renders OBJ and glTF models to the terminal or to PNG frames.
//
// Terminal controls:
//
//	w       - Toggle wireframe
//	1/2/3   - Lit, unlit or debug shader
//	c       - Next debug channel
//	p       - Toggle perspective-correct interpolation
//	o       - Toggle guides (axes, grid, bounds, lights)
//	←/→ h/l - Spin the model
//	Space   - Pause the orbit
//	q/Esc   - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/emy/internal/config"
	"github.com/taigrr/emy/internal/logger"
	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "emy - software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: emy [options] <model.obj|model.gltf|model.glb>...\n")
		fmt.Fprintf(os.Stderr, "       emy [options] -save-config <path>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  w       - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  1/2/3   - Lit, unlit or debug shader\n")
		fmt.Fprintf(os.Stderr, "  c       - Next debug channel\n")
		fmt.Fprintf(os.Stderr, "  p       - Toggle perspective correction\n")
		fmt.Fprintf(os.Stderr, "  o       - Toggle guides\n")
		fmt.Fprintf(os.Stderr, "  ←/→ h/l - Spin the model\n")
		fmt.Fprintf(os.Stderr, "  Space   - Pause\n")
		fmt.Fprintf(os.Stderr, "  q/Esc   - Quit\n")
	}
	config.ParseFlags()

	if path := config.SaveConfigPath(); path != "" {
		if err := saveConfig(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	paths := config.ModelPaths()
	if len(paths) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(paths); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(paths []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	// The terminal viewer owns the screen, so it only logs to a file.
	if cfg.Output.Mode == config.ModeTerminal {
		err = logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, nil)
	} else {
		err = logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	scene, err := NewScene(cfg, paths)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Output.Mode == config.ModePNG {
		return renderPNG(ctx, cfg, scene)
	}
	// Nothing reaches the console while the viewer owns it.
	if err := runTerminal(ctx, cfg, scene); err != nil {
		logger.Error("terminal viewer stopped", zap.Error(err))
		return err
	}
	return nil
}

// saveConfig writes the effective config (defaults, file and flags) to path.
func saveConfig(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}
