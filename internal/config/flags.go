package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagOut       = flag.String("out", "", "Write PNG frames to this directory instead of the terminal")
	flagFrames    = flag.Int("frames", 0, "Number of PNG frames to write")
	flagWidth     = flag.Int("width", 0, "Canvas width for PNG output")
	flagHeight    = flag.Int("height", 0, "Canvas height for PNG output")
	flagShader    = flag.String("shader", "", "Shader: lit, unlit or debug")
	flagChannel   = flag.String("channel", "", "Debug shader channel (uv, normal, tangent, ...)")
	flagWireframe = flag.Bool("wireframe", false, "Draw triangle edges")
	flagAlbedo    = flag.String("albedo", "", "Albedo texture override")
	flagNormal    = flag.String("normal", "", "Tangent-space normal map override")
	flagSpecular  = flag.String("specular", "", "Specular map override")
	flagSave      = flag.String("save-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the -save-config destination, or "" when unset.
func SaveConfigPath() string {
	return *flagSave
}

// ModelPaths returns the positional model file arguments.
func ModelPaths() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Mode = ModePNG
		cfg.Output.Dir = *flagOut
	}
	if *flagFrames > 0 {
		cfg.Output.Frames = *flagFrames
	}
	if *flagWidth > 0 {
		cfg.Canvas.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Canvas.Height = *flagHeight
	}
	if *flagShader != "" {
		cfg.Shading.Shader = *flagShader
	}
	if *flagChannel != "" {
		cfg.Shading.DebugChannel = *flagChannel
	}
	if *flagWireframe {
		cfg.Shading.Wireframe = true
	}
	if *flagAlbedo != "" {
		cfg.Textures.Albedo = *flagAlbedo
	}
	if *flagNormal != "" {
		cfg.Textures.Normal = *flagNormal
	}
	if *flagSpecular != "" {
		cfg.Textures.Specular = *flagSpecular
	}
}
