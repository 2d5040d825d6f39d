package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/emy/pkg/math3d"
	"github.com/taigrr/emy/pkg/models"
)

// specularScale maps the sampled specular magnitude to a Phong exponent.
const specularScale = 256.0

// LitShader applies normal mapping and per-light diffuse and specular terms.
type LitShader struct{}

// Vertex implements Shader.
func (LitShader) Vertex(v models.Vertex, in *VertInput, _ *Globals) VertOutput {
	return GenericVertex(v, in)
}

// Fragment implements Shader.
func (LitShader) Fragment(f VertOutput, m *models.Material, g *Globals) math3d.Vec4 {
	albedo := m.Albedo.ColorUV(f.UV)
	n := surfaceNormal(f, m)

	spec := m.Specular.ColorUV(f.UV)
	strength := spec.Vec3().Len()

	var view math3d.Vec3
	if g.Camera != nil {
		view = g.Camera.Position.Sub(f.World).Normalize()
	}

	var light math3d.Vec3
	for _, l := range g.Lights {
		dir := l.Position.Sub(f.World)
		distSq := dir.LenSq()
		if distSq == 0 {
			continue
		}
		ld := dir.Normalize()
		falloff := l.Intensity / distSq

		diffuse := math.Max(n.Dot(ld), 0) * falloff

		var specular float64
		if strength > 0 {
			r := math3d.Reflect(n, ld.Negate())
			specular = strength * math.Pow(math.Max(view.Dot(r), 0), strength*specularScale) * falloff
		}

		light = light.Add(l.Color.Scale(diffuse + specular))
	}

	rgb := g.Ambient.Add(albedo.Vec3().Mul(light))
	return math3d.V4FromV3(rgb, albedo.W)
}

// surfaceNormal rotates the tangent-space normal map sample into world space.
func surfaceNormal(f VertOutput, m *models.Material) math3d.Vec3 {
	t := f.Tangent.Normalize()
	b := f.Bitangent.Normalize()
	n := f.Normal.Normalize()

	s := m.Normal.ColorUV(f.UV)
	tn := math3d.V3(s.X*2-1, s.Y*2-1, s.Z*2-1)

	mapped := t.Scale(tn.X).Add(b.Scale(tn.Y)).Add(n.Scale(tn.Z)).Normalize()
	if mapped.LenSq() == 0 {
		return n
	}
	return mapped
}

// UnlitShader outputs the albedo sample.
type UnlitShader struct{}

// Vertex implements Shader.
func (UnlitShader) Vertex(v models.Vertex, in *VertInput, _ *Globals) VertOutput {
	return GenericVertex(v, in)
}

// Fragment implements Shader.
func (UnlitShader) Fragment(f VertOutput, m *models.Material, _ *Globals) math3d.Vec4 {
	return m.Albedo.ColorUV(f.UV)
}

// Channel selects what DebugShader displays.
type Channel int

// Debug channels.
const (
	ChannelUV Channel = iota
	ChannelNormal
	ChannelPosition
	ChannelTangent
	ChannelBitangent
	ChannelAlbedo
	ChannelNormalMap
	ChannelSpecular
)

var channelNames = [...]string{
	ChannelUV:        "uv",
	ChannelNormal:    "normal",
	ChannelPosition:  "position",
	ChannelTangent:   "tangent",
	ChannelBitangent: "bitangent",
	ChannelAlbedo:    "albedo",
	ChannelNormalMap: "normalmap",
	ChannelSpecular:  "specular",
}

func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel resolves a channel name such as "uv" or "normalmap".
func ParseChannel(name string) (Channel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range channelNames {
		if n == name {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown debug channel %q", name)
}

// DebugShader writes one interpolated attribute or texture sample as the
// color, without lighting.
type DebugShader struct {
	Channel Channel
}

// Vertex implements Shader.
func (DebugShader) Vertex(v models.Vertex, in *VertInput, _ *Globals) VertOutput {
	return GenericVertex(v, in)
}

// Fragment implements Shader.
func (s DebugShader) Fragment(f VertOutput, m *models.Material, _ *Globals) math3d.Vec4 {
	switch s.Channel {
	case ChannelUV:
		return math3d.V4(f.UV.X, f.UV.Y, 0, 1)
	case ChannelNormal:
		return math3d.V4FromV3(f.Normal, 1)
	case ChannelPosition:
		return math3d.V4FromV3(f.World, 1)
	case ChannelTangent:
		return math3d.V4FromV3(f.Tangent, 1)
	case ChannelBitangent:
		return math3d.V4FromV3(f.Bitangent, 1)
	case ChannelAlbedo:
		return m.Albedo.ColorUV(f.UV)
	case ChannelNormalMap:
		return m.Normal.ColorUV(f.UV)
	case ChannelSpecular:
		return m.Specular.ColorUV(f.UV)
	}
	return math3d.One4()
}

// ShaderByName builds "lit", "unlit", or "debug". The channel is only used
// by the debug shader.
func ShaderByName(name string, channel Channel) (Shader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lit", "":
		return LitShader{}, nil
	case "unlit":
		return UnlitShader{}, nil
	case "debug":
		return DebugShader{Channel: channel}, nil
	}
	return nil, fmt.Errorf("unknown shader %q", name)
}
