package texture

// Shared 1x1 fallbacks. Materials reference these instead of allocating their
// own, so they must never be written to.
var (
	white      = Solid("default_white", 255, 255, 255, 255)
	black      = Solid("default_black", 0, 0, 0, 255)
	flatNormal = Solid("default_normal", 128, 128, 255, 255)
)

// White returns the shared opaque white texture (default albedo).
func White() *Texture { return white }

// Black returns the shared black texture (default specular, no highlight).
func Black() *Texture { return black }

// FlatNormal returns the shared tangent-space normal map encoding (0, 0, 1).
func FlatNormal() *Texture { return flatNormal }

// IsDefault reports whether t is one of the shared fallback textures.
func IsDefault(t *Texture) bool {
	return t == white || t == black || t == flatNormal
}
