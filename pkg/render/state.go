package render

import "github.com/Faultbox/scenery/pkg/math"

const (
	// MaxLights is the number of light slots in State.
	MaxLights = 8
	// MaxClipPlanes is the number of user clip plane slots in State.
	MaxClipPlanes = 6
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// White is the default current color.
var White = Color{1, 1, 1, 1}

// RGB builds an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// Array returns the components as an array.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Material describes fixed-function surface reflectance.
type Material struct {
	Ambient   Color
	Diffuse   Color
	Specular  Color
	Shininess float32
}

// DefaultMaterial mirrors the fixed-function defaults.
var DefaultMaterial = Material{
	Ambient:  Color{0.2, 0.2, 0.2, 1},
	Diffuse:  Color{0.8, 0.8, 0.8, 1},
	Specular: Color{0, 0, 0, 1},
}

// Light is one fixed-function light slot. Position W=0 means directional.
type Light struct {
	Enabled  bool
	Position [4]float32
	Ambient  Color
	Diffuse  Color
	Specular Color
}

// ClipPlane is one user clip plane slot.
type ClipPlane struct {
	Enabled bool
	Plane   math.Plane
}

// Fog holds linear fog parameters.
type Fog struct {
	Color Color
	Start float32
	End   float32
}

// State is the render state visible to a node during traversal. It is a
// comparable value so a traversal can snapshot and key on it.
type State struct {
	caps       uint16
	LineWidth  float32
	Color      Color
	Material   Material
	Texture2D  uint32
	Texture3D  uint32
	Fog        Fog
	Lights     [MaxLights]Light
	ClipPlanes [MaxClipPlanes]ClipPlane
}

// DefaultState returns the state at the start of a frame: depth test and
// depth writes on, everything else off.
func DefaultState() State {
	s := State{
		LineWidth: 1,
		Color:     White,
		Material:  DefaultMaterial,
	}
	s.Set(DepthTest, true)
	s.Set(DepthWrite, true)
	return s
}

// Enabled reports whether c is on.
func (s *State) Enabled(c Cap) bool {
	return s.caps&(1<<c) != 0
}

// Set switches c on or off.
func (s *State) Set(c Cap, on bool) {
	if on {
		s.caps |= 1 << c
	} else {
		s.caps &^= 1 << c
	}
}
