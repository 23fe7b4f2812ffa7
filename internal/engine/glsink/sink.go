// Package glsink rasterizes scene graph command streams with the OpenGL 2.1
// fixed-function pipeline. All calls must happen on the thread that owns
// the GL context.
package glsink

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
)

// Stats counts what one frame sent to GL.
type Stats struct {
	Batches  int
	Vertices int
	States   int
}

// Sink is a render.Sink issuing immediate-mode GL calls.
type Sink struct {
	stats Stats
}

var _ render.Sink = (*Sink)(nil)

// Stats returns the counters since the last Reset.
func (s *Sink) Stats() Stats { return s.stats }

// Reset zeroes the counters.
func (s *Sink) Reset() { s.stats = Stats{} }

var primitives = [...]uint32{
	render.Points:        gl.POINTS,
	render.Lines:         gl.LINES,
	render.LineStrip:     gl.LINE_STRIP,
	render.Triangles:     gl.TRIANGLES,
	render.TriangleStrip: gl.TRIANGLE_STRIP,
	render.Quads:         gl.QUADS,
}

func (s *Sink) Begin(p render.Primitive) {
	s.stats.Batches++
	gl.Begin(primitives[p])
}

func (s *Sink) End() { gl.End() }

func (s *Sink) Vertex(v math.Vec3) {
	s.stats.Vertices++
	gl.Vertex3f(v.X, v.Y, v.Z)
}

func (s *Sink) Color(c render.Color)  { gl.Color4f(c.R, c.G, c.B, c.A) }
func (s *Sink) Normal(n math.Vec3)    { gl.Normal3f(n.X, n.Y, n.Z) }
func (s *Sink) TexCoord(uv math.Vec2) { gl.TexCoord2f(uv.X, uv.Y) }

func matrixMode(mode render.MatrixMode) uint32 {
	if mode == render.TextureMatrix {
		return gl.TEXTURE
	}
	return gl.MODELVIEW
}

// The modelview stack stays current between calls.
func (s *Sink) PushMatrix(mode render.MatrixMode) {
	gl.MatrixMode(matrixMode(mode))
	gl.PushMatrix()
	gl.MatrixMode(gl.MODELVIEW)
}

func (s *Sink) MultMatrix(mode render.MatrixMode, m math.Mat4) {
	gl.MatrixMode(matrixMode(mode))
	gl.MultMatrixf(&m[0])
	gl.MatrixMode(gl.MODELVIEW)
}

func (s *Sink) PopMatrix(mode render.MatrixMode) {
	gl.MatrixMode(matrixMode(mode))
	gl.PopMatrix()
	gl.MatrixMode(gl.MODELVIEW)
}

func (s *Sink) PushAttrib() { gl.PushAttrib(gl.ALL_ATTRIB_BITS) }
func (s *Sink) PopAttrib()  { gl.PopAttrib() }

var caps = [...]uint32{
	render.DepthTest: gl.DEPTH_TEST,
	render.CullFace:  gl.CULL_FACE,
	render.Blend:     gl.BLEND,
	render.AlphaTest: gl.ALPHA_TEST,
	render.Fogging:   gl.FOG,
	render.Coloring:  gl.COLOR_MATERIAL,
	render.Lighting:  gl.LIGHTING,
	render.Texturing: gl.TEXTURE_2D,
}

func (s *Sink) Enable(c render.Cap, on bool) {
	s.stats.States++
	if c == render.DepthWrite {
		gl.DepthMask(on)
		return
	}
	if int(c) >= len(caps) || caps[c] == 0 {
		return
	}
	if c == render.Blend && on {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	setCap(caps[c], on)
}

func setCap(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

func (s *Sink) LineWidth(w float32) {
	s.stats.States++
	gl.LineWidth(w)
}

func (s *Sink) Material(m render.Material) {
	s.stats.States++
	ambient, diffuse, specular := m.Ambient.Array(), m.Diffuse.Array(), m.Specular.Array()
	gl.Materialfv(gl.FRONT_AND_BACK, gl.AMBIENT, &ambient[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.DIFFUSE, &diffuse[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.SPECULAR, &specular[0])
	gl.Materialf(gl.FRONT_AND_BACK, gl.SHININESS, m.Shininess)
}

func (s *Sink) Light(index int, l render.Light) {
	s.stats.States++
	light := uint32(gl.LIGHT0 + index)
	if !l.Enabled {
		gl.Disable(light)
		return
	}
	ambient, diffuse, specular := l.Ambient.Array(), l.Diffuse.Array(), l.Specular.Array()
	gl.Lightfv(light, gl.POSITION, &l.Position[0])
	gl.Lightfv(light, gl.AMBIENT, &ambient[0])
	gl.Lightfv(light, gl.DIFFUSE, &diffuse[0])
	gl.Lightfv(light, gl.SPECULAR, &specular[0])
	gl.Enable(light)
}

func (s *Sink) Texture(dim int, handle uint32) {
	s.stats.States++
	target := uint32(gl.TEXTURE_2D)
	if dim == 3 {
		target = gl.TEXTURE_3D
	}
	gl.BindTexture(target, handle)
	setCap(target, handle != 0)
}

func (s *Sink) ClipPlane(index int, c render.ClipPlane) {
	s.stats.States++
	plane := uint32(gl.CLIP_PLANE0 + index)
	if !c.Enabled {
		gl.Disable(plane)
		return
	}
	a := c.Plane.Array()
	eq := [4]float64{float64(a[0]), float64(a[1]), float64(a[2]), float64(a[3])}
	gl.ClipPlane(plane, &eq[0])
	gl.Enable(plane)
}

func (s *Sink) Fog(f render.Fog) {
	s.stats.States++
	color := f.Color.Array()
	gl.Fogi(gl.FOG_MODE, gl.LINEAR)
	gl.Fogfv(gl.FOG_COLOR, &color[0])
	gl.Fogf(gl.FOG_START, f.Start)
	gl.Fogf(gl.FOG_END, f.End)
}
