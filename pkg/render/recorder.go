package render

import (
	"io"
	"strings"

	"github.com/Faultbox/scenery/pkg/math"
)

// Recorder is a Sink that records every call as a Command. It backs the
// flattened export stream and the traversal tests.
type Recorder struct {
	cmds []Command
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []Command {
	return r.cmds
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.cmds)
}

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.cmds = r.cmds[:0]
}

// Replay sends every recorded command to sink.
func (r *Recorder) Replay(sink Sink) {
	for _, c := range r.cmds {
		c.Apply(sink)
	}
}

// WriteTo writes one command per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for _, c := range r.cmds {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Count returns how many commands with the given op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.cmds {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) add(op Op, args ...float32) {
	r.cmds = append(r.cmds, Command{Op: op, Args: args})
}

func (r *Recorder) Begin(p Primitive)     { r.add(OpBegin, float32(p)) }
func (r *Recorder) End()                  { r.add(OpEnd) }
func (r *Recorder) Vertex(v math.Vec3)    { r.add(OpVertex, v.X, v.Y, v.Z) }
func (r *Recorder) Color(c Color)         { r.add(OpColor, c.R, c.G, c.B, c.A) }
func (r *Recorder) Normal(n math.Vec3)    { r.add(OpNormal, n.X, n.Y, n.Z) }
func (r *Recorder) TexCoord(uv math.Vec2) { r.add(OpTexCoord, uv.X, uv.Y) }

func (r *Recorder) PushMatrix(mode MatrixMode) { r.add(OpPushMatrix, float32(mode)) }
func (r *Recorder) PopMatrix(mode MatrixMode)  { r.add(OpPopMatrix, float32(mode)) }

func (r *Recorder) MultMatrix(mode MatrixMode, m math.Mat4) {
	args := make([]float32, 0, 17)
	args = append(args, float32(mode))
	args = append(args, m[:]...)
	r.add(OpMultMatrix, args...)
}

func (r *Recorder) PushAttrib()           { r.add(OpPushAttrib) }
func (r *Recorder) PopAttrib()            { r.add(OpPopAttrib) }
func (r *Recorder) Enable(c Cap, on bool) { r.add(OpEnable, float32(c), boolArg(on)) }
func (r *Recorder) LineWidth(w float32)   { r.add(OpLineWidth, w) }

func (r *Recorder) Material(m Material) {
	args := make([]float32, 0, 13)
	args = append(args, m.Ambient.R, m.Ambient.G, m.Ambient.B, m.Ambient.A)
	args = append(args, m.Diffuse.R, m.Diffuse.G, m.Diffuse.B, m.Diffuse.A)
	args = append(args, m.Specular.R, m.Specular.G, m.Specular.B, m.Specular.A)
	args = append(args, m.Shininess)
	r.add(OpMaterial, args...)
}

func (r *Recorder) Light(index int, l Light) {
	args := make([]float32, 0, 18)
	args = append(args, float32(index), boolArg(l.Enabled))
	args = append(args, l.Position[:]...)
	args = append(args, l.Ambient.R, l.Ambient.G, l.Ambient.B, l.Ambient.A)
	args = append(args, l.Diffuse.R, l.Diffuse.G, l.Diffuse.B, l.Diffuse.A)
	args = append(args, l.Specular.R, l.Specular.G, l.Specular.B, l.Specular.A)
	r.add(OpLight, args...)
}

func (r *Recorder) Texture(dim int, handle uint32) { r.add(OpTexture, float32(dim), float32(handle)) }

func (r *Recorder) ClipPlane(index int, c ClipPlane) {
	p := c.Plane
	r.add(OpClipPlane, float32(index), boolArg(c.Enabled), p.Normal.X, p.Normal.Y, p.Normal.Z, p.D)
}

func (r *Recorder) Fog(f Fog) {
	r.add(OpFog, f.Color.R, f.Color.G, f.Color.B, f.Color.A, f.Start, f.End)
}
