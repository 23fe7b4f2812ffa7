package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenery/pkg/math"
)

func recordAll(r *Recorder) {
	r.PushAttrib()
	r.Enable(Lighting, true)
	r.LineWidth(2.5)
	r.Material(DefaultMaterial)
	r.Light(1, Light{Enabled: true, Position: [4]float32{0, 1, 0, 0}, Diffuse: White})
	r.Texture(2, 7)
	r.ClipPlane(0, ClipPlane{Enabled: true, Plane: math.PlaneFromPoint(math.Vec3{Y: 1}, math.Vec3{})})
	r.Fog(Fog{Color: RGB(0.5, 0.5, 0.5), Start: 1, End: 100})
	r.PushMatrix(ModelView)
	r.MultMatrix(ModelView, math.Translate(math.Vec3{X: 1, Y: -2, Z: 0.125}))
	r.Begin(Triangles)
	r.Color(RGB(1, 0, 0))
	r.Normal(math.Vec3{Z: 1})
	r.TexCoord(math.Vec2{X: 0.5, Y: 1})
	r.Vertex(math.Vec3{X: 0.1, Y: 0.2, Z: 0.3})
	r.End()
	r.PopMatrix(ModelView)
	r.PopAttrib()
}

func TestCommandRoundTrip(t *testing.T) {
	rec := NewRecorder()
	recordAll(rec)

	for _, c := range rec.Commands() {
		parsed, err := ParseCommand(c.String())
		require.NoError(t, err, c.String())
		assert.Equal(t, c, parsed)
	}
}

func TestReplayReproducesStream(t *testing.T) {
	rec := NewRecorder()
	recordAll(rec)

	other := NewRecorder()
	rec.Replay(other)
	assert.Equal(t, rec.Commands(), other.Commands())
}

func TestWriteTo(t *testing.T) {
	rec := NewRecorder()
	rec.Begin(Lines)
	rec.Vertex(math.Vec3{X: 1})
	rec.End()

	var buf bytes.Buffer
	_, err := rec.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "begin 1\nvertex 1 0 0\nend\n", buf.String())
}

func TestParseCommandErrors(t *testing.T) {
	tests := []string{"", "teleport 1 2", "vertex 1 2", "vertex 1 2 x"}
	for _, line := range tests {
		_, err := ParseCommand(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestCount(t *testing.T) {
	rec := NewRecorder()
	recordAll(rec)
	assert.Equal(t, 1, rec.Count(OpBegin))
	assert.Equal(t, 1, rec.Count(OpPushAttrib))
	rec.Reset()
	assert.Zero(t, rec.Len())
}

func TestStateCaps(t *testing.T) {
	s := DefaultState()
	assert.True(t, s.Enabled(DepthTest))
	assert.True(t, s.Enabled(DepthWrite))
	assert.False(t, s.Enabled(Blend))

	s.Set(Blend, true)
	s.Set(DepthTest, false)
	assert.True(t, s.Enabled(Blend))
	assert.False(t, s.Enabled(DepthTest))

	snapshot := s
	s.Set(Blend, false)
	assert.NotEqual(t, snapshot, s, "State must be comparable by value")
}

func TestNames(t *testing.T) {
	assert.Equal(t, "triangles", Triangles.String())
	assert.Equal(t, "fog", Fogging.String())
	assert.Equal(t, "texture", TextureMatrix.String())
	assert.True(t, strings.HasPrefix(OpMultMatrix.String(), "mult"))
}
