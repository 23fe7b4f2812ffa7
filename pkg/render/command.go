package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/scenery/pkg/math"
)

// Op identifies a sink call.
type Op uint8

const (
	OpBegin Op = iota
	OpEnd
	OpVertex
	OpColor
	OpNormal
	OpTexCoord
	OpPushMatrix
	OpMultMatrix
	OpPopMatrix
	OpPushAttrib
	OpPopAttrib
	OpEnable
	OpLineWidth
	OpMaterial
	OpLight
	OpTexture
	OpClipPlane
	OpFog
	numOps
)

var opInfo = [numOps]struct {
	name  string
	arity int
}{
	OpBegin:      {"begin", 1},
	OpEnd:        {"end", 0},
	OpVertex:     {"vertex", 3},
	OpColor:      {"color", 4},
	OpNormal:     {"normal", 3},
	OpTexCoord:   {"texcoord", 2},
	OpPushMatrix: {"push", 1},
	OpMultMatrix: {"mult", 17},
	OpPopMatrix:  {"pop", 1},
	OpPushAttrib: {"pushattrib", 0},
	OpPopAttrib:  {"popattrib", 0},
	OpEnable:     {"enable", 2},
	OpLineWidth:  {"linewidth", 1},
	OpMaterial:   {"material", 13},
	OpLight:      {"light", 18},
	OpTexture:    {"texture", 2},
	OpClipPlane:  {"clip", 6},
	OpFog:        {"fog", 6},
}

func (o Op) String() string {
	if o < numOps {
		return opInfo[o].name
	}
	return "unknown"
}

// LookupOp returns the op with the given textual name.
func LookupOp(name string) (Op, bool) {
	for i, info := range opInfo {
		if info.name == name {
			return Op(i), true
		}
	}
	return 0, false
}

// Command is one recorded sink call with its arguments flattened to floats.
type Command struct {
	Op   Op
	Args []float32
}

// String formats the command as a single line: the op name followed by
// its arguments in shortest round-trip form.
func (c Command) String() string {
	var sb strings.Builder
	sb.WriteString(c.Op.String())
	for _, a := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(float64(a), 'g', -1, 32))
	}
	return sb.String()
}

// ParseCommand parses a line produced by Command.String.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	op, ok := LookupOp(fields[0])
	if !ok {
		return Command{}, fmt.Errorf("unknown op %q", fields[0])
	}
	if want := opInfo[op].arity; len(fields)-1 != want {
		return Command{}, fmt.Errorf("%s: expected %d arguments, got %d", op, want, len(fields)-1)
	}
	cmd := Command{Op: op}
	if len(fields) > 1 {
		cmd.Args = make([]float32, 0, len(fields)-1)
	}
	for _, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return Command{}, fmt.Errorf("%s: parsing argument %q: %w", op, f, err)
		}
		cmd.Args = append(cmd.Args, float32(v))
	}
	return cmd, nil
}

// Apply replays the command on sink.
func (c Command) Apply(sink Sink) {
	a := c.Args
	switch c.Op {
	case OpBegin:
		sink.Begin(Primitive(a[0]))
	case OpEnd:
		sink.End()
	case OpVertex:
		sink.Vertex(math.Vec3{X: a[0], Y: a[1], Z: a[2]})
	case OpColor:
		sink.Color(Color{a[0], a[1], a[2], a[3]})
	case OpNormal:
		sink.Normal(math.Vec3{X: a[0], Y: a[1], Z: a[2]})
	case OpTexCoord:
		sink.TexCoord(math.Vec2{X: a[0], Y: a[1]})
	case OpPushMatrix:
		sink.PushMatrix(MatrixMode(a[0]))
	case OpMultMatrix:
		var m math.Mat4
		copy(m[:], a[1:])
		sink.MultMatrix(MatrixMode(a[0]), m)
	case OpPopMatrix:
		sink.PopMatrix(MatrixMode(a[0]))
	case OpPushAttrib:
		sink.PushAttrib()
	case OpPopAttrib:
		sink.PopAttrib()
	case OpEnable:
		sink.Enable(Cap(a[0]), a[1] != 0)
	case OpLineWidth:
		sink.LineWidth(a[0])
	case OpMaterial:
		sink.Material(Material{
			Ambient:   Color{a[0], a[1], a[2], a[3]},
			Diffuse:   Color{a[4], a[5], a[6], a[7]},
			Specular:  Color{a[8], a[9], a[10], a[11]},
			Shininess: a[12],
		})
	case OpLight:
		sink.Light(int(a[0]), Light{
			Enabled:  a[1] != 0,
			Position: [4]float32{a[2], a[3], a[4], a[5]},
			Ambient:  Color{a[6], a[7], a[8], a[9]},
			Diffuse:  Color{a[10], a[11], a[12], a[13]},
			Specular: Color{a[14], a[15], a[16], a[17]},
		})
	case OpTexture:
		sink.Texture(int(a[0]), uint32(a[1]))
	case OpClipPlane:
		sink.ClipPlane(int(a[0]), ClipPlane{
			Enabled: a[1] != 0,
			Plane:   math.Plane{Normal: math.Vec3{X: a[2], Y: a[3], Z: a[4]}, D: a[5]},
		})
	case OpFog:
		sink.Fog(Fog{Color: Color{a[0], a[1], a[2], a[3]}, Start: a[4], End: a[5]})
	}
}

func boolArg(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
