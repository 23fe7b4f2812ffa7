package scenegraph

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenery/pkg/math"
)

// Shape maps a transition phase in [-0.5, 0.5] to a blend weight in [0, 1].
type Shape uint8

const (
	ShapeNearest Shape = iota
	ShapeLinear
	ShapeCosine
	ShapeArctangent
)

var shapeNames = [...]string{"nearest", "linear", "cosine", "arctangent"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// arctangent steepness
const atanK = 10

// Weight returns the blend weight for phase p.
func (s Shape) Weight(p float32) float32 {
	p = min(max(p, -0.5), 0.5)
	switch s {
	case ShapeNearest:
		if p > 0 {
			return 1
		}
		return 0
	case ShapeCosine:
		return 0.5 - 0.5*math32.Cos(math32.Pi*(p+0.5))
	case ShapeArctangent:
		return 0.5 + math32.Atan(atanK*p)/(2*math32.Atan(atanK*0.5))
	default:
		return p + 0.5
	}
}

// Pose is an absolute transform: translation, rotation, scale.
type Pose struct {
	Translate math.Vec3
	Rotate    math.Quat
	Scale     math.Vec3
}

// IdentityPose returns the pose of the identity transform.
func IdentityPose() Pose {
	return Pose{Rotate: math.QuatIdentity(), Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Matrix returns T * R * S.
func (p Pose) Matrix() math.Mat4 {
	return math.Translate(p.Translate).Mul(p.Rotate.Mat4()).Mul(math.Scale(p.Scale))
}

// Blend interpolates towards o by t, slerping the rotation.
func (p Pose) Blend(o Pose, t float32) Pose {
	return Pose{
		Translate: p.Translate.Lerp(o.Translate, t),
		Rotate:    p.Rotate.Slerp(o.Rotate, t),
		Scale:     p.Scale.Lerp(o.Scale, t),
	}
}

// Transition blends between two poses. Its phase runs in [-0.5, 0.5]:
// -0.5 is fully at From (disabled), +0.5 fully at To (enabled). Enabling
// or disabling retargets the motion; the phase then eases there over
// Duration seconds and stops.
type Transition struct {
	Animation

	From  Pose
	To    Pose
	Shape Shape
}

// NewTransition creates a disabled transition resting at From.
func NewTransition(name string, duration float32, from, to Pose) *Transition {
	t := &Transition{From: from, To: to, Shape: ShapeCosine}
	t.InitNode(t, name)
	vel := float32(1)
	if duration > 0 {
		vel = 1 / duration
	}
	t.initAnimation(Motion{}, -vel)
	t.SetLimit(0.5, true, false)
	t.phase = -0.5
	t.paused = true
	return t
}

// Kind implements Node.
func (t *Transition) Kind() string { return "transition" }

// SetSignal makes the transition arm a signal each time it comes to rest.
func (t *Transition) SetSignal(on bool) { t.signalAtStop = on }

// SetDuration changes the time a full transition takes.
func (t *Transition) SetDuration(d float32) {
	if d <= 0 {
		return
	}
	t.nominalVel = direction(t.velocity) / d
	t.velocity = t.nominalVel
}

// Weight returns the current blend weight.
func (t *Transition) Weight() float32 { return t.Shape.Weight(t.phase) }

// Pose returns the current blended pose.
func (t *Transition) Pose() Pose { return t.From.Blend(t.To, t.Weight()) }

// Matrix implements Transformer.
func (t *Transition) Matrix() math.Mat4 { return t.Pose().Matrix() }

// Enable heads for To.
func (t *Transition) Enable() { t.retarget(1) }

// Disable heads for From.
func (t *Transition) Disable() { t.retarget(-1) }

// Enabled reports whether the transition is heading for, or resting at, To.
func (t *Transition) Enabled() bool { return t.velocity > 0 }

func (t *Transition) retarget(dir float32) {
	t.velocity = dir * math32.Abs(t.nominalVel)
	if t.phase*dir >= 0.5 {
		t.phase = 0.5 * dir
		t.paused = true
		return
	}
	t.paused = false
}

// Restart retargets like Enable or Disable and rewinds to the opposite end
// when v is a bound, so the full transition replays.
func (t *Transition) Restart(v float32) {
	t.Animation.Restart(v)
	switch {
	case v >= 0.5:
		t.velocity = -math32.Abs(t.nominalVel)
	case v <= -0.5:
		t.velocity = math32.Abs(t.nominalVel)
	}
}

// Steer implements Steerable by jumping to phase v.
func (t *Transition) Steer(v float32) {
	t.Rewind(min(max(v, -0.5), 0.5))
}

// Finish completes an in-flight transition immediately.
func (t *Transition) Finish() {
	t.phase = 0.5 * direction(t.velocity)
	if !t.paused {
		t.stop()
	}
}

// ExportAttrs implements Attributer.
func (t *Transition) ExportAttrs() []Attr {
	return append(t.Animation.ExportAttrs(), Attr{"shape", t.Shape.String()})
}
