package scenegraph

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenery/pkg/math"
)

// Motion is the pose change per unit of animation phase.
type Motion struct {
	Translate math.Vec3
	Axis      math.Vec3
	// Angle is in radians per unit phase around Axis.
	Angle float32
	// Grow is the scale change per unit phase; zero keeps unit scale.
	Grow math.Vec3
}

// At returns the transform for phase p: translate, then rotate, then scale.
func (m Motion) At(p float32) math.Mat4 {
	out := math.Identity()
	if m.Translate != (math.Vec3{}) {
		out = math.Translate(m.Translate.Scale(p))
	}
	if m.Angle != 0 && m.Axis != (math.Vec3{}) {
		out = out.Mul(math.Rotate(m.Axis, m.Angle*p))
	}
	if m.Grow != (math.Vec3{}) {
		out = out.Mul(math.Scale(math.Vec3{X: 1, Y: 1, Z: 1}.Add(m.Grow.Scale(p))))
	}
	return out
}

// Animation is a transform node driven by a phase that advances with frame
// time. With a limit set the phase stays within [-Limit, Limit]: it either
// stops there, bounces, or is pulled back by a reverse acceleration.
type Animation struct {
	Base

	Motion Motion

	phase    float32
	velocity float32
	accel    float32

	nominalVel float32
	nominalAcc float32

	limit        float32
	stopAtLimit  bool
	signalAtStop bool
	reverseAccel float32
	outside      bool

	paused bool
	speed  float32

	armed       bool
	signalValue bool
}

// NewAnimation creates a running animation with the given nominal velocity
// in phase units per second.
func NewAnimation(name string, motion Motion, velocity float32) *Animation {
	a := &Animation{}
	a.InitNode(a, name)
	a.initAnimation(motion, velocity)
	return a
}

func (a *Animation) initAnimation(motion Motion, velocity float32) {
	a.Motion = motion
	a.velocity = velocity
	a.nominalVel = velocity
	a.speed = 1
}

// Kind implements Node.
func (a *Animation) Kind() string { return "animation" }

// SetAcceleration sets the current and nominal acceleration.
func (a *Animation) SetAcceleration(acc float32) {
	a.accel = acc
	a.nominalAcc = acc
}

// SetVelocity sets the current and nominal velocity.
func (a *Animation) SetVelocity(v float32) {
	a.velocity = v
	a.nominalVel = v
}

// SetLimit bounds the phase to [-l, l]; zero removes the bound. With stop
// set the animation pauses at the bound, and with signal set it also arms a
// one-shot signal: true at the positive bound, false at the negative one.
func (a *Animation) SetLimit(l float32, stop, signal bool) {
	a.limit = math32.Abs(l)
	a.stopAtLimit = stop
	a.signalAtStop = signal
}

// SetReverseAcceleration makes the phase decelerate and return when it
// crosses the limit instead of bouncing. Zero restores bouncing.
func (a *Animation) SetReverseAcceleration(r float32) {
	a.reverseAccel = math32.Abs(r)
}

func (a *Animation) Phase() float32        { return a.phase }
func (a *Animation) Velocity() float32     { return a.velocity }
func (a *Animation) Acceleration() float32 { return a.accel }
func (a *Animation) Limit() float32        { return a.limit }
func (a *Animation) Paused() bool          { return a.paused }
func (a *Animation) Speed() float32        { return a.speed }

// Matrix implements Transformer.
func (a *Animation) Matrix() math.Mat4 { return a.Motion.At(a.phase) }

// RenderNode implements Renderer.
func (a *Animation) RenderNode(rc *RenderContext) {
	rc.WithTransform(a, a.This().(Transformer).Matrix())
}

// Restart sets the phase to v and resets velocity and acceleration to their
// nominal values. A phase beyond the limit snaps to the nearer bound with
// the velocity pointing back inside.
func (a *Animation) Restart(v float32) {
	a.phase = v
	a.velocity = a.nominalVel
	a.accel = a.nominalAcc
	a.outside = false
	a.armed = false
	a.paused = false
	if a.limit <= 0 {
		return
	}
	switch {
	case a.phase > a.limit:
		a.phase = a.limit
		a.velocity = -math32.Abs(a.velocity)
	case a.phase < -a.limit:
		a.phase = -a.limit
		a.velocity = math32.Abs(a.velocity)
	}
}

// Rewind sets the phase without touching the dynamics.
func (a *Animation) Rewind(v float32) { a.phase = v }

// Steer implements Steerable by rewinding.
func (a *Animation) Steer(v float32) { a.Rewind(v) }

// Reverse negates the velocity.
func (a *Animation) Reverse() { a.velocity = -a.velocity }

// Forward moves the phase by d in the direction of motion.
func (a *Animation) Forward(d float32) { a.phase += d * direction(a.velocity) }

// Backward moves the phase by d against the direction of motion.
func (a *Animation) Backward(d float32) { a.phase -= d * direction(a.velocity) }

// Pause stops or resumes the phase.
func (a *Animation) Pause(p bool) { a.paused = p }

// SpeedUp sets the frame time multiplier.
func (a *Animation) SpeedUp(f float32) { a.speed = f }

// Finish jumps a stopping animation to the bound it is heading for.
func (a *Animation) Finish() {
	if a.limit <= 0 || !a.stopAtLimit {
		return
	}
	a.phase = a.limit * direction(a.velocity)
	a.stop()
}

// UpdateNode implements Updater.
func (a *Animation) UpdateNode(dt float32) {
	if a.paused {
		return
	}
	// Speed scales how fast the phase moves, not how fast velocity
	// changes.
	a.velocity += a.accel * dt
	a.phase += a.velocity * a.speed * dt
	if a.limit <= 0 {
		return
	}
	l := a.limit
	switch {
	case a.stopAtLimit:
		if a.phase >= l || a.phase <= -l {
			a.phase = min(max(a.phase, -l), l)
			a.stop()
		}
	case a.reverseAccel == 0:
		if a.phase > l {
			a.phase = 2*l - a.phase
			a.velocity = -a.velocity
		} else if a.phase < -l {
			a.phase = -2*l - a.phase
			a.velocity = -a.velocity
		}
		a.phase = min(max(a.phase, -l), l)
	default:
		if math32.Abs(a.phase) > l {
			a.accel = -direction(a.phase) * a.reverseAccel
			a.outside = true
		} else if a.outside {
			a.outside = false
			a.accel = a.nominalAcc
			a.velocity = direction(a.velocity) * math32.Abs(a.nominalVel)
		}
	}
}

func (a *Animation) stop() {
	a.paused = true
	if a.signalAtStop {
		a.armed = true
		a.signalValue = a.phase > 0
	}
}

// TakeSignal implements Signaler.
func (a *Animation) TakeSignal() (value, ok bool) {
	if !a.armed {
		return false, false
	}
	a.armed = false
	return a.signalValue, true
}

// ExportAttrs implements Attributer.
func (a *Animation) ExportAttrs() []Attr {
	attrs := []Attr{{"phase", a.phase}, {"velocity", a.velocity}}
	if a.accel != 0 {
		attrs = append(attrs, Attr{"acceleration", a.accel})
	}
	if a.limit > 0 {
		attrs = append(attrs, Attr{"limit", a.limit})
	}
	if a.paused {
		attrs = append(attrs, Attr{"paused", true})
	}
	if a.speed != 1 {
		attrs = append(attrs, Attr{"speed", a.speed})
	}
	return attrs
}

// direction returns the sign of v, treating zero as positive.
func direction(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
