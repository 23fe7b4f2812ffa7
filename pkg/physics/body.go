// Package physics defines the opaque rigid-body handle the scene graph
// reads transforms from. Solvers live outside this repository; Kinematic is
// a trivial integrator for demos and tests.
package physics

import "github.com/Faultbox/scenery/pkg/math"

// Body is an engine-supplied rigid body.
type Body interface {
	Transform() math.Mat4
	SetTransform(m math.Mat4)
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
	ApplyForce(f math.Vec3)
	ApplyImpulse(j math.Vec3)
	ApplyTorque(t math.Vec3)
}

// Kinematic is a point-mass body without rotation dynamics. Torque is
// accumulated but has no effect.
type Kinematic struct {
	Mass float32

	position math.Vec3
	velocity math.Vec3
	force    math.Vec3
	torque   math.Vec3
	released bool
}

var _ Body = (*Kinematic)(nil)

// NewKinematic creates a body of the given mass at position p.
func NewKinematic(mass float32, p math.Vec3) *Kinematic {
	if mass <= 0 {
		mass = 1
	}
	return &Kinematic{Mass: mass, position: p}
}

func (k *Kinematic) Transform() math.Mat4 { return math.Translate(k.position) }

func (k *Kinematic) SetTransform(m math.Mat4) { k.position = m.Translation() }

func (k *Kinematic) Velocity() math.Vec3 { return k.velocity }

func (k *Kinematic) SetVelocity(v math.Vec3) { k.velocity = v }

func (k *Kinematic) ApplyForce(f math.Vec3) { k.force = k.force.Add(f) }

func (k *Kinematic) ApplyImpulse(j math.Vec3) {
	k.velocity = k.velocity.Add(j.Scale(1 / k.Mass))
}

func (k *Kinematic) ApplyTorque(t math.Vec3) { k.torque = k.torque.Add(t) }

// Step integrates accumulated forces over dt seconds and clears them.
func (k *Kinematic) Step(dt float32) {
	k.velocity = k.velocity.Add(k.force.Scale(dt / k.Mass))
	k.position = k.position.Add(k.velocity.Scale(dt))
	k.force = math.Vec3{}
	k.torque = math.Vec3{}
}

// Release marks the body as released by its owner.
func (k *Kinematic) Release() { k.released = true }

// Released reports whether Release was called.
func (k *Kinematic) Released() bool { return k.released }
