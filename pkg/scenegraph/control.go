package scenegraph

// Control forwards boolean signals to its children, the control targets.
// Its children are never rendered or updated through it; they belong to
// the render structure through their other parents.
type Control struct {
	Base

	// Delay postpones every forwarded signal by this many seconds of frame
	// time. A signal arriving while one is pending replaces it.
	Delay float32

	countdown    float32
	pending      bool
	pendingValue bool
	last         bool
	busy         bool
	source       Signaler
}

// NewControl creates a control node.
func NewControl(name string, delay float32) *Control {
	c := &Control{Delay: delay}
	c.InitNode(c, name)
	return c
}

// Kind implements Node.
func (c *Control) Kind() string { return "control" }

// Follow implements Node. Control targets are never traversed.
func (c *Control) Follow(int) bool { return false }

// ControlLinks implements ControlLinker.
func (c *Control) ControlLinks() bool { return true }

// Listen makes c consume the signals armed by src during Settle.
func (c *Control) Listen(src Signaler) { c.source = src }

// Source returns the listened signal source, if any.
func (c *Control) Source() Signaler { return c.source }

// Pending reports whether a delayed signal is waiting.
func (c *Control) Pending() bool { return c.pending }

// Last returns the last value forwarded.
func (c *Control) Last() bool { return c.last }

// Control receives a signal. Disabled control nodes drop it.
func (c *Control) Control(v bool) {
	if !c.enabled {
		return
	}
	if c.Delay > 0 {
		c.pending = true
		c.pendingValue = v
		c.countdown = c.Delay
		return
	}
	c.fire(v)
}

// UpdateNode counts down a pending delayed signal.
func (c *Control) UpdateNode(dt float32) {
	if !c.pending {
		return
	}
	c.countdown -= dt
	if c.countdown <= 0 {
		c.pending = false
		c.fire(c.pendingValue)
	}
}

// SettleNode delivers a pending delayed signal immediately, then consumes
// a signal armed by the listened source.
func (c *Control) SettleNode() {
	if c.pending && c.enabled {
		c.pending = false
		c.fire(c.pendingValue)
	}
	c.DeliverNode()
}

// DeliverNode consumes a signal armed by the listened source.
func (c *Control) DeliverNode() {
	if c.source == nil {
		return
	}
	if v, ok := c.source.TakeSignal(); ok {
		c.Control(v)
	}
}

// fire transforms v by the node's mode and forwards the result.
func (c *Control) fire(v bool) {
	out := v
	switch c.mode {
	case ModeNone:
		return
	case ModeOn:
		out = true
	case ModeOff:
		out = false
	case ModeDisable, ModeHide:
		out = !v
	case ModeInvert:
		if !v {
			return
		}
		out = !c.last
	}
	c.forward(out)
}

func (c *Control) forward(v bool) {
	if c.busy {
		return
	}
	c.busy = true
	defer func() { c.busy = false }()
	c.last = v
	for _, t := range c.Children() {
		if ctl, ok := t.(Controllable); ok {
			ctl.Control(v)
		}
	}
}

// ExportAttrs implements Attributer.
func (c *Control) ExportAttrs() []Attr {
	attrs := []Attr{{"delay", c.Delay}}
	if c.pending {
		attrs = append(attrs, Attr{"pending", c.countdown})
	}
	return attrs
}

// ActionKind selects the lifecycle action an Action node performs.
type ActionKind uint8

const (
	ActRestart ActionKind = iota
	ActPause
	ActResume
	ActReverse
	ActFinish
	ActSpeedup
)

var actionNames = [...]string{"restart", "pause", "resume", "reverse", "finish", "speedup"}

func (a ActionKind) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Action performs a lifecycle action on the whole subgraph of each child
// when it receives a true signal.
type Action struct {
	Base

	Do ActionKind
	// Value is the restart phase or speed factor.
	Value float32

	busy bool
}

// NewAction creates an action node.
func NewAction(name string, do ActionKind, value float32) *Action {
	a := &Action{Do: do, Value: value}
	a.InitNode(a, name)
	return a
}

// Kind implements Node.
func (a *Action) Kind() string { return "action" }

// Follow implements Node.
func (a *Action) Follow(int) bool { return false }

// ControlLinks implements ControlLinker.
func (a *Action) ControlLinks() bool { return true }

// Control runs the action on a true signal.
func (a *Action) Control(v bool) {
	if !a.enabled || !v || a.busy {
		return
	}
	a.busy = true
	defer func() { a.busy = false }()
	for _, t := range a.Children() {
		switch a.Do {
		case ActRestart:
			RestartAll(t, a.Value)
		case ActPause:
			PauseAll(t, true)
		case ActResume:
			PauseAll(t, false)
		case ActReverse:
			ReverseAll(t)
		case ActFinish:
			FinishAll(t)
		case ActSpeedup:
			SpeedupAll(t, a.Value)
		}
	}
}

// ExportAttrs implements Attributer.
func (a *Action) ExportAttrs() []Attr {
	return []Attr{{"do", a.Do.String()}, {"value", a.Value}}
}

// Steer maps a scalar signal by Scale and Offset and forwards it to every
// Steerable child. A boolean signal steers 1 or 0.
type Steer struct {
	Base

	Scale  float32
	Offset float32

	last float32
	busy bool
}

// NewSteer creates a steer node with unit scale.
func NewSteer(name string) *Steer {
	s := &Steer{Scale: 1}
	s.InitNode(s, name)
	return s
}

// Kind implements Node.
func (s *Steer) Kind() string { return "steer" }

// Follow implements Node.
func (s *Steer) Follow(int) bool { return false }

// ControlLinks implements ControlLinker.
func (s *Steer) ControlLinks() bool { return true }

// Control steers 1 on true and 0 on false.
func (s *Steer) Control(v bool) {
	if v {
		s.Steer(1)
	} else {
		s.Steer(0)
	}
}

// Steer forwards v*Scale+Offset.
func (s *Steer) Steer(v float32) {
	if !s.enabled || s.busy {
		return
	}
	s.busy = true
	defer func() { s.busy = false }()
	out := v*s.Scale + s.Offset
	s.last = out
	for _, t := range s.Children() {
		if st, ok := t.(Steerable); ok {
			st.Steer(out)
		}
	}
}

// Last returns the last value forwarded.
func (s *Steer) Last() float32 { return s.last }

// ExportAttrs implements Attributer.
func (s *Steer) ExportAttrs() []Attr {
	return []Attr{{"scale", s.Scale}, {"offset", s.Offset}}
}

// Barrier is a group whose children are traversed and receive control
// signals only while it is enabled. Steering it with a positive value opens
// it, anything else closes it.
type Barrier struct {
	Base

	busy bool
}

// NewBarrier creates an open barrier.
func NewBarrier(name string) *Barrier {
	b := &Barrier{}
	b.InitNode(b, name)
	return b
}

// Kind implements Node.
func (b *Barrier) Kind() string { return "barrier" }

// Follow implements Node.
func (b *Barrier) Follow(int) bool { return b.enabled }

// Control passes the signal on to the children while open.
func (b *Barrier) Control(v bool) {
	if !b.enabled || b.busy {
		return
	}
	b.busy = true
	defer func() { b.busy = false }()
	for _, t := range b.Children() {
		if ctl, ok := t.(Controllable); ok {
			ctl.Control(v)
		}
	}
}

// Steer opens the barrier for v > 0 and closes it otherwise.
func (b *Barrier) Steer(v float32) {
	if v > 0 {
		b.Enable()
	} else {
		b.Disable()
	}
}
