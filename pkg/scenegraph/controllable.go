package scenegraph

// ControlMode decides how a node reacts to a boolean control signal.
type ControlMode uint8

const (
	// ModeNone ignores signals.
	ModeNone ControlMode = iota
	// ModeOn enables the node on any signal.
	ModeOn
	// ModeOff disables the node on any signal.
	ModeOff
	// ModeEnable follows the signal: true enables, false disables.
	ModeEnable
	// ModeDisable follows the negated signal.
	ModeDisable
	// ModeInvert toggles the enabled flag on a true signal.
	ModeInvert
	// ModeShow follows the signal with the visibility flag.
	ModeShow
	// ModeHide follows the negated signal with the visibility flag.
	ModeHide
)

var modeNames = [...]string{"none", "on", "off", "enable", "disable", "invert", "show", "hide"}

func (m ControlMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseControlMode maps a mode name back to its value.
func ParseControlMode(s string) (ControlMode, bool) {
	for i, name := range modeNames {
		if name == s {
			return ControlMode(i), true
		}
	}
	return ModeNone, false
}

// Controllable is implemented by every node through Base. Kinds override
// Enable and Disable when the flags have a richer meaning, as transitions
// do.
type Controllable interface {
	Node
	Control(v bool)
	Enable()
	Disable()
	Show()
	Hide()
	Enabled() bool
	Hidden() bool
	ControlMode() ControlMode
	SetControlMode(m ControlMode)
}

// Steerable receives scalar signals from steer nodes.
type Steerable interface {
	Steer(v float32)
}

// Signaler is a source of one-shot boolean signals, armed during update and
// consumed by a listening control node during Settle.
type Signaler interface {
	TakeSignal() (value, ok bool)
}

// Enable sets the enabled flag.
func (b *Base) Enable() { b.enabled = true }

// Disable clears the enabled flag. Disabled nodes are neither rendered,
// updated nor picked.
func (b *Base) Disable() { b.enabled = false }

// Show clears the hidden flag.
func (b *Base) Show() { b.hidden = false }

// Hide sets the hidden flag. Hidden nodes keep updating.
func (b *Base) Hide() { b.hidden = true }

// Enabled reports the enabled flag.
func (b *Base) Enabled() bool { return b.enabled }

// Hidden reports the hidden flag.
func (b *Base) Hidden() bool { return b.hidden }

// ControlMode returns the mode applied to incoming control signals.
func (b *Base) ControlMode() ControlMode { return b.mode }

// SetControlMode changes the mode applied to incoming control signals.
func (b *Base) SetControlMode(m ControlMode) { b.mode = m }

// Control applies a signal according to the node's mode.
func (b *Base) Control(v bool) {
	c, ok := b.This().(Controllable)
	if !ok {
		return
	}
	applyMode(c, b.mode, v)
}

func applyMode(c Controllable, mode ControlMode, v bool) {
	switch mode {
	case ModeOn:
		c.Enable()
	case ModeOff:
		c.Disable()
	case ModeEnable:
		setEnabled(c, v)
	case ModeDisable:
		setEnabled(c, !v)
	case ModeInvert:
		if v {
			setEnabled(c, !c.Enabled())
		}
	case ModeShow:
		setVisible(c, v)
	case ModeHide:
		setVisible(c, !v)
	}
}

func setEnabled(c Controllable, on bool) {
	if on {
		c.Enable()
	} else {
		c.Disable()
	}
}

func setVisible(c Controllable, on bool) {
	if on {
		c.Show()
	} else {
		c.Hide()
	}
}

// plain reports whether a node carries no user-visible identity or flags,
// which makes it a candidate for optimizer rewrites.
func plain(n Node) bool {
	b := n.AsBase()
	return b.Name == "" && b.enabled && !b.hidden && b.mode == ModeEnable && b.refs <= 1
}
