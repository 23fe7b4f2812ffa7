package scenegraph

// Lifecycle capabilities reached by the broadcasts.
type (
	Restarter interface {
		Restart(v float32)
	}
	Pauser interface {
		Pause(p bool)
	}
	SpeedUpper interface {
		SpeedUp(f float32)
	}
	Finisher interface {
		Finish()
	}
	Reverser interface {
		Reverse()
	}
)

// RestartAll restarts every animation in the subgraph of n at phase v.
// Each node receives the call once even when shared.
func RestartAll(n Node, v float32) {
	broadcast(n, func(c Node) {
		if r, ok := c.(Restarter); ok {
			r.Restart(v)
		}
	})
}

// PauseAll pauses or resumes every animation in the subgraph of n.
func PauseAll(n Node, p bool) {
	broadcast(n, func(c Node) {
		if r, ok := c.(Pauser); ok {
			r.Pause(p)
		}
	})
}

// SpeedupAll sets the speed multiplier of every animation in the subgraph.
func SpeedupAll(n Node, f float32) {
	broadcast(n, func(c Node) {
		if r, ok := c.(SpeedUpper); ok {
			r.SpeedUp(f)
		}
	})
}

// FinishAll completes every in-flight transition in the subgraph.
func FinishAll(n Node) {
	broadcast(n, func(c Node) {
		if r, ok := c.(Finisher); ok {
			r.Finish()
		}
	})
}

// ReverseAll negates the velocity of every animation in the subgraph.
func ReverseAll(n Node) {
	broadcast(n, func(c Node) {
		if r, ok := c.(Reverser); ok {
			r.Reverse()
		}
	})
}

func broadcast(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	walkAll(n, func(c Node) bool {
		fn(c)
		return true
	})
}
