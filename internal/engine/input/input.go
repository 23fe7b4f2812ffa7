// Package input turns SDL2 events into viewer events and tracks mouse
// button state between frames.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event is one translated SDL event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Shift  bool
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int // Relative motion, or wheel ticks for EventMouseWheel
	DeltaY int
	Button uint8
}

// Input collects the events of one frame.
type Input struct {
	events []Event
	down   [8]bool
	// travel is the mouse distance covered since the last button press.
	travel int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update drains the SDL queue. It reports whether the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := Translate(event)
		if !ok {
			continue
		}
		i.Feed(e)
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}

// Feed records a translated event and updates the tracked button state.
func (i *Input) Feed(e Event) {
	switch e.Type {
	case EventMouseDown:
		i.setDown(e.Button, true)
		i.travel = 0
	case EventMouseUp:
		i.setDown(e.Button, false)
	case EventMouseMove:
		i.travel += abs(e.DeltaX) + abs(e.DeltaY)
	}
	i.events = append(i.events, e)
}

func (i *Input) setDown(button uint8, down bool) {
	if int(button) < len(i.down) {
		i.down[button] = down
	}
}

// Translate converts an SDL event. Events the viewer does not use, and
// key repeats, yield false.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		out := Event{
			Key:   e.Keysym.Scancode,
			Shift: e.Keysym.Mod&sdl.KMOD_SHIFT != 0,
		}
		switch e.Type {
		case sdl.KEYDOWN:
			out.Type = EventKeyDown
		case sdl.KEYUP:
			out.Type = EventKeyUp
		default:
			return Event{}, false
		}
		return out, true

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		out := Event{MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		switch e.Type {
		case sdl.MOUSEBUTTONDOWN:
			out.Type = EventMouseDown
		case sdl.MOUSEBUTTONUP:
			out.Type = EventMouseUp
		default:
			return Event{}, false
		}
		return out, true

	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, DeltaX: int(e.X), DeltaY: int(e.Y)}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// ButtonDown reports whether a mouse button (sdl.BUTTON_LEFT...) is held.
func (i *Input) ButtonDown(button uint8) bool {
	return int(button) < len(i.down) && i.down[button]
}

// Travel returns how far, in pixels, the mouse moved since the last button
// press. A release with little travel is a click rather than a drag.
func (i *Input) Travel() int {
	return i.travel
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return sdl.GetKeyboardState()[scancode] != 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
