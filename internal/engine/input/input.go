// Package input collects window-system events in a backend-neutral form.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Key is a backend-neutral key identifier.
type Key int

// Keys the viewer reacts to. Everything else maps to KeyUnknown.
const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyF12
	KeyUp
	KeyDown
)

var keyNames = [...]string{
	KeyUnknown: "unknown",
	KeyEscape:  "escape",
	KeySpace:   "space",
	KeyF12:     "f12",
	KeyUp:      "up",
	KeyDown:    "down",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool // key held down, only set on EventKeyDown
	Width  int  // framebuffer size, only set on EventWindowResize
	Height int
}

// Input holds the events gathered during one frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Begin discards the previous frame's events.
func (i *Input) Begin() {
	i.events = i.events[:0]
}

// Push appends an event to the current frame.
func (i *Input) Push(e Event) {
	i.events = append(i.events, e)
}

// Events returns the events of the current frame.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether key went down this frame. Auto-repeat is ignored.
func (i *Input) IsKeyPressed(key Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key && !e.Repeat {
			return true
		}
	}
	return false
}

// KeyPresses counts down events for key this frame, repeats included.
func (i *Input) KeyPresses(key Key) int {
	n := 0
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == key {
			n++
		}
	}
	return n
}

// QuitRequested reports whether a quit event arrived this frame.
func (i *Input) QuitRequested() bool {
	for _, e := range i.events {
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}

// Resized returns the last framebuffer size reported this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	for _, e := range i.events {
		if e.Type == EventWindowResize {
			width, height, ok = e.Width, e.Height, true
		}
	}
	return width, height, ok
}
