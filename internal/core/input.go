package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move piece left
	ActionRight          // D, Right arrow - move piece right
	ActionRotate         // W, Up arrow - rotate piece clockwise
	ActionConfirm        // Space - start game, drop fast, restart after game over
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotate:
		return "Rotate"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// edgeActions are the actions whose press transitions games react to.
var edgeActions = [...]Action{ActionLeft, ActionRight, ActionRotate, ActionConfirm}

// InputFrame represents the held state of every action during one tick.
// Input sources report levels, not edges; see EdgeDetector.
type InputFrame struct {
	// Actions maps action types to whether they are held this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Edges holds the actions that went from released to held.
type Edges map[Action]bool

// Pressed reports whether a press transition was seen for the action.
func (e Edges) Pressed(a Action) bool {
	return e[a]
}

// EdgeDetector turns level signals into press edges.
//
// Edges latch: a press seen by Update stays pending until Consume, so a
// consumer that only acts on some ticks (a frame timer) never loses one.
type EdgeDetector struct {
	prev    map[Action]bool
	pending Edges
}

// NewEdgeDetector creates a detector with every action released.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{
		prev:    make(map[Action]bool),
		pending: make(Edges),
	}
}

// Update samples the current levels and latches new press edges.
func (d *EdgeDetector) Update(in InputFrame) {
	for _, a := range edgeActions {
		held := in.Has(a)
		if held && !d.prev[a] {
			d.pending[a] = true
		}
		d.prev[a] = held
	}
}

// Consume returns the latched edges and clears them.
func (d *EdgeDetector) Consume() Edges {
	out := d.pending
	d.pending = make(Edges)
	return out
}

// Reset forgets previous levels and pending edges.
func (d *EdgeDetector) Reset() {
	d.prev = make(map[Action]bool)
	d.pending = make(Edges)
}
