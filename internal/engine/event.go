package engine

import "strings"

// Event is a set of input events. Values can be OR-combined when delivered
// through OnEventStart; OnEventEnd expects a single event.
type Event uint16

// Input events understood by the engine.
const (
	EventNone       Event = 0
	EventMoveDown   Event = 1 << 0
	EventMoveLeft   Event = 1 << 1
	EventMoveRight  Event = 1 << 2
	EventRotateCW   Event = 1 << 3
	EventRotateCCW  Event = 1 << 4 // accepted but never dispatched by Update
	EventDrop       Event = 1 << 5
	EventPause      Event = 1 << 6
	EventRestart    Event = 1 << 7
	EventShowNext   Event = 1 << 8  // toggle the preview piece
	EventShowShadow Event = 1 << 9  // toggle the ghost piece
	EventQuit       Event = 1 << 10 // finish the game
)

var eventNames = []struct {
	e    Event
	name string
}{
	{EventMoveDown, "MoveDown"},
	{EventMoveLeft, "MoveLeft"},
	{EventMoveRight, "MoveRight"},
	{EventRotateCW, "RotateCW"},
	{EventRotateCCW, "RotateCCW"},
	{EventDrop, "Drop"},
	{EventPause, "Pause"},
	{EventRestart, "Restart"},
	{EventShowNext, "ShowNext"},
	{EventShowShadow, "ShowShadow"},
	{EventQuit, "Quit"},
}

// Has reports whether every bit of other is set in e.
func (e Event) Has(other Event) bool {
	return other != EventNone && e&other == other
}

// Events splits a combined value into its single events, in bit order.
func (e Event) Events() []Event {
	var out []Event
	for _, n := range eventNames {
		if e&n.e != 0 {
			out = append(out, n.e)
		}
	}
	return out
}

// String returns the event names joined with "|".
func (e Event) String() string {
	if e == EventNone {
		return "None"
	}
	parts := make([]string, 0, 2)
	for _, n := range eventNames {
		if e&n.e != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "|")
}

// ParseEvent returns the single event with the given name.
func ParseEvent(name string) (Event, bool) {
	for _, n := range eventNames {
		if strings.EqualFold(n.name, name) {
			return n.e, true
		}
	}
	return EventNone, false
}
