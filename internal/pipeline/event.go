// Package pipeline contains the signal-processing core: the bounded event
// queue between the capture path and the dispatch loop, and the dispatch
// loop itself with its debounce filter.
// Hardware (IR capture, key output) and rendering are injected; the
// package itself performs no I/O beyond the injected collaborators.
package pipeline

import "github.com/SaturnOperator/ir2hid/internal/ir"

// EventKind tags the variants of Event.
type EventKind uint8

const (
	// EventTimerTick is a periodic housekeeping tick.
	EventTimerTick EventKind = iota
	// EventInputKey is a local input (navigation/cancel) event.
	EventInputKey
	// EventSignal carries a decoded infrared frame.
	EventSignal
)

// InputKey identifies a local input key.
type InputKey uint8

const (
	KeyUp InputKey = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyOK
	// KeyBack with a short press terminates the dispatch loop.
	KeyBack
)

// PressType qualifies an input key event.
type PressType uint8

const (
	PressShort PressType = iota
	PressLong
)

// InputEvent is a local key press.
type InputEvent struct {
	Key  InputKey
	Type PressType
}

// Event is the tagged union carried on the queue. Only the field selected
// by Kind is meaningful; events are copied by value.
type Event struct {
	Kind   EventKind
	Input  InputEvent
	Signal ir.Message
}

// TickEvent builds a TimerTick event.
func TickEvent() Event {
	return Event{Kind: EventTimerTick}
}

// InputKeyEvent builds an InputKey event.
func InputKeyEvent(key InputKey, press PressType) Event {
	return Event{Kind: EventInputKey, Input: InputEvent{Key: key, Type: press}}
}

// SignalEvent builds a Signal event carrying a decoded frame.
func SignalEvent(msg ir.Message) Event {
	return Event{Kind: EventSignal, Signal: msg}
}
