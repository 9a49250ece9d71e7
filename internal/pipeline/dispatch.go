package pipeline

import (
	"fmt"
	"log"
	"time"

	"github.com/SaturnOperator/ir2hid/internal/hid"
	"github.com/SaturnOperator/ir2hid/internal/ir"
	"github.com/SaturnOperator/ir2hid/internal/lut"
	"github.com/SaturnOperator/ir2hid/internal/status"
)

// DefaultDebounceWindow is the minimum time between two deliveries of the
// same signature before the second one counts as a new press.
const DefaultDebounceWindow = 5 * time.Millisecond

// Outcome classifies how a decoded signal was handled.
type Outcome string

const (
	OutcomeRepeat    Outcome = "REPEAT"
	OutcomeDebounced Outcome = "DEBOUNCED"
	OutcomeEmitted   Outcome = "EMITTED"
	OutcomeNoMapping Outcome = "NO_MAPPING"
	OutcomeSkipped   Outcome = "NOT_CONNECTED"
)

// KeyEvent describes one processed signal, for publishing.
type KeyEvent struct {
	Timestamp time.Time
	Sig       ir.Signature
	Outcome   Outcome
	Code      uint8 // valid for EMITTED and NOT_CONNECTED
}

// Publisher receives processed key events. Implemented by internal/mqtt;
// publish failures must not stop the loop.
type Publisher interface {
	PublishKey(event KeyEvent) error
}

// Config wires the dispatcher's collaborators. Queue, Table, Output and
// Tracker are required; Publisher and Notify are optional.
type Config struct {
	Queue   *Queue
	Table   *lut.Table
	Output  hid.Output
	Tracker *status.Tracker

	// Publisher receives a KeyEvent per processed signal.
	Publisher Publisher

	// Notify is called after each status update to request a redraw.
	// It must not block.
	Notify func()

	// Window is the debounce window. Defaults to DefaultDebounceWindow.
	Window time.Duration

	// Now supplies monotonic time. Defaults to time.Now.
	Now func() time.Time
}

// Dispatcher is the single consumer of the event queue. All debounce
// state, table lookups and string formatting live here, on the dispatch
// context, so the capture path never allocates or locks.
type Dispatcher struct {
	queue   *Queue
	table   *lut.Table
	out     hid.Output
	tracker *status.Tracker
	pub     Publisher
	notify  func()
	window  time.Duration
	now     func() time.Time

	// Debounce state. Single writer, never shared.
	last      ir.Signature
	lastAt    time.Time
	lastValid bool

	counts status.EventCounts
}

// New creates a Dispatcher.
func New(cfg Config) *Dispatcher {
	if cfg.Window <= 0 {
		cfg.Window = DefaultDebounceWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Dispatcher{
		queue:   cfg.Queue,
		table:   cfg.Table,
		out:     cfg.Output,
		tracker: cfg.Tracker,
		pub:     cfg.Publisher,
		notify:  cfg.Notify,
		window:  cfg.Window,
		now:     cfg.Now,
	}
}

// Run consumes events until a Back short press arrives. Blocking on an
// empty queue is the idle state of the whole process.
func (d *Dispatcher) Run() {
	for {
		e := d.queue.Pop()
		switch e.Kind {
		case EventInputKey:
			if e.Input.Key == KeyBack && e.Input.Type == PressShort {
				return
			}
			// Other keys are reserved for UI concerns.

		case EventTimerTick:
			d.tracker.SetOutputConnected(d.out.IsConnected())

		case EventSignal:
			d.Process(e.Signal, d.now())
		}
	}
}

// Process runs one decoded frame through the repeat filter, the debounce
// filter, table lookup, emission and the status update. Time is passed in
// so tests control the clock.
func (d *Dispatcher) Process(msg ir.Message, now time.Time) Outcome {
	d.counts.Received++

	// Protocol-level continuation frames are discarded outright: they are
	// a held button, not a new press, and must not touch debounce state.
	if msg.Repeat {
		d.counts.Repeats++
		d.tracker.SetCounts(d.counts)
		return OutcomeRepeat
	}

	// Same physical press arriving again inside the window.
	if d.lastValid && msg.Signature == d.last && now.Sub(d.lastAt) < d.window {
		d.counts.Debounced++
		d.tracker.SetCounts(d.counts)
		return OutcomeDebounced
	}
	d.last = msg.Signature
	d.lastAt = now
	d.lastValid = true

	code, found := d.table.Find(msg.Signature)
	connected := d.out.IsConnected()

	var outcome Outcome
	switch {
	case found && connected:
		d.emit(code)
		d.counts.Emitted++
		outcome = OutcomeEmitted
	case found:
		// No active output session; skip emission, still show the match.
		d.counts.Skipped++
		outcome = OutcomeSkipped
	default:
		d.counts.NoMapping++
		outcome = OutcomeNoMapping
	}

	protoLine := "Proto: " + msg.Protocol.Name()
	addrLine := fmt.Sprintf("Addr: 0x%04X", msg.Address)
	var cmdLine string
	if found {
		cmdLine = fmt.Sprintf("Cmd:0x%08X HID:0x%02X", msg.Command, code)
	} else {
		cmdLine = fmt.Sprintf("Cmd:0x%08X (no mapping)", msg.Command)
	}

	d.tracker.SetSignal(protoLine, addrLine, cmdLine)
	d.tracker.SetCounts(d.counts)
	d.tracker.SetOutputConnected(connected)

	if d.notify != nil {
		d.notify()
	}

	if d.pub != nil {
		event := KeyEvent{Timestamp: now, Sig: msg.Signature, Outcome: outcome}
		if found {
			event.Code = code
		}
		if err := d.pub.PublishKey(event); err != nil {
			log.Printf("publish key event: %v", err)
		}
	}

	return outcome
}

func (d *Dispatcher) emit(code uint8) {
	if err := d.out.Press(code); err != nil {
		log.Printf("hid press: %v", err)
		return
	}
	if err := d.out.Release(code); err != nil {
		log.Printf("hid release: %v", err)
	}
}

// Counts returns a copy of the running event counts.
func (d *Dispatcher) Counts() status.EventCounts {
	return d.counts
}
