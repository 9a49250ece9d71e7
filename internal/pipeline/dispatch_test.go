package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/SaturnOperator/ir2hid/internal/hid"
	"github.com/SaturnOperator/ir2hid/internal/ir"
	"github.com/SaturnOperator/ir2hid/internal/lut"
	"github.com/SaturnOperator/ir2hid/internal/protocol"
	"github.com/SaturnOperator/ir2hid/internal/status"
)

const sampleLUT = "ir_protocol,ir_address,ir_command,hid_command,ir_key_comment,hid_key_comment\n" +
	"NECext,0x7F00,0xA758,0x80,remote vol+,KEY_MEDIA_VOLUME_UP\n"

var (
	mappedSig   = ir.Signature{Protocol: protocol.NECext, Address: 0x7F00, Command: 0xA758}
	unmappedSig = ir.Signature{Protocol: protocol.NECext, Address: 0x7F00, Command: 0x0001}
)

type fixture struct {
	queue   *Queue
	out     *hid.FakeOutput
	tracker *status.Tracker
	disp    *Dispatcher
	start   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		queue:   NewQueue(DefaultQueueDepth),
		out:     hid.NewFakeOutput(),
		tracker: status.NewTracker(time.Now(), status.Config{}),
		start:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.disp = New(Config{
		Queue:   f.queue,
		Table:   lut.Parse(sampleLUT),
		Output:  f.out,
		Tracker: f.tracker,
	})
	return f
}

func (f *fixture) at(ticks int) time.Time {
	return f.start.Add(time.Duration(ticks) * time.Millisecond)
}

func TestProcessEmitsMappedSignal(t *testing.T) {
	f := newFixture(t)

	outcome := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(0))
	if outcome != OutcomeEmitted {
		t.Fatalf("outcome: got %s, want EMITTED", outcome)
	}

	want := []hid.Pulse{{Code: 0x80}, {Code: 0x80, Release: true}}
	if len(f.out.Pulses) != 2 || f.out.Pulses[0] != want[0] || f.out.Pulses[1] != want[1] {
		t.Errorf("pulses: got %+v, want press+release of 0x80", f.out.Pulses)
	}

	snap := f.tracker.Snapshot()
	if !snap.HasSignal {
		t.Error("expected HasSignal=true")
	}
	if snap.Proto != "Proto: NECext" {
		t.Errorf("proto line: got %q", snap.Proto)
	}
	if snap.Addr != "Addr: 0x7F00" {
		t.Errorf("addr line: got %q", snap.Addr)
	}
	if snap.Cmd != "Cmd:0x0000A758 HID:0x80" {
		t.Errorf("cmd line: got %q", snap.Cmd)
	}
}

func TestProcessNoMapping(t *testing.T) {
	f := newFixture(t)

	outcome := f.disp.Process(ir.Message{Signature: unmappedSig}, f.at(0))
	if outcome != OutcomeNoMapping {
		t.Fatalf("outcome: got %s, want NO_MAPPING", outcome)
	}
	if len(f.out.Pulses) != 0 {
		t.Errorf("expected no emission, got %+v", f.out.Pulses)
	}

	snap := f.tracker.Snapshot()
	if !strings.HasSuffix(snap.Cmd, "(no mapping)") {
		t.Errorf("cmd line: got %q, want suffix %q", snap.Cmd, "(no mapping)")
	}
	if snap.Cmd != "Cmd:0x00000001 (no mapping)" {
		t.Errorf("cmd line: got %q", snap.Cmd)
	}
}

func TestProcessDebounceWindow(t *testing.T) {
	f := newFixture(t)

	// Two identical signatures 2 ticks apart: one emission.
	if got := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(0)); got != OutcomeEmitted {
		t.Fatalf("first: got %s", got)
	}
	if got := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(2)); got != OutcomeDebounced {
		t.Fatalf("second at +2ms: got %s, want DEBOUNCED", got)
	}
	if got := len(f.out.Codes()); got != 1 {
		t.Fatalf("expected 1 emission, got %d", got)
	}

	// 6 ticks after the first: a new press.
	if got := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(6)); got != OutcomeEmitted {
		t.Fatalf("third at +6ms: got %s, want EMITTED", got)
	}
	if got := len(f.out.Codes()); got != 2 {
		t.Fatalf("expected 2 emissions, got %d", got)
	}
}

func TestProcessDebounceDistinguishesSignatures(t *testing.T) {
	f := newFixture(t)

	f.disp.Process(ir.Message{Signature: mappedSig}, f.at(0))
	// Different command inside the window is not a duplicate.
	if got := f.disp.Process(ir.Message{Signature: unmappedSig}, f.at(1)); got != OutcomeNoMapping {
		t.Fatalf("different signature: got %s, want NO_MAPPING", got)
	}
}

func TestProcessDebounceWindowRestartsOnAccept(t *testing.T) {
	f := newFixture(t)

	f.disp.Process(ir.Message{Signature: mappedSig}, f.at(0))
	f.disp.Process(ir.Message{Signature: mappedSig}, f.at(6))
	// 2 ticks after the accepted second press: still inside its window.
	if got := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(8)); got != OutcomeDebounced {
		t.Fatalf("got %s, want DEBOUNCED", got)
	}
}

func TestProcessRepeatFrameDiscarded(t *testing.T) {
	f := newFixture(t)

	// Repeats are discarded regardless of timing and never touch debounce
	// state: a real press right after a repeat must still emit.
	if got := f.disp.Process(ir.Message{Signature: mappedSig, Repeat: true}, f.at(0)); got != OutcomeRepeat {
		t.Fatalf("repeat: got %s", got)
	}
	if len(f.out.Pulses) != 0 {
		t.Errorf("repeat emitted: %+v", f.out.Pulses)
	}
	if f.tracker.Snapshot().HasSignal {
		t.Error("repeat should not update status text")
	}

	if got := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(1)); got != OutcomeEmitted {
		t.Fatalf("press after repeat: got %s, want EMITTED", got)
	}

	// And a repeat after a press does not extend or reset the window.
	f.disp.Process(ir.Message{Signature: mappedSig, Repeat: true}, f.at(2))
	if got := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(7)); got != OutcomeEmitted {
		t.Fatalf("press after window: got %s, want EMITTED", got)
	}
}

func TestProcessOutputNotConnected(t *testing.T) {
	f := newFixture(t)
	f.out.Connected = false

	outcome := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(0))
	if outcome != OutcomeSkipped {
		t.Fatalf("outcome: got %s, want NOT_CONNECTED", outcome)
	}
	if len(f.out.Pulses) != 0 {
		t.Errorf("expected no emission, got %+v", f.out.Pulses)
	}

	// Status text still updates, including the mapped code.
	snap := f.tracker.Snapshot()
	if snap.Cmd != "Cmd:0x0000A758 HID:0x80" {
		t.Errorf("cmd line: got %q", snap.Cmd)
	}
	if snap.OutputConnected {
		t.Error("expected OutputConnected=false")
	}
}

func TestProcessEmptyTable(t *testing.T) {
	f := newFixture(t)
	f.disp.table = &lut.Table{}

	if got := f.disp.Process(ir.Message{Signature: mappedSig}, f.at(0)); got != OutcomeNoMapping {
		t.Fatalf("got %s, want NO_MAPPING", got)
	}
}

func TestProcessCounts(t *testing.T) {
	f := newFixture(t)

	f.disp.Process(ir.Message{Signature: mappedSig}, f.at(0))                // emitted
	f.disp.Process(ir.Message{Signature: mappedSig}, f.at(1))                // debounced
	f.disp.Process(ir.Message{Signature: mappedSig, Repeat: true}, f.at(2))  // repeat
	f.disp.Process(ir.Message{Signature: unmappedSig}, f.at(3))              // no mapping

	counts := f.disp.Counts()
	if counts.Received != 4 {
		t.Errorf("received: got %d, want 4", counts.Received)
	}
	if counts.Emitted != 1 || counts.Debounced != 1 || counts.Repeats != 1 || counts.NoMapping != 1 {
		t.Errorf("counts: %+v", counts)
	}

	snap := f.tracker.Snapshot()
	if snap.Counts != counts {
		t.Errorf("tracker counts %+v, dispatcher counts %+v", snap.Counts, counts)
	}
}

func TestProcessNotifyAndPublish(t *testing.T) {
	f := newFixture(t)

	var redraws int
	f.disp.notify = func() { redraws++ }

	pub := &recordingPublisher{}
	f.disp.pub = pub

	f.disp.Process(ir.Message{Signature: mappedSig}, f.at(0))
	f.disp.Process(ir.Message{Signature: unmappedSig}, f.at(1))
	// Discarded events produce neither a redraw nor a publish.
	f.disp.Process(ir.Message{Signature: mappedSig, Repeat: true}, f.at(2))

	if redraws != 2 {
		t.Errorf("redraws: got %d, want 2", redraws)
	}
	if len(pub.events) != 2 {
		t.Fatalf("published: got %d, want 2", len(pub.events))
	}
	if pub.events[0].Outcome != OutcomeEmitted || pub.events[0].Code != 0x80 {
		t.Errorf("event 0: %+v", pub.events[0])
	}
	if pub.events[1].Outcome != OutcomeNoMapping {
		t.Errorf("event 1: %+v", pub.events[1])
	}
}

type recordingPublisher struct {
	events []KeyEvent
	err    error
}

func (r *recordingPublisher) PublishKey(e KeyEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func TestRunTerminatesOnBackShortPress(t *testing.T) {
	f := newFixture(t)

	f.queue.Push(SignalEvent(ir.Message{Signature: mappedSig}))
	f.queue.Push(InputKeyEvent(KeyOK, PressShort))   // ignored
	f.queue.Push(InputKeyEvent(KeyBack, PressLong))  // long press: ignored
	f.queue.Push(InputKeyEvent(KeyBack, PressShort)) // terminal

	done := make(chan struct{})
	go func() {
		f.disp.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not terminate on Back short press")
	}

	if got := len(f.out.Codes()); got != 1 {
		t.Errorf("expected the queued signal to be processed, got %d emissions", got)
	}
}

func TestRunTimerTickRefreshesConnection(t *testing.T) {
	f := newFixture(t)
	f.out.Connected = false

	f.queue.Push(TickEvent())
	f.queue.Push(InputKeyEvent(KeyBack, PressShort))
	f.disp.Run()

	if f.tracker.Snapshot().OutputConnected {
		t.Error("tick should have recorded a disconnected output")
	}

	f.out.Connected = true
	f.queue.Push(TickEvent())
	f.queue.Push(InputKeyEvent(KeyBack, PressShort))
	f.disp.Run()

	if !f.tracker.Snapshot().OutputConnected {
		t.Error("tick should have recorded a connected output")
	}
}

func TestCapturePathHandoff(t *testing.T) {
	f := newFixture(t)

	// The capture handler is exactly a non-blocking enqueue.
	handler := func(m ir.Message) { f.queue.TryPush(SignalEvent(m)) }

	for i := 0; i < 20; i++ {
		handler(ir.Message{Signature: mappedSig})
	}
	if f.queue.Len() != f.queue.Cap() {
		t.Fatalf("queue: got %d pending, want %d", f.queue.Len(), f.queue.Cap())
	}
}
