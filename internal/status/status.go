// Package status provides a thread-safe status tracker for the ir2hid
// daemon. It is written by the dispatch loop and read by the HTTP status
// server.
package status

import (
	"sync"
	"time"
)

// EventCounts tracks how signals were handled since startup.
type EventCounts struct {
	Received  int // all decoded frames pulled off the queue
	Repeats   int // protocol-level continuation frames discarded
	Debounced int // same signature inside the debounce window
	Emitted   int // mapped and sent to the output
	NoMapping int // no table entry
	Skipped   int // mapped but output session not connected
}

// Config contains daemon configuration for display.
type Config struct {
	DebounceMs int64
	QueueDepth int
	LUTPath    string
	Broker     string
	HTTPAddr   string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	// Last-signal display lines ("Proto: ...", "Addr: ...", "Cmd:...").
	// Proto also carries load sentinels such as "lut.csv not found".
	Proto string
	Addr  string
	Cmd   string
	// HasSignal is false only until the first signal or sentinel.
	HasSignal bool

	OutputConnected bool
	MQTTConnected   bool
	TableEntries    int
	Counts          EventCounts
	StartTime       time.Time
	Now             time.Time
	Config          Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetSignal stores the three display lines for the last processed signal.
// Called from the dispatch loop.
func (t *Tracker) SetSignal(proto, addr, cmd string) {
	t.mu.Lock()
	t.snap.Proto = proto
	t.snap.Addr = addr
	t.snap.Cmd = cmd
	t.snap.HasSignal = true
	t.mu.Unlock()
}

// SetMessage replaces the display lines with a single message, such as the
// missing-mapping-file sentinel.
func (t *Tracker) SetMessage(msg string) {
	t.mu.Lock()
	t.snap.Proto = msg
	t.snap.Addr = ""
	t.snap.Cmd = ""
	t.snap.HasSignal = true
	t.mu.Unlock()
}

// SetCounts sets the event counts.
func (t *Tracker) SetCounts(counts EventCounts) {
	t.mu.Lock()
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetOutputConnected sets the output session state.
func (t *Tracker) SetOutputConnected(connected bool) {
	t.mu.Lock()
	t.snap.OutputConnected = connected
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetTableEntries records the mapping table size after load.
func (t *Tracker) SetTableEntries(n int) {
	t.mu.Lock()
	t.snap.TableEntries = n
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
