package hid

// Pulse records a single key event.
type Pulse struct {
	Code    uint8
	Release bool
}

// FakeOutput records emitted key events for test assertions.
type FakeOutput struct {
	// Pulses contains every press and release in order.
	Pulses []Pulse

	// Connected controls the return value of IsConnected.
	Connected bool

	// PressError, if set, will be returned by Press.
	PressError error

	// ReleaseError, if set, will be returned by Release.
	ReleaseError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeOutput creates a FakeOutput that reports connected.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{Connected: true}
}

// Press records a key-down event.
func (f *FakeOutput) Press(code uint8) error {
	if f.PressError != nil {
		return f.PressError
	}
	f.Pulses = append(f.Pulses, Pulse{Code: code})
	return nil
}

// Release records a key-up event.
func (f *FakeOutput) Release(code uint8) error {
	if f.ReleaseError != nil {
		return f.ReleaseError
	}
	f.Pulses = append(f.Pulses, Pulse{Code: code, Release: true})
	return nil
}

// IsConnected reports the configured Connected flag.
func (f *FakeOutput) IsConnected() bool {
	return f.Connected
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// Codes returns the codes of recorded press events, in order.
func (f *FakeOutput) Codes() []uint8 {
	var codes []uint8
	for _, p := range f.Pulses {
		if !p.Release {
			codes = append(codes, p.Code)
		}
	}
	return codes
}

// Reset clears recorded pulses.
func (f *FakeOutput) Reset() {
	f.Pulses = nil
	f.Closed = false
}
