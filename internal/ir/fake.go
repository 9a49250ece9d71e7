package ir

import "errors"

// FakeReceiver is a test double that delivers scripted messages.
type FakeReceiver struct {
	// StartError, if set, will be returned by Start.
	StartError error

	// Closed tracks if Close was called.
	Closed bool

	handler func(Message)
}

// NewFakeReceiver creates a FakeReceiver.
func NewFakeReceiver() *FakeReceiver {
	return &FakeReceiver{}
}

// Start records the handler for later Emit calls.
func (f *FakeReceiver) Start(handler func(Message)) error {
	if f.StartError != nil {
		return f.StartError
	}
	f.handler = handler
	return nil
}

// Emit delivers a message to the registered handler, simulating a decoded
// frame arriving on the capture path.
func (f *FakeReceiver) Emit(msg Message) error {
	if f.handler == nil {
		return errors.New("receiver not started")
	}
	f.handler(msg)
	return nil
}

// Close marks the receiver as closed.
func (f *FakeReceiver) Close() error {
	f.Closed = true
	f.handler = nil
	return nil
}
