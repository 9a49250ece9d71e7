// Package hid provides key output with hardware abstraction.
// The real implementation is a virtual keyboard on the Linux uinput
// subsystem. The fake implementation allows testing without a device.
package hid

// Output emits key events to the host.
//
// Emission is a press pulse immediately followed by a release pulse.
// Callers are expected to skip emission while IsConnected reports false;
// a disconnected session is not an error.
type Output interface {
	// Press sends a key-down event for the given code.
	Press(code uint8) error

	// Release sends a key-up event for the given code.
	Release(code uint8) error

	// IsConnected reports whether the output session is active.
	IsConnected() bool

	// Close tears down the output device.
	Close() error
}
