// Package ir provides infrared signal capture with hardware abstraction.
// The real implementation decodes edge events from a demodulator pin on the
// Linux GPIO character device. The fake implementation allows testing
// without hardware.
package ir

import "github.com/SaturnOperator/ir2hid/internal/protocol"

// Signature identifies a logical remote button. Two signatures are equal
// iff all three fields are equal.
type Signature struct {
	Protocol protocol.Protocol
	Address  uint32
	Command  uint32
}

// Message is a decoded infrared frame. Repeat marks a protocol-level
// continuation frame (held button), as opposed to a new key press.
type Message struct {
	Signature
	Repeat bool
}

// Receiver delivers decoded messages to a handler.
//
// The handler runs on the capture path, which may have real-time
// constraints: it must only hand the message off (a non-blocking enqueue)
// and never allocate, lock, or block.
type Receiver interface {
	// Start begins capture. The handler is invoked for every decoded frame
	// until Close.
	Start(handler func(Message)) error

	// Close stops capture and releases hardware resources.
	Close() error
}

// Pin is the default BCM pin number for the IR demodulator data line.
const Pin = 23
