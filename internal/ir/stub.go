//go:build !linux

package ir

import "errors"

// RealReceiver is not available on non-Linux platforms.
type RealReceiver struct{}

// NewRealReceiver returns an error on non-Linux platforms.
func NewRealReceiver(pin int) (*RealReceiver, error) {
	return nil, errors.New("ir: not supported on this platform (requires Linux)")
}

// Start is not implemented on non-Linux platforms.
func (r *RealReceiver) Start(handler func(Message)) error {
	return errors.New("ir: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealReceiver) Close() error {
	return nil
}
