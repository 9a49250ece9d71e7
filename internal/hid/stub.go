//go:build !linux

package hid

import "errors"

// RealOutput is not available on non-Linux platforms.
type RealOutput struct{}

// NewRealOutput returns an error on non-Linux platforms.
func NewRealOutput() (*RealOutput, error) {
	return nil, errors.New("hid: not supported on this platform (requires Linux)")
}

// Press is not implemented on non-Linux platforms.
func (o *RealOutput) Press(code uint8) error {
	return errors.New("hid: not supported")
}

// Release is not implemented on non-Linux platforms.
func (o *RealOutput) Release(code uint8) error {
	return errors.New("hid: not supported")
}

// IsConnected always reports false on non-Linux platforms.
func (o *RealOutput) IsConnected() bool {
	return false
}

// Close is not implemented on non-Linux platforms.
func (o *RealOutput) Close() error {
	return nil
}
