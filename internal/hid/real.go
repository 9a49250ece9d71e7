//go:build linux

package hid

import (
	"fmt"

	"github.com/bendahl/uinput"
)

// RealOutput is a virtual keyboard backed by the Linux uinput subsystem.
// Output codes are interpreted as evdev key codes (KEY_VOLUMEUP and
// friends), which covers the media-key range the mapping file targets.
type RealOutput struct {
	kb uinput.Keyboard
}

// NewRealOutput creates the virtual keyboard device.
func NewRealOutput() (*RealOutput, error) {
	kb, err := uinput.CreateKeyboard("/dev/uinput", []byte("ir2hid"))
	if err != nil {
		return nil, fmt.Errorf("create uinput keyboard: %w", err)
	}
	return &RealOutput{kb: kb}, nil
}

// Press sends a key-down event.
func (o *RealOutput) Press(code uint8) error {
	if err := o.kb.KeyDown(int(code)); err != nil {
		return fmt.Errorf("key down 0x%02X: %w", code, err)
	}
	return nil
}

// Release sends a key-up event.
func (o *RealOutput) Release(code uint8) error {
	if err := o.kb.KeyUp(int(code)); err != nil {
		return fmt.Errorf("key up 0x%02X: %w", code, err)
	}
	return nil
}

// IsConnected reports whether the virtual keyboard exists. The uinput
// device stays registered with the kernel until Close.
func (o *RealOutput) IsConnected() bool {
	return o.kb != nil
}

// Close destroys the virtual keyboard.
func (o *RealOutput) Close() error {
	if o.kb == nil {
		return nil
	}
	err := o.kb.Close()
	o.kb = nil
	return err
}
