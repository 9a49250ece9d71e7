//go:build linux

package ir

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealReceiver captures edge events from an IR demodulator on the Linux
// GPIO character device and runs them through the NEC decoder.
//
// Demodulator outputs are active-low: the line idles high and goes low for
// the duration of a mark. A falling edge therefore both closes the
// previous mark/space pair and opens the next mark.
type RealReceiver struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	pin  int

	dec       *necDecoder
	markStart time.Duration
	markEnd   time.Duration
}

// NewRealReceiver opens the GPIO chip for the given demodulator data pin.
func NewRealReceiver(pin int) (*RealReceiver, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &RealReceiver{chip: chip, pin: pin}, nil
}

// Start requests the line with edge detection and begins decoding.
// The handler is invoked from the kernel event goroutine; it must only
// hand the message off.
func (r *RealReceiver) Start(handler func(Message)) error {
	r.dec = newNECDecoder(handler)

	line, err := r.chip.RequestLine(r.pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(r.onEvent))
	if err != nil {
		return fmt.Errorf("request ir pin %d: %w", r.pin, err)
	}
	r.line = line
	return nil
}

func (r *RealReceiver) onEvent(evt gpiocdev.LineEvent) {
	switch evt.Type {
	case gpiocdev.LineEventFallingEdge:
		if r.markStart > 0 && r.markEnd > r.markStart {
			mark := r.markEnd - r.markStart
			space := evt.Timestamp - r.markEnd
			r.dec.HandlePulse(mark, space)
		}
		r.markStart = evt.Timestamp
	case gpiocdev.LineEventRisingEdge:
		r.markEnd = evt.Timestamp
	}
}

// Close releases the line and chip.
func (r *RealReceiver) Close() error {
	var errs []error
	if r.line != nil {
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close ir pin: %w", err))
		}
		r.line = nil
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		r.chip = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
