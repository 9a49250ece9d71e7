package ir

import (
	"time"

	"github.com/SaturnOperator/ir2hid/internal/protocol"
)

// NEC timing. A frame is a 9ms lead mark, a 4.5ms space, then 32 bits
// LSB-first (562µs mark; 562µs space = 0, 1687µs space = 1). A held button
// sends repeat frames: 9ms mark followed by a 2.25ms space.
const (
	necLeadMark    = 9000 * time.Microsecond
	necLeadSpace   = 4500 * time.Microsecond
	necRepeatSpace = 2250 * time.Microsecond
	necBitMark     = 562 * time.Microsecond
	necZeroSpace   = 562 * time.Microsecond
	necOneSpace    = 1687 * time.Microsecond
)

// within reports whether d is inside ±25% of the nominal duration.
func within(d, nominal time.Duration) bool {
	tol := nominal / 4
	return d >= nominal-tol && d <= nominal+tol
}

// necDecoder turns mark/space pulse pairs into decoded Messages. It
// recognizes standard NEC (8-bit address and command, each sent with its
// complement) and NECext (16-bit address and command, no complement
// check). Repeat frames re-emit the last decoded signature with
// Repeat=true.
//
// Each HandlePulse call carries one mark and the space that followed it.
type necDecoder struct {
	handler func(Message)

	buf       uint32
	bits      int
	inFrame   bool
	last      Signature
	lastValid bool
}

func newNECDecoder(handler func(Message)) *necDecoder {
	return &necDecoder{handler: handler}
}

func (d *necDecoder) HandlePulse(mark, space time.Duration) {
	if within(mark, necLeadMark) {
		if within(space, necLeadSpace) {
			// New frame
			d.buf = 0
			d.bits = 0
			d.inFrame = true
			return
		}
		if within(space, necRepeatSpace) && d.lastValid {
			d.inFrame = false
			d.handler(Message{Signature: d.last, Repeat: true})
			return
		}
		d.inFrame = false
		return
	}

	if !d.inFrame || !within(mark, necBitMark) {
		d.inFrame = false
		return
	}

	switch {
	case within(space, necOneSpace):
		d.buf |= 1 << d.bits
	case within(space, necZeroSpace):
		// zero bit
	default:
		d.inFrame = false
		return
	}
	d.bits++

	if d.bits != 32 {
		return
	}
	d.inFrame = false
	d.emit(d.buf)
}

func (d *necDecoder) emit(buf uint32) {
	b0 := uint8(buf)
	b1 := uint8(buf >> 8)
	b2 := uint8(buf >> 16)
	b3 := uint8(buf >> 24)

	var sig Signature
	if b1 == ^b0 && b3 == ^b2 {
		sig = Signature{Protocol: protocol.NEC, Address: uint32(b0), Command: uint32(b2)}
	} else {
		sig = Signature{
			Protocol: protocol.NECext,
			Address:  uint32(b0) | uint32(b1)<<8,
			Command:  uint32(b2) | uint32(b3)<<8,
		}
	}

	d.last = sig
	d.lastValid = true
	d.handler(Message{Signature: sig})
}
