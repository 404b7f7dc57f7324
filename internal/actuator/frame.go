// Package actuator drives the strumming guitar controller: it turns a
// compiled chord into a fret frame and writes it to a serial port.
package actuator

import (
	"errors"
	"fmt"
)

// -------------------- Wire constants --------------------

const (
	// Muted marks a string that is neither fretted nor strummed.
	Muted = 255

	// MaxStrings is bounded by the width of the strum mask.
	MaxStrings = 8

	CmdApplyFrame = 0x10
	SOF0          = 0xAA
	SOF1          = 0x55

	DefaultDuration = 20
)

// ErrFrame is returned for a frame that cannot be put on the wire.
var ErrFrame = errors.New("invalid frame")

// -------------------- Frame --------------------

// Frame is a full-state snapshot of every string, sent in one transfer.
// Fret[0] is the lowest-pitched string.
type Frame struct {
	Fret      []byte // fret number, or Muted
	StrumMask byte   // bit N set = strum string N
	ProfileID byte
	Duration  byte
	Seq       byte
}

// EmptyFrame returns an all-muted, no-strum frame for n strings.
func EmptyFrame(n int, seq byte) Frame {
	f := Frame{Fret: make([]byte, n), Seq: seq}
	for i := range f.Fret {
		f.Fret[i] = Muted
	}
	return f
}

// Encode builds the on-wire representation:
//
//	[SOF0][SOF1][LEN][CMD][fret0..N-1][StrumMask][ProfileID][Duration][Seq][CKS]
//
// LEN counts the command byte and the payload. CKS is the XOR of LEN, CMD
// and every payload byte.
func (f Frame) Encode() ([]byte, error) {
	if len(f.Fret) == 0 || len(f.Fret) > MaxStrings {
		return nil, fmt.Errorf("%w: %d strings", ErrFrame, len(f.Fret))
	}
	payload := make([]byte, 0, len(f.Fret)+4) // frets + strum/profile/duration/seq
	payload = append(payload, f.Fret...)
	payload = append(payload, f.StrumMask, f.ProfileID, f.Duration, f.Seq)

	length := byte(len(payload) + 1) // +1 for CMD byte
	cks := length ^ CmdApplyFrame
	for _, b := range payload {
		cks ^= b
	}

	out := []byte{SOF0, SOF1, length, CmdApplyFrame}
	out = append(out, payload...)
	out = append(out, cks)
	return out, nil
}
