// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import "fmt"

// Frame is a validated 37-byte protocol message. A Frame produced by this
// package always has the correct length and a finalized checksum.
type Frame []byte

// NewFrame returns a zeroed frame carrying the given command byte. The
// checksum is not computed until Finalize is called.
func NewFrame(command byte) Frame {
	f := make(Frame, FrameLength)
	f[0] = command
	return f
}

// Finalize computes and stores the checksum over bytes 0..35.
func (f Frame) Finalize() Frame {
	f[ChecksumOffset] = Checksum(f[:ChecksumOffset])
	return f
}

// Command returns the command byte.
func (f Frame) Command() byte { return f[0] }

// Payload returns the frame body (positions 1..34), excluding the user-id
// and checksum bytes.
func (f Frame) Payload() []byte { return f[1:UserIDOffset] }

// UserID returns the user-id byte at position 35.
func (f Frame) UserID() byte { return f[UserIDOffset] }

// Checksum returns the checksum byte at position 36.
func (f Frame) Checksum() byte { return f[ChecksumOffset] }

// IsEvent reports whether the frame carries a live-event command (0xE0-0xEF).
func (f Frame) IsEvent() bool {
	return f[0] >= CmdLiveEventBase && f[0] <= CmdLiveEventBase+0x0F
}

// InResponseRange reports whether the command byte lies in base..base+0x0F,
// the window the panel uses for action and EEPROM responses.
func (f Frame) InResponseRange(base byte) bool {
	return f[0] >= base && f[0] <= base+0x0F
}

// String renders the frame as space-separated hex.
func (f Frame) String() string {
	out := make([]byte, 0, len(f)*3)
	for i, b := range f {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, fmt.Sprintf("%02X", b)...)
	}
	return string(out)
}

// EncodeFrame lays out a generic frame: command byte, payload copied into
// positions 1.., user id at 35, checksum at 36. Returns ErrEncoding when the
// payload does not fit the 34-byte body.
func EncodeFrame(command byte, payload []byte, userID byte) (Frame, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrEncoding, len(payload), MaxPayloadSize)
	}
	f := NewFrame(command)
	copy(f[1:], payload)
	f[UserIDOffset] = userID
	return f.Finalize(), nil
}

// DecodeFrame validates a raw 37-byte message. It fails with ErrFraming on
// wrong length and with a ChecksumError on integrity failure; a frame that
// fails either check is never interpreted.
func DecodeFrame(raw []byte) (Frame, error) {
	if len(raw) != FrameLength {
		return nil, fmt.Errorf("%w: got %d bytes", ErrFraming, len(raw))
	}
	want := Checksum(raw[:ChecksumOffset])
	if raw[ChecksumOffset] != want {
		return nil, &ChecksumError{Got: raw[ChecksumOffset], Want: want}
	}
	f := make(Frame, FrameLength)
	copy(f, raw)
	return f, nil
}
