// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

// Decoder reassembles 37-byte frames from a raw byte stream.
//
// The Paradox framing carries no start or end markers, so alignment is
// recovered from the checksum: when a full window fails validation the
// decoder discards exactly one byte and re-attempts alignment on the next
// byte, rather than aborting the channel. Each failed window is reported as
// a ChecksumError so callers can count integrity failures; the decoder
// remains usable afterwards.
type Decoder struct {
	window [FrameLength]byte
	fill   int
}

// NewDecoder creates a frame decoder in the aligned (empty) state.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Reset discards any partially accumulated frame.
func (d *Decoder) Reset() {
	d.fill = 0
}

// Pending returns the number of buffered bytes awaiting frame completion.
func (d *Decoder) Pending() int {
	return d.fill
}

// DecodeByte feeds one byte into the decoder. It returns a completed frame
// once 37 aligned bytes have accumulated, a ChecksumError when a full
// window fails validation (the window then slides by one byte), or
// (nil, nil) while a frame is still incomplete.
func (d *Decoder) DecodeByte(b byte) (Frame, error) {
	d.window[d.fill] = b
	d.fill++
	if d.fill < FrameLength {
		return nil, nil
	}

	want := Checksum(d.window[:ChecksumOffset])
	if d.window[ChecksumOffset] == want {
		f := make(Frame, FrameLength)
		copy(f, d.window[:])
		d.fill = 0
		return f, nil
	}

	// Misaligned or corrupted: drop the oldest byte and keep the rest.
	got := d.window[ChecksumOffset]
	copy(d.window[:], d.window[1:])
	d.fill = FrameLength - 1
	return nil, &ChecksumError{Got: got, Want: want}
}
