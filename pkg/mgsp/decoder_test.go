// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"bytes"
	"errors"
	"testing"
)

// feed pushes a byte slice through the decoder, collecting frames and errors.
func feed(d *Decoder, data []byte) (frames []Frame, errs []error) {
	for _, b := range data {
		f, err := d.DecodeByte(b)
		if err != nil {
			errs = append(errs, err)
		}
		if f != nil {
			frames = append(frames, f)
		}
	}
	return frames, errs
}

func TestDecoderSingleFrame(t *testing.T) {
	f, _ := EncodeFrame(0x72, nil, 0)

	frames, errs := feed(NewDecoder(), f)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if !bytes.Equal(frames[0], f) {
		t.Errorf("decoded frame differs from encoded frame")
	}
}

func TestDecoderBackToBackFrames(t *testing.T) {
	f1, _ := EncodeFrame(0x40, []byte{0, 0, 0, ActionArmAway, 1}, 0)
	f2, _ := EncodeFrame(0xE2, []byte{0, byte(EventGroupZoneOpen), 5}, 0)

	stream := append(append([]byte{}, f1...), f2...)
	frames, errs := feed(NewDecoder(), stream)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Command() != 0x40 || frames[1].Command() != 0xE2 {
		t.Errorf("commands = 0x%02X, 0x%02X; want 0x40, 0xE2", frames[0].Command(), frames[1].Command())
	}
}

func TestDecoderResyncAfterGarbage(t *testing.T) {
	f, _ := EncodeFrame(0x72, nil, 0)

	// Leading garbage forces misaligned windows; the decoder must slide
	// byte-by-byte until the real frame aligns, reporting checksum errors
	// along the way but never dropping the frame.
	garbage := []byte{0xDE, 0xAD, 0xBE}
	stream := append(append([]byte{}, garbage...), f...)

	frames, errs := feed(NewDecoder(), stream)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if !bytes.Equal(frames[0], f) {
		t.Errorf("recovered frame differs from original")
	}
	if len(errs) != len(garbage) {
		t.Errorf("got %d checksum errors, want %d (one per discarded byte)", len(errs), len(garbage))
	}
	for _, err := range errs {
		if !errors.Is(err, ErrChecksum) {
			t.Errorf("err = %v, want ErrChecksum", err)
		}
	}
}

func TestDecoderCorruptedFrameThenGood(t *testing.T) {
	good, _ := EncodeFrame(0x50, []byte{0, 0x01, 0x20, 2}, 0)
	bad := make([]byte, FrameLength)
	copy(bad, good)
	bad[10] ^= 0xFF

	stream := append(append([]byte{}, bad...), good...)
	frames, errs := feed(NewDecoder(), stream)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if !bytes.Equal(frames[0], good) {
		t.Errorf("surviving frame differs from the good frame")
	}
	if len(errs) == 0 {
		t.Error("expected checksum errors while skipping the corrupted frame")
	}
}

func TestDecoderReset(t *testing.T) {
	d := NewDecoder()
	for _, b := range []byte{1, 2, 3} {
		d.DecodeByte(b)
	}
	if d.Pending() != 3 {
		t.Fatalf("Pending() = %d, want 3", d.Pending())
	}
	d.Reset()
	if d.Pending() != 0 {
		t.Errorf("Pending() after Reset = %d, want 0", d.Pending())
	}

	f, _ := EncodeFrame(0x72, nil, 0)
	frames, errs := feed(d, f)
	if len(errs) != 0 || len(frames) != 1 {
		t.Errorf("decoder unusable after Reset: frames=%d errs=%v", len(frames), errs)
	}
}
