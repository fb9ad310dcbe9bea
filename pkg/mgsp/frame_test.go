// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"bytes"
	"errors"
	"testing"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{"empty", nil, 0x00},
		{"single byte", []byte{0x72}, 0x72},
		{"wraps modulo 256", []byte{0xFF, 0xFF, 0x03}, 0x01},
		{"handshake request body", append([]byte{0x72}, make([]byte, 35)...), 0x72},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%02X, want 0x%02X", got, tt.want)
			}
		})
	}
}

func TestEncodeFrameRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0xAA}
	f, err := EncodeFrame(0x40, payload, 0x07)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	if len(f) != FrameLength {
		t.Fatalf("frame length = %d, want %d", len(f), FrameLength)
	}

	decoded, err := DecodeFrame(f)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if decoded.Command() != 0x40 {
		t.Errorf("Command() = 0x%02X, want 0x40", decoded.Command())
	}
	if decoded.UserID() != 0x07 {
		t.Errorf("UserID() = 0x%02X, want 0x07", decoded.UserID())
	}
	if !bytes.Equal(decoded.Payload()[:len(payload)], payload) {
		t.Errorf("payload = % X, want % X", decoded.Payload()[:len(payload)], payload)
	}
	for _, b := range decoded.Payload()[len(payload):] {
		if b != 0 {
			t.Error("payload padding is not zeroed")
			break
		}
	}
}

func TestEncodeFramePayloadTooLarge(t *testing.T) {
	_, err := EncodeFrame(0x40, make([]byte, MaxPayloadSize+1), 0)
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("err = %v, want ErrEncoding", err)
	}
}

func TestDecodeFrameWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 36, 38, 74} {
		if _, err := DecodeFrame(make([]byte, n)); !errors.Is(err, ErrFraming) {
			t.Errorf("len %d: err = %v, want ErrFraming", n, err)
		}
	}
}

func TestDecodeFrameChecksumCorruption(t *testing.T) {
	f, err := EncodeFrame(0x72, nil, 0)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	// Any single-bit corruption of the checksum byte must fail decoding,
	// never misparse silently.
	for bit := 0; bit < 8; bit++ {
		raw := make([]byte, FrameLength)
		copy(raw, f)
		raw[ChecksumOffset] ^= 1 << bit

		_, err := DecodeFrame(raw)
		if !errors.Is(err, ErrChecksum) {
			t.Errorf("bit %d: err = %v, want ErrChecksum", bit, err)
		}
		var cerr *ChecksumError
		if !errors.As(err, &cerr) {
			t.Fatalf("bit %d: err is %T, want *ChecksumError", bit, err)
		}
		if cerr.Want != f.Checksum() {
			t.Errorf("bit %d: Want = 0x%02X, want 0x%02X", bit, cerr.Want, f.Checksum())
		}
	}
}

func TestFrameClassification(t *testing.T) {
	tests := []struct {
		command byte
		isEvent bool
		action  bool
		eeprom  bool
	}{
		{0x72, false, false, false},
		{0x40, false, true, false},
		{0x4F, false, true, false},
		{0x50, false, false, true},
		{0x5F, false, false, true},
		{0xE0, true, false, false},
		{0xE2, true, false, false},
		{0xEF, true, false, false},
		{0xF0, false, false, false},
	}

	for _, tt := range tests {
		f, err := EncodeFrame(tt.command, nil, 0)
		if err != nil {
			t.Fatalf("EncodeFrame(0x%02X) failed: %v", tt.command, err)
		}
		if f.IsEvent() != tt.isEvent {
			t.Errorf("0x%02X: IsEvent() = %v, want %v", tt.command, f.IsEvent(), tt.isEvent)
		}
		if f.InResponseRange(CmdPerformAction) != tt.action {
			t.Errorf("0x%02X: action range = %v, want %v", tt.command, !tt.action, tt.action)
		}
		if f.InResponseRange(CmdReadEEPROM) != tt.eeprom {
			t.Errorf("0x%02X: eeprom range = %v, want %v", tt.command, !tt.eeprom, tt.eeprom)
		}
	}
}
