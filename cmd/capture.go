// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/openparadox/paradoxctl/pkg/mgsp"
)

// captureRecord is one recorded live event. Records are written as a
// plain CBOR stream, one map per event; integer keys keep the files
// compact at high event rates.
type captureRecord struct {
	Version      int    `cbor:"1,keyasint"`
	At           int64  `cbor:"2,keyasint"` // unix nanoseconds
	Command      byte   `cbor:"3,keyasint"`
	Group        byte   `cbor:"4,keyasint"`
	EventNumber1 byte   `cbor:"5,keyasint"`
	EventNumber2 byte   `cbor:"6,keyasint"`
	Partition    int    `cbor:"7,keyasint"`
	ModuleSerial []byte `cbor:"8,keyasint"`
	LabelType    byte   `cbor:"9,keyasint"`
	Label        string `cbor:"10,keyasint"`
}

const captureVersion = 1

// captureWriter appends live events to a CBOR capture file.
type captureWriter struct {
	f   *os.File
	enc *cbor.Encoder
}

func newCaptureWriter(path string) (*captureWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}
	return &captureWriter{f: f, enc: cbor.NewEncoder(f)}, nil
}

func (w *captureWriter) WriteEvent(ev mgsp.Event) error {
	raw := ev.Raw()
	rec := captureRecord{
		Version:      captureVersion,
		At:           raw.At.UnixNano(),
		Command:      raw.Command,
		Group:        byte(raw.Group),
		EventNumber1: raw.EventNumber1,
		EventNumber2: raw.EventNumber2,
		Partition:    raw.Partition,
		ModuleSerial: raw.ModuleSerial[:],
		LabelType:    raw.LabelType,
		Label:        raw.Label,
	}
	return w.enc.Encode(rec)
}

func (w *captureWriter) Close() error {
	return w.f.Close()
}

// readCapture decodes a capture file and reclassifies each record through
// the live-event decoder, so replay output matches what monitoring printed.
func readCapture(path string) ([]mgsp.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}
	defer f.Close()

	var events []mgsp.Event
	dec := cbor.NewDecoder(f)
	for i := 0; ; i++ {
		var rec captureRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return nil, fmt.Errorf("capture record %d: %w", i, err)
		}
		if rec.Version != captureVersion {
			return nil, fmt.Errorf("capture record %d: unsupported version %d", i, rec.Version)
		}

		live := mgsp.LiveEvent{
			Command:      rec.Command,
			Group:        mgsp.EventGroup(rec.Group),
			EventNumber1: rec.EventNumber1,
			EventNumber2: rec.EventNumber2,
			Partition:    rec.Partition,
			LabelType:    rec.LabelType,
			Label:        rec.Label,
			At:           time.Unix(0, rec.At),
		}
		copy(live.ModuleSerial[:], rec.ModuleSerial)

		frame, err := mgsp.EncodeEvent(live)
		if err != nil {
			return nil, fmt.Errorf("capture record %d: %w", i, err)
		}
		ev, err := mgsp.DecodeEvent(frame)
		if err != nil && !errors.Is(err, mgsp.ErrUnknownEventCode) {
			return nil, fmt.Errorf("capture record %d: %w", i, err)
		}
		// Restore the recorded timestamp; the decoder stamps decode time.
		ev = withRecordedTime(ev, live.At)
		events = append(events, ev)
	}
}

// withRecordedTime rewrites the event timestamp to the capture-time value.
func withRecordedTime(ev mgsp.Event, at time.Time) mgsp.Event {
	switch e := ev.(type) {
	case mgsp.ZoneStatusEvent:
		e.At = at
		return e
	case mgsp.PartitionStatusEvent:
		e.At = at
		return e
	case mgsp.BellStatusEvent:
		e.At = at
		return e
	case mgsp.ArmEvent:
		e.At = at
		return e
	case mgsp.DisarmEvent:
		e.At = at
		return e
	case mgsp.ZoneBypassEvent:
		e.At = at
		return e
	case mgsp.ZoneAlarmEvent:
		e.At = at
		return e
	case mgsp.TroubleEvent:
		e.At = at
		return e
	case mgsp.NonReportableEvent:
		e.At = at
		return e
	case mgsp.UnknownEvent:
		e.At = at
		return e
	}
	return ev
}
