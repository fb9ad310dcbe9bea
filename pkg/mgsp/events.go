// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"fmt"
	"strings"
	"time"
)

// EventGroup is the live-event category byte from the panel's documented
// event table.
type EventGroup byte

// Documented MG/SP live-event groups. Frames carrying a group outside this
// set decode to UnknownEvent; they are diagnostics, never stream failures.
const (
	EventGroupZoneOK           EventGroup = 0
	EventGroupZoneOpen         EventGroup = 1
	EventGroupPartitionStatus  EventGroup = 2
	EventGroupBellStatus       EventGroup = 3
	EventGroupNonReportable    EventGroup = 6
	EventGroupArmWithUser      EventGroup = 9
	EventGroupDisarmWithUser   EventGroup = 14
	EventGroupZoneBypassed     EventGroup = 23
	EventGroupZoneInAlarm      EventGroup = 24
	EventGroupZoneAlarmRestore EventGroup = 26
	EventGroupSystemTrouble    EventGroup = 36
)

// Partition status sub-codes (event number 1 within EventGroupPartitionStatus).
const (
	PartitionSteadyAlarm  = 2
	PartitionAlarmStopped = 5
	PartitionDisarmed     = 9
	PartitionArmed        = 10
	PartitionEntryDelay   = 11
	PartitionExitDelay    = 12
)

// LiveEvent is the raw decoded field view of a 0xE0-0xEF frame, shared by
// all typed variants.
type LiveEvent struct {
	Command      byte
	Group        EventGroup
	EventNumber1 byte
	EventNumber2 byte
	Partition    int
	ModuleSerial [4]byte
	LabelType    byte
	Label        string
	At           time.Time
}

// Event is a tagged variant decoded from an unsolicited panel frame. The
// set is closed: every variant the decoder can produce is defined in this
// file, so switches over the stream can be exhaustive.
type Event interface {
	Raw() LiveEvent
	String() string
}

// ZoneStatusEvent reports a zone transitioning between OK and open.
type ZoneStatusEvent struct {
	LiveEvent
	Zone int
	Open bool
}

// PartitionStatusEvent reports a partition state change.
type PartitionStatusEvent struct {
	LiveEvent
	Status byte
}

// BellStatusEvent reports siren/bell activity.
type BellStatusEvent struct {
	LiveEvent
	Status byte
}

// ArmEvent confirms an arming, with the user who armed.
type ArmEvent struct {
	LiveEvent
	User int
}

// DisarmEvent confirms a disarming, with the user who disarmed.
type DisarmEvent struct {
	LiveEvent
	User int
}

// ZoneBypassEvent reports a zone bypass toggle.
type ZoneBypassEvent struct {
	LiveEvent
	Zone int
}

// ZoneAlarmEvent reports a zone entering or restoring from alarm.
type ZoneAlarmEvent struct {
	LiveEvent
	Zone     int
	Restored bool
}

// TroubleEvent reports a system trouble condition.
type TroubleEvent struct {
	LiveEvent
	Trouble byte
}

// NonReportableEvent carries panel-internal events that are surfaced but
// not mapped further.
type NonReportableEvent struct {
	LiveEvent
}

// UnknownEvent preserves a frame whose event group is outside the
// documented table. The raw frame is kept for diagnostics so the
// monitoring stream can continue.
type UnknownEvent struct {
	LiveEvent
	Frame Frame
}

func (e LiveEvent) Raw() LiveEvent { return e }

func (e ZoneStatusEvent) String() string {
	state := "OK"
	if e.Open {
		state = "open"
	}
	return fmt.Sprintf("zone %d %s%s", e.Zone, state, labelSuffix(e.Label))
}

func (e PartitionStatusEvent) String() string {
	return fmt.Sprintf("partition %d %s", e.Partition, partitionStatusName(e.Status))
}

func (e BellStatusEvent) String() string {
	return fmt.Sprintf("bell status %d (partition %d)", e.Status, e.Partition)
}

func (e ArmEvent) String() string {
	return fmt.Sprintf("partition %d armed by user %d%s", e.Partition, e.User, labelSuffix(e.Label))
}

func (e DisarmEvent) String() string {
	return fmt.Sprintf("partition %d disarmed by user %d%s", e.Partition, e.User, labelSuffix(e.Label))
}

func (e ZoneBypassEvent) String() string {
	return fmt.Sprintf("zone %d bypass toggled%s", e.Zone, labelSuffix(e.Label))
}

func (e ZoneAlarmEvent) String() string {
	if e.Restored {
		return fmt.Sprintf("zone %d alarm restored%s", e.Zone, labelSuffix(e.Label))
	}
	return fmt.Sprintf("zone %d in alarm%s", e.Zone, labelSuffix(e.Label))
}

func (e TroubleEvent) String() string {
	return fmt.Sprintf("system trouble %d", e.Trouble)
}

func (e NonReportableEvent) String() string {
	return fmt.Sprintf("non-reportable event %d/%d", e.EventNumber1, e.EventNumber2)
}

func (e UnknownEvent) String() string {
	return fmt.Sprintf("undocumented event group %d (event %d/%d)", e.Group, e.EventNumber1, e.EventNumber2)
}

func partitionStatusName(status byte) string {
	switch status {
	case PartitionSteadyAlarm:
		return "steady alarm"
	case PartitionAlarmStopped:
		return "alarm stopped"
	case PartitionDisarmed:
		return "disarmed"
	case PartitionArmed:
		return "armed"
	case PartitionEntryDelay:
		return "entry delay"
	case PartitionExitDelay:
		return "exit delay"
	}
	return fmt.Sprintf("status %d", status)
}

func labelSuffix(label string) string {
	if label == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", label)
}

// DecodeEvent classifies a validated live-event frame (command 0xE0-0xEF)
// into its typed variant. It returns ErrUnknownEventCode alongside an
// UnknownEvent for undocumented groups; the event is still usable.
func DecodeEvent(f Frame) (Event, error) {
	if !f.IsEvent() {
		return nil, &ResponseError{Command: f.Command(), Expected: "live event (0xE0-0xEF)"}
	}

	raw := LiveEvent{
		Command:      f.Command(),
		Group:        EventGroup(f[offEventGroup]),
		EventNumber1: f[offEventNumber1],
		EventNumber2: f[offEventNumber2],
		Partition:    int(f[offEventPartition]),
		LabelType:    f[offEventLabelType],
		Label:        decodeLabel(f[offEventLabel : offEventLabel+eventLabelSize]),
		At:           time.Now(),
	}
	copy(raw.ModuleSerial[:], f[offEventModuleSerial : offEventModuleSerial+4])

	switch raw.Group {
	case EventGroupZoneOK:
		return ZoneStatusEvent{LiveEvent: raw, Zone: int(raw.EventNumber1), Open: false}, nil
	case EventGroupZoneOpen:
		return ZoneStatusEvent{LiveEvent: raw, Zone: int(raw.EventNumber1), Open: true}, nil
	case EventGroupPartitionStatus:
		return PartitionStatusEvent{LiveEvent: raw, Status: raw.EventNumber1}, nil
	case EventGroupBellStatus:
		return BellStatusEvent{LiveEvent: raw, Status: raw.EventNumber1}, nil
	case EventGroupNonReportable:
		return NonReportableEvent{LiveEvent: raw}, nil
	case EventGroupArmWithUser:
		return ArmEvent{LiveEvent: raw, User: int(raw.EventNumber1)}, nil
	case EventGroupDisarmWithUser:
		return DisarmEvent{LiveEvent: raw, User: int(raw.EventNumber1)}, nil
	case EventGroupZoneBypassed:
		return ZoneBypassEvent{LiveEvent: raw, Zone: int(raw.EventNumber1)}, nil
	case EventGroupZoneInAlarm:
		return ZoneAlarmEvent{LiveEvent: raw, Zone: int(raw.EventNumber1)}, nil
	case EventGroupZoneAlarmRestore:
		return ZoneAlarmEvent{LiveEvent: raw, Zone: int(raw.EventNumber1), Restored: true}, nil
	case EventGroupSystemTrouble:
		return TroubleEvent{LiveEvent: raw, Trouble: raw.EventNumber1}, nil
	}

	unknown := UnknownEvent{LiveEvent: raw, Frame: f}
	return unknown, fmt.Errorf("%w: group %d", ErrUnknownEventCode, raw.Group)
}

// EncodeEvent rebuilds the wire frame for a live event. The inverse of the
// raw-field extraction in DecodeEvent; capture replay uses it to feed
// recorded events back through the classifier.
func EncodeEvent(ev LiveEvent) (Frame, error) {
	if ev.Command < CmdLiveEventBase || ev.Command > CmdLiveEventBase+0x0F {
		return nil, fmt.Errorf("%w: command 0x%02X is not a live event", ErrEncoding, ev.Command)
	}
	if ev.Partition < 0 || ev.Partition > 0xFF {
		return nil, fmt.Errorf("%w: partition %d", ErrEncoding, ev.Partition)
	}
	if len(ev.Label) > eventLabelSize {
		return nil, fmt.Errorf("%w: label %q exceeds %d bytes", ErrEncoding, ev.Label, eventLabelSize)
	}
	f := NewFrame(ev.Command)
	f[offEventGroup] = byte(ev.Group)
	f[offEventNumber1] = ev.EventNumber1
	f[offEventNumber2] = ev.EventNumber2
	f[offEventPartition] = byte(ev.Partition)
	copy(f[offEventModuleSerial : offEventModuleSerial+4], ev.ModuleSerial[:])
	f[offEventLabelType] = ev.LabelType
	copy(f[offEventLabel : offEventLabel+eventLabelSize], ev.Label)
	return f.Finalize(), nil
}

// decodeLabel trims the fixed 16-byte ASCII label field.
func decodeLabel(raw []byte) string {
	clean := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b >= 0x20 && b < 0x7F {
			clean = append(clean, b)
		}
	}
	return strings.TrimSpace(string(clean))
}
