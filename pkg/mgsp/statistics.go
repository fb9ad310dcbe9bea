// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"fmt"
	"time"
)

// Statistics tracks frame and event counters for one session.
type Statistics struct {
	StartTime time.Time

	FramesSent     uint64
	FramesReceived uint64
	ChecksumErrors uint64

	Events          uint64
	ZoneEvents      uint64
	PartitionEvents uint64
	AlarmEvents     uint64
	TroubleEvents   uint64
	UnknownEvents   uint64
}

// NewStatistics creates a statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{StartTime: time.Now()}
}

// CountEvent updates the per-category event counters.
func (s *Statistics) CountEvent(ev Event) {
	s.Events++
	switch ev.(type) {
	case ZoneStatusEvent, ZoneBypassEvent:
		s.ZoneEvents++
	case PartitionStatusEvent, ArmEvent, DisarmEvent:
		s.PartitionEvents++
	case ZoneAlarmEvent, BellStatusEvent:
		s.AlarmEvents++
	case TroubleEvent:
		s.TroubleEvents++
	}
}

// FrameRate returns received frames per second since the session started.
func (s *Statistics) FrameRate() float64 {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.FramesReceived) / elapsed
}

// String returns a formatted summary.
func (s *Statistics) String() string {
	elapsed := time.Since(s.StartTime)
	out := fmt.Sprintf("=== Session statistics (%.0f seconds) ===\n", elapsed.Seconds())
	out += fmt.Sprintf("Frames sent:      %8d\n", s.FramesSent)
	out += fmt.Sprintf("Frames received:  %8d\n", s.FramesReceived)
	if s.ChecksumErrors > 0 {
		out += fmt.Sprintf("Checksum errors:  %8d\n", s.ChecksumErrors)
	}
	out += fmt.Sprintf("Events:           %8d\n", s.Events)
	if s.ZoneEvents > 0 {
		out += fmt.Sprintf("  Zone:           %8d\n", s.ZoneEvents)
	}
	if s.PartitionEvents > 0 {
		out += fmt.Sprintf("  Partition:      %8d\n", s.PartitionEvents)
	}
	if s.AlarmEvents > 0 {
		out += fmt.Sprintf("  Alarm/bell:     %8d\n", s.AlarmEvents)
	}
	if s.TroubleEvents > 0 {
		out += fmt.Sprintf("  Trouble:        %8d\n", s.TroubleEvents)
	}
	if s.UnknownEvents > 0 {
		out += fmt.Sprintf("  Undocumented:   %8d\n", s.UnknownEvents)
	}
	out += fmt.Sprintf("Frame rate:       %8.1f frames/sec\n", s.FrameRate())
	return out
}

// Reset clears all counters and restarts the clock.
func (s *Statistics) Reset() {
	*s = Statistics{StartTime: time.Now()}
}
