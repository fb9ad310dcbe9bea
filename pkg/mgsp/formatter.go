// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"fmt"
	"strings"
)

// CommandName returns a human-readable name for a command byte.
func CommandName(command byte) string {
	switch {
	case command == CmdInitiateCommunication:
		return "INITIATE_COMMUNICATION"
	case command == CmdInitializeCommunication:
		return "INITIALIZE_COMMUNICATION"
	case command == CmdAuthSuccess:
		return "AUTH_SUCCESS"
	case command == CmdAuthFailure:
		return "AUTH_FAILURE"
	case command >= CmdPerformAction && command <= CmdPerformAction+0x0F:
		return "PERFORM_ACTION"
	case command >= CmdReadEEPROM && command <= CmdReadEEPROM+0x0F:
		return "READ_EEPROM"
	case command >= CmdLiveEventBase && command <= CmdLiveEventBase+0x0F:
		return "LIVE_EVENT"
	}
	return fmt.Sprintf("UNKNOWN_0x%02X", command)
}

// FormatFrame renders a frame header line plus hex dump for log output.
func FormatFrame(f Frame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] cmd=0x%02X user=%d checksum=0x%02X\n",
		CommandName(f.Command()), f.Command(), f.UserID(), f.Checksum())
	sb.WriteString(HexDump(f))
	return sb.String()
}

// FormatEvent renders one event stream line with timestamp.
func FormatEvent(ev Event) string {
	raw := ev.Raw()
	return fmt.Sprintf("%s  [group %2d]  %s",
		raw.At.Format("15:04:05.000"), raw.Group, ev.String())
}

// HexDump renders bytes as a classic offset / hex / ASCII dump,
// 16 bytes per line.
func HexDump(data []byte) string {
	const perLine = 16
	var sb strings.Builder
	for i := 0; i < len(data); i += perLine {
		chunk := data[i:]
		if len(chunk) > perLine {
			chunk = chunk[:perLine]
		}

		fmt.Fprintf(&sb, "%04X  ", i)
		for j := 0; j < perLine; j++ {
			if j < len(chunk) {
				fmt.Fprintf(&sb, "%02X ", chunk[j])
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString(" ")
		for _, b := range chunk {
			if b >= 0x20 && b < 0x7F {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
