// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"encoding/binary"
	"fmt"
)

// Command is a logical panel operation. Variants build their own wire frame;
// argument validation happens here, before any bytes are sent, using the
// capacity limits derived from the panel identity.
type Command interface {
	// EncodeCommand builds the 37-byte request frame. info may be nil only
	// for the handshake request, which needs no negotiated identity.
	EncodeCommand(info *PanelInfo) (Frame, error)
}

// ArmMode selects the arming variant of a partition arm command.
type ArmMode byte

// Arming modes mapped to their PerformAction codes.
const (
	ArmAway        ArmMode = ActionArmAway
	ArmStay        ArmMode = ActionArmStay
	ArmSleep       ArmMode = ActionArmSleep
	ArmInstant     ArmMode = ActionArmInstant
	ArmStayInstant ArmMode = ActionArmStayInstant
)

// ParseArmMode maps a mode name to its ArmMode.
func ParseArmMode(s string) (ArmMode, error) {
	switch s {
	case "away", "arm":
		return ArmAway, nil
	case "stay":
		return ArmStay, nil
	case "sleep":
		return ArmSleep, nil
	case "instant":
		return ArmInstant, nil
	case "stay-instant":
		return ArmStayInstant, nil
	}
	return 0, fmt.Errorf("%w: arm mode %q", ErrUnknownOperation, s)
}

func (m ArmMode) String() string {
	switch m {
	case ArmAway:
		return "away"
	case ArmStay:
		return "stay"
	case ArmSleep:
		return "sleep"
	case ArmInstant:
		return "instant"
	case ArmStayInstant:
		return "stay-instant"
	}
	return fmt.Sprintf("unknown (0x%02X)", byte(m))
}

// InitiateCommunication is the handshake request (command 0x72).
type InitiateCommunication struct {
	UserID byte
}

func (c InitiateCommunication) EncodeCommand(_ *PanelInfo) (Frame, error) {
	f := NewFrame(CmdInitiateCommunication)
	f[UserIDOffset] = c.UserID
	return f.Finalize(), nil
}

// InitializeCommunication is the authentication request (command 0x00). It
// echoes the panel identity from the handshake and carries the PC password.
type InitializeCommunication struct {
	Password PCPassword
	SourceID SourceID
	UserID   byte
}

func (c InitializeCommunication) EncodeCommand(info *PanelInfo) (Frame, error) {
	if info == nil {
		return nil, fmt.Errorf("%w: authentication requires panel identity", ErrInvalidPhase)
	}
	f := NewFrame(CmdInitializeCommunication)
	f[offAuthProductID] = byte(info.ProductID)
	f[offAuthFirmware] = info.FirmwareVersion
	f[offAuthFirmware+1] = info.FirmwareRevision
	f[offAuthFirmware+2] = info.FirmwareMinor
	binary.BigEndian.PutUint16(f[offAuthPanelID:], info.PanelID)
	copy(f[offAuthPCPassword:], c.Password[:])
	f[offAuthSourceID] = byte(c.SourceID)
	f[offAuthUserID] = c.UserID
	f[UserIDOffset] = c.UserID
	return f.Finalize(), nil
}

// PerformAction is the raw action command (0x40). The typed Arm, Disarm and
// BypassZone variants validate their arguments and delegate here.
type PerformAction struct {
	Action   byte
	Argument byte
	SourceID SourceID
	UserID   byte
}

func (c PerformAction) EncodeCommand(_ *PanelInfo) (Frame, error) {
	switch c.Action {
	case ActionArmStay, ActionArmSleep, ActionArmAway, ActionDisarm,
		ActionArmStayInstant, ActionArmInstant, ActionBypassZone:
	default:
		return nil, fmt.Errorf("%w: action 0x%02X", ErrUnknownOperation, c.Action)
	}
	f := NewFrame(CmdPerformAction)
	f[offActionCode] = c.Action
	f[offActionArgument] = c.Argument
	f[offActionSourceID] = byte(c.SourceID)
	f[offActionUserID] = c.UserID
	f[UserIDOffset] = c.UserID
	return f.Finalize(), nil
}

// Arm arms a partition in the given mode.
type Arm struct {
	Partition int
	Mode      ArmMode
}

func (c Arm) EncodeCommand(info *PanelInfo) (Frame, error) {
	if err := checkPartition(info, c.Partition); err != nil {
		return nil, err
	}
	return PerformAction{
		Action:   byte(c.Mode),
		Argument: byte(c.Partition),
		SourceID: DefaultSourceID,
	}.EncodeCommand(info)
}

// Disarm disarms a partition.
type Disarm struct {
	Partition int
}

func (c Disarm) EncodeCommand(info *PanelInfo) (Frame, error) {
	if err := checkPartition(info, c.Partition); err != nil {
		return nil, err
	}
	return PerformAction{
		Action:   ActionDisarm,
		Argument: byte(c.Partition),
		SourceID: DefaultSourceID,
	}.EncodeCommand(info)
}

// BypassZone toggles the bypass state of a zone.
type BypassZone struct {
	Zone int
}

func (c BypassZone) EncodeCommand(info *PanelInfo) (Frame, error) {
	if err := checkZone(info, c.Zone); err != nil {
		return nil, err
	}
	return PerformAction{
		Action:   ActionBypassZone,
		Argument: byte(c.Zone),
		SourceID: DefaultSourceID,
	}.EncodeCommand(info)
}

// ReadEEPROM reads one page of panel memory. Paging is caller-driven: one
// request frame per command, no implicit continuation.
type ReadEEPROM struct {
	Address  uint16
	Records  int
	SourceID SourceID
	UserID   byte
}

func (c ReadEEPROM) EncodeCommand(_ *PanelInfo) (Frame, error) {
	if c.Records < 1 || c.Records > 255 {
		return nil, fmt.Errorf("%w: record count %d", ErrArgumentOutOfRange, c.Records)
	}
	f := NewFrame(CmdReadEEPROM)
	binary.BigEndian.PutUint16(f[offEEPROMAddress:], c.Address)
	f[offEEPROMRecords] = byte(c.Records)
	f[offActionSourceID] = byte(c.SourceID)
	f[offActionUserID] = c.UserID
	f[UserIDOffset] = c.UserID
	return f.Finalize(), nil
}

func checkPartition(info *PanelInfo, partition int) error {
	max := DefaultMaxPartitions
	if info != nil {
		max = info.MaxPartitions()
	}
	if partition < 1 || partition > max {
		return fmt.Errorf("%w: partition %d (panel supports 1-%d)", ErrArgumentOutOfRange, partition, max)
	}
	return nil
}

func checkZone(info *PanelInfo, zone int) error {
	max := DefaultMaxZones
	if info != nil {
		max = info.MaxZones()
	}
	if zone < 1 || zone > max {
		return fmt.Errorf("%w: zone %d (panel supports 1-%d)", ErrArgumentOutOfRange, zone, max)
	}
	return nil
}

// ActionResult is the decoded outcome of a PerformAction exchange, taken
// from the response command byte (0x40-0x4F).
type ActionResult struct {
	Code byte
}

// Success reports whether the panel accepted the action.
func (r ActionResult) Success() bool { return r.Code == ResultSuccess }

func (r ActionResult) String() string {
	switch r.Code {
	case ResultSuccess:
		return "success"
	case ResultFail:
		return "fail"
	case ResultInvalidArgument:
		return "invalid argument"
	case ResultUserCodeRequired:
		return "user code required"
	}
	return fmt.Sprintf("unknown (0x%02X)", r.Code)
}

// EEPROMPage is one decoded ReadEEPROM response.
type EEPROMPage struct {
	Address uint16
	Records int
	Data    []byte // EEPROMDataSize bytes
}

// decodeEEPROMPage extracts the page fields from a validated 0x5X frame.
func decodeEEPROMPage(f Frame) EEPROMPage {
	data := make([]byte, EEPROMDataSize)
	copy(data, f[offEEPROMData : offEEPROMData+EEPROMDataSize])
	return EEPROMPage{
		Address: binary.BigEndian.Uint16(f[offEEPROMAddress:]),
		Records: int(f[offEEPROMRecords]),
		Data:    data,
	}
}
