// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"errors"
	"testing"
)

// mg5050 is a representative MG/SP panel identity for catalog tests:
// 2 partitions, 32 zones.
var mg5050 = &PanelInfo{
	ProductID:        ProductMagellanMG5050,
	FirmwareVersion:  4,
	FirmwareRevision: 72,
	FirmwareMinor:    1,
	PanelID:          0x1234,
}

func TestPerformActionLayouts(t *testing.T) {
	tests := []struct {
		name       string
		cmd        Command
		wantAction byte
		wantArg    byte
	}{
		{"arm away partition 1", Arm{Partition: 1, Mode: ArmAway}, 0x04, 1},
		{"arm stay partition 2", Arm{Partition: 2, Mode: ArmStay}, 0x01, 2},
		{"arm sleep partition 1", Arm{Partition: 1, Mode: ArmSleep}, 0x02, 1},
		{"arm instant partition 1", Arm{Partition: 1, Mode: ArmInstant}, 0x07, 1},
		{"arm stay instant partition 2", Arm{Partition: 2, Mode: ArmStayInstant}, 0x06, 2},
		{"disarm partition 1", Disarm{Partition: 1}, 0x05, 1},
		{"bypass zone 5", BypassZone{Zone: 5}, 0x10, 5},
		{"bypass zone 32", BypassZone{Zone: 32}, 0x10, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.cmd.EncodeCommand(mg5050)
			if err != nil {
				t.Fatalf("EncodeCommand failed: %v", err)
			}
			if f.Command() != CmdPerformAction {
				t.Errorf("command = 0x%02X, want 0x40", f.Command())
			}
			if f[offActionCode] != tt.wantAction {
				t.Errorf("action byte = 0x%02X, want 0x%02X", f[offActionCode], tt.wantAction)
			}
			if f[offActionArgument] != tt.wantArg {
				t.Errorf("argument byte = %d, want %d", f[offActionArgument], tt.wantArg)
			}
			if f.Checksum() != Checksum(f[:ChecksumOffset]) {
				t.Error("checksum not finalized")
			}
		})
	}
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
	}{
		{"partition zero", Arm{Partition: 0, Mode: ArmAway}},
		{"partition above capacity", Arm{Partition: 3, Mode: ArmAway}},
		{"disarm partition above capacity", Disarm{Partition: 9}},
		{"zone zero", BypassZone{Zone: 0}},
		{"zone above capacity", BypassZone{Zone: 33}},
		{"eeprom zero records", ReadEEPROM{Address: 0, Records: 0}},
		{"eeprom record overflow", ReadEEPROM{Address: 0, Records: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cmd.EncodeCommand(mg5050); !errors.Is(err, ErrArgumentOutOfRange) {
				t.Errorf("err = %v, want ErrArgumentOutOfRange", err)
			}
		})
	}
}

func TestUnknownActionRejected(t *testing.T) {
	_, err := PerformAction{Action: 0x77, Argument: 1}.EncodeCommand(mg5050)
	if !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("err = %v, want ErrUnknownOperation", err)
	}
}

func TestCapacityFollowsPanelModel(t *testing.T) {
	// An unknown product id gets the permissive Digiplex bounds instead of
	// the MG/SP ones; validation derives from PanelInfo, never a constant
	// at the call site.
	big := &PanelInfo{ProductID: ProductID(0x7F)}
	if _, err := (Arm{Partition: 8, Mode: ArmAway}).EncodeCommand(big); err != nil {
		t.Errorf("partition 8 on large panel rejected: %v", err)
	}
	if _, err := (BypassZone{Zone: 192}).EncodeCommand(big); err != nil {
		t.Errorf("zone 192 on large panel rejected: %v", err)
	}
	if _, err := (BypassZone{Zone: 193}).EncodeCommand(big); !errors.Is(err, ErrArgumentOutOfRange) {
		t.Errorf("zone 193 accepted beyond default capacity")
	}
}

func TestInitiateCommunicationLayout(t *testing.T) {
	f, err := InitiateCommunication{UserID: 0x00}.EncodeCommand(nil)
	if err != nil {
		t.Fatalf("EncodeCommand failed: %v", err)
	}
	if f.Command() != 0x72 {
		t.Errorf("command = 0x%02X, want 0x72", f.Command())
	}
	if f.Checksum() != 0x72 {
		// All other bytes are zero, so the checksum equals the command byte.
		t.Errorf("checksum = 0x%02X, want 0x72", f.Checksum())
	}
}

func TestInitializeCommunicationLayout(t *testing.T) {
	pw, err := EncodePassword("abcd")
	if err != nil {
		t.Fatalf("EncodePassword failed: %v", err)
	}
	f, err := InitializeCommunication{
		Password: pw,
		SourceID: SourcePanelApp,
	}.EncodeCommand(mg5050)
	if err != nil {
		t.Fatalf("EncodeCommand failed: %v", err)
	}

	if f.Command() != 0x00 {
		t.Errorf("command = 0x%02X, want 0x00", f.Command())
	}
	if f[offAuthProductID] != byte(ProductMagellanMG5050) {
		t.Errorf("product id = %d, want %d", f[offAuthProductID], ProductMagellanMG5050)
	}
	if f[offAuthFirmware] != 4 || f[offAuthFirmware+1] != 72 || f[offAuthFirmware+2] != 1 {
		t.Error("firmware triple not echoed")
	}
	if f[offAuthPanelID] != 0x12 || f[offAuthPanelID+1] != 0x34 {
		t.Error("panel id not big-endian encoded")
	}
	if f[offAuthPCPassword] != 0xAB || f[offAuthPCPassword+1] != 0xCD {
		t.Errorf("password bytes = %02X %02X, want AB CD", f[offAuthPCPassword], f[offAuthPCPassword+1])
	}
	if f[offAuthSourceID] != byte(SourcePanelApp) {
		t.Errorf("source id = %d, want %d", f[offAuthSourceID], SourcePanelApp)
	}
}

func TestInitializeCommunicationRequiresIdentity(t *testing.T) {
	_, err := InitializeCommunication{}.EncodeCommand(nil)
	if err == nil {
		t.Error("expected error without panel identity")
	}
}

func TestReadEEPROMLayout(t *testing.T) {
	f, err := ReadEEPROM{Address: 0x0120, Records: 2, SourceID: SourcePanelApp}.EncodeCommand(mg5050)
	if err != nil {
		t.Fatalf("EncodeCommand failed: %v", err)
	}
	if f.Command() != 0x50 {
		t.Errorf("command = 0x%02X, want 0x50", f.Command())
	}
	if f[offEEPROMAddress] != 0x01 || f[offEEPROMAddress+1] != 0x20 {
		t.Error("address not big-endian encoded")
	}
	if f[offEEPROMRecords] != 2 {
		t.Errorf("records = %d, want 2", f[offEEPROMRecords])
	}
}

func TestEncodePassword(t *testing.T) {
	tests := []struct {
		in      string
		want    PCPassword
		wantErr bool
	}{
		{"0000", PCPassword{0x00, 0x00}, false},
		{"1234", PCPassword{0x12, 0x34}, false},
		{"abcd", PCPassword{0xAB, 0xCD}, false},
		{"ABCD", PCPassword{0xAB, 0xCD}, false},
		{"123", PCPassword{}, true},
		{"12345", PCPassword{}, true},
		{"12xz", PCPassword{}, true},
		{"", PCPassword{}, true},
	}

	for _, tt := range tests {
		got, err := EncodePassword(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPassword) {
				t.Errorf("EncodePassword(%q) err = %v, want ErrInvalidPassword", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("EncodePassword(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EncodePassword(%q) = % X, want % X", tt.in, got[:], tt.want[:])
		}
	}
}

func TestParseArmMode(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want ArmMode
	}{
		{"away", ArmAway},
		{"arm", ArmAway},
		{"stay", ArmStay},
		{"sleep", ArmSleep},
		{"instant", ArmInstant},
		{"stay-instant", ArmStayInstant},
	} {
		got, err := ParseArmMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseArmMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseArmMode("backwards"); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("ParseArmMode(backwards) err = %v, want ErrUnknownOperation", err)
	}
}
