// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// PanelInfo is the immutable identity snapshot captured from the handshake
// response. It is created once per successful handshake and read-only
// thereafter.
type PanelInfo struct {
	ProductID        ProductID
	FirmwareVersion  byte
	FirmwareRevision byte
	FirmwareMinor    byte
	PanelID          uint16
	PCPasswordEcho   [2]byte // password bytes echoed by the panel
	ModemSpeed       byte
	SourceID         SourceID
}

// parsePanelInfo extracts panel identity from a validated 0x72 response.
func parsePanelInfo(f Frame) *PanelInfo {
	info := &PanelInfo{
		ProductID:        ProductID(f[offRespProductID]),
		FirmwareVersion:  f[offRespFirmware],
		FirmwareRevision: f[offRespFirmware+1],
		FirmwareMinor:    f[offRespFirmware+2],
		PanelID:          binary.BigEndian.Uint16(f[offRespPanelID:]),
		ModemSpeed:       f[offRespModemSpeed],
		SourceID:         SourceID(f[offRespSourceID]),
	}
	copy(info.PCPasswordEcho[:], f[offRespPCPassword : offRespPCPassword+2])
	return info
}

// Firmware returns the firmware version as a dotted string, e.g. "4.72.1".
func (p *PanelInfo) Firmware() string {
	return fmt.Sprintf("%d.%d.%d", p.FirmwareVersion, p.FirmwareRevision, p.FirmwareMinor)
}

// MaxPartitions returns the partition capacity for the panel model.
func (p *PanelInfo) MaxPartitions() int {
	switch p.ProductID {
	case ProductMagellanMG5000, ProductMagellanMG5050, ProductSpectraSP4000,
		ProductSpectraSP5500, ProductSpectraSP6000, ProductSpectraSP7000,
		ProductSpectraSP65:
		return mgspMaxPartitions
	}
	return DefaultMaxPartitions
}

// MaxZones returns the zone capacity for the panel model.
func (p *PanelInfo) MaxZones() int {
	switch p.ProductID {
	case ProductMagellanMG5000, ProductMagellanMG5050, ProductSpectraSP4000,
		ProductSpectraSP5500, ProductSpectraSP6000, ProductSpectraSP7000,
		ProductSpectraSP65:
		return mgspMaxZones
	}
	return DefaultMaxZones
}

// String implements fmt.Stringer for the product-id byte.
func (p ProductID) String() string {
	switch p {
	case ProductMagellanMG5000:
		return "Magellan MG5000"
	case ProductMagellanMG5050:
		return "Magellan MG5050"
	case ProductSpectraSP4000:
		return "Spectra SP4000"
	case ProductSpectraSP5500:
		return "Spectra SP5500"
	case ProductSpectraSP6000:
		return "Spectra SP6000"
	case ProductSpectraSP7000:
		return "Spectra SP7000"
	case ProductSpectraSP65:
		return "Spectra SP65"
	}
	return fmt.Sprintf("unknown (0x%02X)", byte(p))
}

// PCPassword is the 2-byte credential derived from a 4-hex-digit PC
// password. It is used only during authentication and never persisted.
type PCPassword [2]byte

// EncodePassword converts a 4-hex-digit credential to its wire form.
func EncodePassword(s string) (PCPassword, error) {
	var pw PCPassword
	if len(s) != 4 {
		return pw, ErrInvalidPassword
	}
	raw, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return pw, fmt.Errorf("%w: %q", ErrInvalidPassword, s)
	}
	copy(pw[:], raw)
	return pw, nil
}
