// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

// Package mgsp provides a Go implementation of the Paradox MG/SP/Digiplex
// serial protocol (pre-7.50 firmware, unencrypted variant).
//
// The protocol runs over an 8N1 serial link at 9600 bps. Every message is a
// fixed 37-byte frame terminated by a modulo-256 checksum. This package
// provides frame encoding/decoding, the command catalog (arm/disarm/bypass/
// EEPROM reads), the live-event decoder, and the session state machine that
// drives handshake, authentication and command exchange.
package mgsp

// Frame geometry
const (
	FrameLength    = 37 // every message on the wire
	ChecksumOffset = 36 // sum(bytes[0..35]) mod 256
	UserIDOffset   = 35
	MaxPayloadSize = 34 // body positions 1..34
)

// Command bytes
const (
	CmdInitiateCommunication   = 0x72 // handshake request and response
	CmdInitializeCommunication = 0x00 // authentication request
	CmdAuthSuccess             = 0x10
	CmdAuthFailure             = 0x70 // wrong PC password
	CmdPerformAction           = 0x40 // responses occupy 0x40-0x4F
	CmdReadEEPROM              = 0x50 // responses occupy 0x50-0x5F
	CmdLiveEventBase           = 0xE0 // unsolicited events occupy 0xE0-0xEF
)

// HandshakeResponseMarker follows the command byte in the 0x72 response.
const HandshakeResponseMarker = 0xFF

// Field offsets in the handshake response (InitiateCommunicationResponse).
const (
	offRespProductID  = 6
	offRespFirmware   = 7 // version, revision, minor
	offRespPanelID    = 10
	offRespPCPassword = 12
	offRespModemSpeed = 14
	offRespSourceID   = 29
	offRespUserID     = 30
)

// Field offsets in the authentication request (InitializeCommunication).
const (
	offAuthProductID  = 1
	offAuthFirmware   = 2
	offAuthPanelID    = 5
	offAuthPCPassword = 7
	offAuthSourceID   = 12
	offAuthUserID     = 13
)

// Field offsets in PerformAction requests.
const (
	offActionCode     = 4
	offActionArgument = 5
	offActionSourceID = 33
	offActionUserID   = 34
)

// Field offsets in ReadEEPROM requests and responses.
const (
	offEEPROMAddress = 2 // big-endian uint16
	offEEPROMRecords = 4
	offEEPROMData    = 5 // response data, 27 bytes
	EEPROMDataSize   = 27
)

// Field offsets in live-event frames.
const (
	offEventGroup        = 2
	offEventNumber1      = 3
	offEventNumber2      = 4
	offEventPartition    = 5
	offEventModuleSerial = 6 // 4 bytes
	offEventLabelType    = 10
	offEventLabel        = 11 // 16 ASCII bytes, NUL padded
	eventLabelSize       = 16
)

// SourceID identifies the PC-side application to the panel.
type SourceID byte

// Known source identities (CommunicationSourceID in the panel docs).
const (
	SourceBootLoader SourceID = 0
	SourcePanelApp   SourceID = 1
	SourceNEware     SourceID = 2
	SourceIP100      SourceID = 4
	SourceWinload    SourceID = 5
	SourceWinloadApp SourceID = 6
)

// Action codes carried in PerformAction frames.
const (
	ActionArmStay        = 0x01
	ActionArmSleep       = 0x02
	ActionArmAway        = 0x04
	ActionDisarm         = 0x05
	ActionArmStayInstant = 0x06
	ActionArmInstant     = 0x07
	ActionBypassZone     = 0x10 // same code toggles bypass off
)

// PerformAction response sub-codes (low nibble of the response command).
const (
	ResultSuccess          = 0x40
	ResultFail             = 0x41
	ResultInvalidArgument  = 0x42
	ResultUserCodeRequired = 0x43
)

// ProductID identifies the panel model reported during the handshake.
type ProductID byte

// Panel models from the handshake product-id byte. The MG/SP and Digiplex
// families reuse some values; pre-7.50 serial panels are MG/SP.
const (
	ProductSpectraSP4000  ProductID = 5
	ProductSpectraSP5500  ProductID = 21
	ProductSpectraSP6000  ProductID = 22
	ProductSpectraSP7000  ProductID = 23
	ProductSpectraSP65    ProductID = 24
	ProductMagellanMG5000 ProductID = 2
	ProductMagellanMG5050 ProductID = 4
)

// Capacity bounds used for argument validation. Unknown models fall back to
// the largest documented Digiplex capacity so no legal command is rejected.
const (
	DefaultMaxZones      = 192
	DefaultMaxPartitions = 8
	mgspMaxZones         = 32
	mgspMaxPartitions    = 2
)

// Session tuning defaults.
const (
	DefaultReadTimeoutMs    = 5000
	DefaultHandshakeRetries = 3
	DefaultUserID           = 0x00
	DefaultSourceID         = SourcePanelApp
)
