// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"errors"
	"fmt"
)

// Sentinel errors for the protocol engine. Structured errors below wrap
// these so callers can match with errors.Is.
var (
	ErrFraming                = errors.New("mgsp: frame is not 37 bytes")
	ErrChecksum               = errors.New("mgsp: checksum mismatch")
	ErrEncoding               = errors.New("mgsp: payload exceeds frame body")
	ErrHandshakeTimeout       = errors.New("mgsp: handshake timed out")
	ErrAuthenticationRejected = errors.New("mgsp: PC password rejected by panel")
	ErrProtocolViolation      = errors.New("mgsp: unexpected response from panel")
	ErrUnknownOperation       = errors.New("mgsp: unknown operation")
	ErrArgumentOutOfRange     = errors.New("mgsp: argument out of range")
	ErrUnknownEventCode       = errors.New("mgsp: undocumented event code")
	ErrReadTimeout            = errors.New("mgsp: read timed out")
	ErrSessionClosed          = errors.New("mgsp: session closed")
	ErrInvalidPhase           = errors.New("mgsp: operation not valid in current phase")
	ErrInvalidPassword        = errors.New("mgsp: PC password must be 4 hex digits")
)

// ChecksumError reports an integrity failure on a received frame. It is
// recoverable: the decoder resynchronizes by sliding the frame window.
type ChecksumError struct {
	Got  byte
	Want byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("mgsp: checksum mismatch: got 0x%02X, want 0x%02X", e.Got, e.Want)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksum }

// ResponseError reports a frame whose command byte does not pair with the
// outstanding request. Fatal for the operation, not for the session.
type ResponseError struct {
	Command  byte
	Expected string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("mgsp: unexpected command 0x%02X while awaiting %s", e.Command, e.Expected)
}

func (e *ResponseError) Unwrap() error { return ErrProtocolViolation }
