// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 OpenParadox Project

package mgsp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Channel is the duplex byte stream to the panel. Transports must bound
// their reads: Read should return within a short interval even when no
// bytes arrived, yielding (0, nil), so the session can honor deadlines and
// cancellation between reads. Serial ports do this with a read timeout;
// test doubles script it directly.
type Channel interface {
	io.ReadWriteCloser
}

// Phase is the session state machine position.
type Phase int

// Session phases. Failed is terminal and reachable from any non-terminal
// phase; Closed is terminal and reachable from every phase.
const (
	PhaseDisconnected Phase = iota
	PhaseHandshaking
	PhaseAuthenticating
	PhaseReady
	PhaseMonitoring
	PhaseClosed
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseDisconnected:
		return "disconnected"
	case PhaseHandshaking:
		return "handshaking"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseReady:
		return "ready"
	case PhaseMonitoring:
		return "monitoring"
	case PhaseClosed:
		return "closed"
	case PhaseFailed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Options tune session behavior. The zero value selects the defaults.
type Options struct {
	// ReadTimeout bounds the wait for one complete response frame.
	// Expiry fails the operation, not the session.
	ReadTimeout time.Duration
	// HandshakeRetries is the number of InitiateCommunication attempts
	// before the session fails with ErrHandshakeTimeout.
	HandshakeRetries int
	// SourceID and UserID are stamped into outgoing frames.
	SourceID SourceID
	UserID   byte
	// Logger traces frames and state transitions. Defaults to a
	// disabled logger.
	Logger *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = DefaultReadTimeoutMs * time.Millisecond
	}
	if o.HandshakeRetries <= 0 {
		o.HandshakeRetries = DefaultHandshakeRetries
	}
	if o.SourceID == 0 {
		o.SourceID = DefaultSourceID
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// Session drives one connection to a panel through handshake,
// authentication and the command/monitor phases. It owns the channel for
// the lifetime of the connection and permits exactly one in-flight request;
// it is not safe for concurrent use from multiple goroutines.
type Session struct {
	ch    Channel
	opts  Options
	log   zerolog.Logger
	dec   *Decoder
	stats *Statistics

	phase   Phase
	info    *PanelInfo
	failure error

	rx      []byte  // bytes read but not yet fed to the decoder
	pending []Event // events received while awaiting a response
}

// NewSession wraps an open channel. The session starts Disconnected; call
// Connect to run the handshake.
func NewSession(ch Channel, opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		ch:    ch,
		opts:  opts,
		log:   *opts.Logger,
		dec:   NewDecoder(),
		stats: NewStatistics(),
		phase: PhaseDisconnected,
	}
}

// Phase returns the current state machine position.
func (s *Session) Phase() Phase { return s.phase }

// PanelInfo returns the identity captured by Connect, or nil before a
// successful handshake.
func (s *Session) PanelInfo() *PanelInfo { return s.info }

// Stats returns the session's frame and event counters.
func (s *Session) Stats() *Statistics { return s.stats }

// Err returns the terminal failure when the session is in PhaseFailed.
func (s *Session) Err() error { return s.failure }

// Connect runs the InitiateCommunication handshake (0x72). Timeouts and
// malformed frames are retried up to HandshakeRetries times; exhaustion
// fails the session with ErrHandshakeTimeout. On success the session moves
// to Authenticating and the panel identity snapshot is available.
func (s *Session) Connect(ctx context.Context) (*PanelInfo, error) {
	if s.phase != PhaseDisconnected {
		return nil, fmt.Errorf("%w: connect in %s", ErrInvalidPhase, s.phase)
	}
	s.setPhase(PhaseHandshaking)

	req, err := InitiateCommunication{UserID: s.opts.UserID}.EncodeCommand(nil)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= s.opts.HandshakeRetries; attempt++ {
		if err := s.writeFrame(req); err != nil {
			return nil, s.fail(err)
		}
		resp, err := s.awaitResponse(ctx, "handshake response (0x72)", func(f Frame) bool {
			return f.Command() == CmdInitiateCommunication && f[1] == HandshakeResponseMarker
		})
		if err == nil {
			s.info = parsePanelInfo(resp)
			s.setPhase(PhaseAuthenticating)
			s.log.Debug().
				Str("product", s.info.ProductID.String()).
				Str("firmware", s.info.Firmware()).
				Uint16("panel_id", s.info.PanelID).
				Msg("handshake complete")
			return s.info, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		lastErr = err
		s.log.Warn().Err(err).Int("attempt", attempt).Msg("handshake attempt failed")
	}
	return nil, s.fail(fmt.Errorf("%w after %d attempts: %v", ErrHandshakeTimeout, s.opts.HandshakeRetries, lastErr))
}

// Authenticate sends InitializeCommunication (0x00) with the 2-byte PC
// password derived from the 4-hex-digit credential. A 0x70 response is
// fatal and never retried here: repeated wrong-password attempts can lock
// the panel, so the rejection is surfaced verbatim.
func (s *Session) Authenticate(ctx context.Context, password string) error {
	if s.phase != PhaseAuthenticating {
		return fmt.Errorf("%w: authenticate in %s", ErrInvalidPhase, s.phase)
	}
	pw, err := EncodePassword(password)
	if err != nil {
		return err
	}
	req, err := InitializeCommunication{
		Password: pw,
		SourceID: s.opts.SourceID,
		UserID:   s.opts.UserID,
	}.EncodeCommand(s.info)
	if err != nil {
		return err
	}
	if err := s.writeFrame(req); err != nil {
		return s.fail(err)
	}

	resp, err := s.awaitResponse(ctx, "authentication result (0x10/0x70)", func(f Frame) bool {
		return f.Command() == CmdAuthSuccess || f.Command() == CmdAuthFailure
	})
	if err != nil {
		return s.fail(fmt.Errorf("%w: %v", ErrProtocolViolation, err))
	}
	switch resp.Command() {
	case CmdAuthSuccess:
		s.setPhase(PhaseReady)
		return nil
	case CmdAuthFailure:
		return s.fail(ErrAuthenticationRejected)
	}
	return s.fail(&ResponseError{Command: resp.Command(), Expected: "authentication result"})
}

// PerformAction sends a 0x40 action frame built from the command catalog
// and awaits the 0x40-0x4F result. Valid in Ready and Monitoring; a
// protocol violation fails the operation but leaves the session usable.
func (s *Session) PerformAction(ctx context.Context, cmd Command) (ActionResult, error) {
	if err := s.requireReady("perform action"); err != nil {
		return ActionResult{}, err
	}
	req, err := cmd.EncodeCommand(s.info)
	if err != nil {
		return ActionResult{}, err
	}
	if req.Command() != CmdPerformAction {
		return ActionResult{}, fmt.Errorf("%w: not an action command", ErrUnknownOperation)
	}
	if err := s.writeFrame(req); err != nil {
		return ActionResult{}, err
	}
	resp, err := s.awaitResponse(ctx, "action result (0x40-0x4F)", func(f Frame) bool {
		return f.InResponseRange(CmdPerformAction)
	})
	if err != nil {
		return ActionResult{}, err
	}
	res := ActionResult{Code: resp.Command()}
	s.log.Debug().Str("result", res.String()).Msg("action completed")
	return res, nil
}

// Arm arms a partition in the given mode.
func (s *Session) Arm(ctx context.Context, partition int, mode ArmMode) (ActionResult, error) {
	return s.PerformAction(ctx, Arm{Partition: partition, Mode: mode})
}

// Disarm disarms a partition.
func (s *Session) Disarm(ctx context.Context, partition int) (ActionResult, error) {
	return s.PerformAction(ctx, Disarm{Partition: partition})
}

// BypassZone toggles the bypass state of a zone.
func (s *Session) BypassZone(ctx context.Context, zone int) (ActionResult, error) {
	return s.PerformAction(ctx, BypassZone{Zone: zone})
}

// ReadEEPROM executes exactly one page read (0x50) and returns the decoded
// page. Paging across addresses is the caller's loop; no implicit
// continuation happens here.
func (s *Session) ReadEEPROM(ctx context.Context, address uint16, records int) (EEPROMPage, error) {
	if err := s.requireReady("read EEPROM"); err != nil {
		return EEPROMPage{}, err
	}
	req, err := ReadEEPROM{
		Address:  address,
		Records:  records,
		SourceID: s.opts.SourceID,
		UserID:   s.opts.UserID,
	}.EncodeCommand(s.info)
	if err != nil {
		return EEPROMPage{}, err
	}
	if err := s.writeFrame(req); err != nil {
		return EEPROMPage{}, err
	}
	resp, err := s.awaitResponse(ctx, "EEPROM page (0x50-0x5F)", func(f Frame) bool {
		return f.InResponseRange(CmdReadEEPROM)
	})
	if err != nil {
		return EEPROMPage{}, err
	}
	return decodeEEPROMPage(resp), nil
}

// BeginMonitoring switches the read side into event classification mode.
// Commands may still be issued while monitoring; the transition is a mode
// switch, not a lock.
func (s *Session) BeginMonitoring() error {
	if s.phase != PhaseReady {
		return fmt.Errorf("%w: begin monitoring in %s", ErrInvalidPhase, s.phase)
	}
	s.setPhase(PhaseMonitoring)
	return nil
}

// EndMonitoring returns to Ready. Events already decoded remain queued and
// drain through NextEvent on the next monitoring span.
func (s *Session) EndMonitoring() error {
	if s.phase != PhaseMonitoring {
		return fmt.Errorf("%w: end monitoring in %s", ErrInvalidPhase, s.phase)
	}
	s.setPhase(PhaseReady)
	return nil
}

// NextEvent blocks until the next live event arrives, the context is
// cancelled, or the channel fails. Cancellation is cooperative: it is
// checked between frame reads, never mid-frame, so the stream stays
// aligned. Events queued while a command response was awaited drain first,
// in arrival order; the queue is reachable only from Ready and Monitoring,
// so a failed or closed session never yields stale events.
func (s *Session) NextEvent(ctx context.Context) (Event, error) {
	if err := s.requireReady("next event"); err != nil {
		return nil, err
	}
	if len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		return ev, nil
	}
	if s.phase != PhaseMonitoring {
		return nil, fmt.Errorf("%w: next event in %s", ErrInvalidPhase, s.phase)
	}
	for {
		f, err := s.readFrame(ctx, time.Time{})
		if err != nil {
			return nil, err
		}
		if f.IsEvent() {
			return s.decodeEvent(f), nil
		}
		// Non-event traffic during monitoring is logged and dropped.
		s.log.Debug().Str("frame", f.String()).Msg("non-event frame while monitoring")
	}
}

// Close releases the channel. Idempotent; valid from any phase.
func (s *Session) Close() error {
	if s.phase == PhaseClosed {
		return nil
	}
	s.setPhase(PhaseClosed)
	return s.ch.Close()
}

func (s *Session) requireReady(op string) error {
	if s.phase != PhaseReady && s.phase != PhaseMonitoring {
		return fmt.Errorf("%w: %s in %s", ErrInvalidPhase, op, s.phase)
	}
	return nil
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.log.Debug().Str("from", s.phase.String()).Str("to", p.String()).Msg("phase transition")
	s.phase = p
}

// fail moves the session to the terminal Failed phase and records why.
func (s *Session) fail(err error) error {
	if s.phase != PhaseClosed {
		s.setPhase(PhaseFailed)
	}
	s.failure = err
	return err
}

func (s *Session) writeFrame(f Frame) error {
	s.log.Debug().Str("tx", f.String()).Msg("frame out")
	if _, err := s.ch.Write(f); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	s.stats.FramesSent++
	return nil
}

// awaitResponse reads frames until one satisfies match. Live-event frames
// arriving in the window are decoded and queued for the event stream, then
// the wait resumes: the channel is shared between solicited responses and
// unsolicited events at all times after Ready. A valid frame that is
// neither an event nor a match is a protocol violation for this operation.
func (s *Session) awaitResponse(ctx context.Context, expected string, match func(Frame) bool) (Frame, error) {
	deadline := time.Now().Add(s.opts.ReadTimeout)
	for {
		f, err := s.readFrame(ctx, deadline)
		if err != nil {
			return nil, err
		}
		if match(f) {
			return f, nil
		}
		if f.IsEvent() {
			s.pending = append(s.pending, s.decodeEvent(f))
			continue
		}
		return nil, &ResponseError{Command: f.Command(), Expected: expected}
	}
}

// readFrame pulls bytes from the channel through the resynchronizing
// decoder until a valid frame completes. Checksum failures are counted and
// recovered locally; they never abort the session. A zero deadline means
// wait indefinitely (monitoring mode), bounded only by ctx.
func (s *Session) readFrame(ctx context.Context, deadline time.Time) (Frame, error) {
	buf := make([]byte, 64)
	for {
		for len(s.rx) > 0 {
			b := s.rx[0]
			s.rx = s.rx[1:]
			f, err := s.dec.DecodeByte(b)
			if err != nil {
				s.stats.ChecksumErrors++
				s.log.Debug().Err(err).Msg("resynchronizing stream")
				continue
			}
			if f != nil {
				s.stats.FramesReceived++
				s.log.Debug().Str("rx", f.String()).Msg("frame in")
				return f, nil
			}
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, ErrReadTimeout
		}

		n, err := s.ch.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("read channel: %w", err)
		}
		s.rx = append(s.rx, buf[:n]...)
	}
}

func (s *Session) decodeEvent(f Frame) Event {
	ev, err := DecodeEvent(f)
	if err != nil {
		// Undocumented groups are diagnostics; surface the UnknownEvent.
		s.stats.UnknownEvents++
		s.log.Warn().Err(err).Str("frame", f.String()).Msg("undocumented event")
	}
	s.stats.CountEvent(ev)
	return ev
}
