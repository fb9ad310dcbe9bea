// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/openparadox/paradoxctl/pkg/mgsp"
)

// sessionOptions maps the CLI flags onto the protocol session knobs.
func sessionOptions() mgsp.Options {
	return mgsp.Options{
		ReadTimeout:      time.Duration(readTimeoutMs) * time.Millisecond,
		HandshakeRetries: handshakeRetries,
		UserID:           byte(userID),
		Logger:           &logger,
	}
}

// openPanelSession opens the transport, runs the handshake and
// authenticates. On success the session is Ready and the caller owns it;
// on any failure the connection is closed before returning. The returned
// string describes the transport for status output.
func openPanelSession(ctx context.Context) (*mgsp.Session, string, error) {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return nil, "", err
	}
	logger.Info().Str("connection", connInfo).Msg("connected")

	session := mgsp.NewSession(conn, sessionOptions())
	info, err := session.Connect(ctx)
	if err != nil {
		session.Close()
		return nil, "", fmt.Errorf("handshake: %w", err)
	}
	logger.Info().
		Str("product", info.ProductID.String()).
		Str("firmware", info.Firmware()).
		Msg("panel identified")

	password, err := GetPCPassword()
	if err != nil {
		session.Close()
		return nil, "", err
	}
	if err := session.Authenticate(ctx, password); err != nil {
		session.Close()
		return nil, "", fmt.Errorf("authentication: %w", err)
	}

	return session, connInfo, nil
}
