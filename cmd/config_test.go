// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// resetFlags restores the flag globals and the changed-state cobra tracks
// so tests do not leak into each other.
func resetFlags(t *testing.T) {
	t.Helper()
	portName = ""
	baudRate = 9600
	wsURL = ""
	wsUsername = ""
	wsNoSSLVerify = false
	configPath = ""
	passwordEnv = "PARADOX_PC_PASSWORD"
	userID = 0
	readTimeoutMs = 5000
	handshakeRetries = 3
	clear := func() {
		rootCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	clear()
	t.Cleanup(clear)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paradoxctl.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyConfigFileOverlaysUnsetFlags(t *testing.T) {
	resetFlags(t)
	configPath = writeConfig(t, `
port = "/dev/ttyUSB3"
baud = 38400
user_id = 7
read_timeout_ms = 2500
`)

	if err := applyConfigFile(rootCmd); err != nil {
		t.Fatalf("applyConfigFile failed: %v", err)
	}
	if portName != "/dev/ttyUSB3" {
		t.Errorf("port = %q, want /dev/ttyUSB3", portName)
	}
	if baudRate != 38400 {
		t.Errorf("baud = %d, want 38400", baudRate)
	}
	if userID != 7 {
		t.Errorf("user_id = %d, want 7", userID)
	}
	if readTimeoutMs != 2500 {
		t.Errorf("read_timeout_ms = %d, want 2500", readTimeoutMs)
	}
	// Keys absent from the file keep their defaults.
	if handshakeRetries != 3 {
		t.Errorf("handshake_retries = %d, want default 3", handshakeRetries)
	}
}

func TestApplyConfigFileExplicitFlagWins(t *testing.T) {
	resetFlags(t)
	configPath = writeConfig(t, `baud = 38400`)

	if err := rootCmd.ParseFlags([]string{"--baud", "4800"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	t.Cleanup(func() { rootCmd.Flags().Lookup("baud").Changed = false })

	if err := applyConfigFile(rootCmd); err != nil {
		t.Fatalf("applyConfigFile failed: %v", err)
	}
	if baudRate != 4800 {
		t.Errorf("baud = %d, want command-line value 4800", baudRate)
	}
}

func TestApplyConfigFileExplicitPathMustExist(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "missing.toml")

	if err := applyConfigFile(rootCmd); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestApplyConfigFileDefaultPathOptional(t *testing.T) {
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())

	if err := applyConfigFile(rootCmd); err != nil {
		t.Errorf("missing default config should not error, got %v", err)
	}
}

func TestApplyConfigFileRejectsMalformedTOML(t *testing.T) {
	resetFlags(t)
	configPath = writeConfig(t, `baud = "not a number`)

	if err := applyConfigFile(rootCmd); err == nil {
		t.Error("expected decode error for malformed TOML")
	}
}
