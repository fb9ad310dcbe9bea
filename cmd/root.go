// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Session flags
	configPath       string
	passwordEnv      string
	userID           int
	readTimeoutMs    int
	handshakeRetries int
	verbose          bool
)

// logger is the process-wide logger, configured by setupLogging.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "paradoxctl",
	Short: "Paradox MG/SP serial panel client",
	Long: `Paradoxctl - a client for Paradox MG/SP/Digiplex alarm panels over the
pre-7.50 unencrypted serial protocol (9600 bps, 8N1).

Provides commands for panel identification, arming/disarming partitions,
zone bypass, raw EEPROM reads and live-event monitoring.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 9600]
  WebSocket: --url ws://host/path [--username user]  (transparent byte bridge)

The PC password (4 hex digits) is read from the environment variable named
by --password-env, or prompted interactively if not set. There is
intentionally no --password flag, to keep credentials out of shell history.`,
	Version: "1.0.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return applyConfigFile(cmd)
	},
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate (serial only)")

	// WebSocket bridge flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Session flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (default ~/.paradoxctl.toml)")
	rootCmd.PersistentFlags().StringVar(&passwordEnv, "password-env", "PARADOX_PC_PASSWORD", "Environment variable holding the PC password")
	rootCmd.PersistentFlags().IntVar(&userID, "user-id", 0, "User id stamped into outgoing frames")
	rootCmd.PersistentFlags().IntVar(&readTimeoutMs, "read-timeout", 5000, "Response timeout in milliseconds")
	rootCmd.PersistentFlags().IntVar(&handshakeRetries, "handshake-retries", 3, "Handshake attempts before giving up")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace frames and state transitions to stderr")
}

// setupLogging configures the zerolog sink. Frame traces are debug level
// and off by default.
func setupLogging() {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
