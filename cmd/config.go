// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// fileConfig maps ~/.paradoxctl.toml keys to connection and session
// settings. Flags set explicitly on the command line always win.
type fileConfig struct {
	Port             string `toml:"port"`
	Baud             int    `toml:"baud"`
	URL              string `toml:"url"`
	Username         string `toml:"username"`
	NoSSLVerify      bool   `toml:"no_ssl_verify"`
	PasswordEnv      string `toml:"password_env"`
	UserID           int    `toml:"user_id"`
	ReadTimeoutMs    int    `toml:"read_timeout_ms"`
	HandshakeRetries int    `toml:"handshake_retries"`
}

// defaultConfigPath returns ~/.paradoxctl.toml, or "" when no home
// directory is resolvable.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".paradoxctl.toml")
}

// applyConfigFile overlays the TOML config onto flags the user did not set.
// An explicit --config path must exist; the default path is optional.
func applyConfigFile(cmd *cobra.Command) error {
	path := configPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return fmt.Errorf("config file: %w", err)
		}
		return nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	flags := cmd.Flags()
	if meta.IsDefined("port") && !flags.Changed("port") {
		portName = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("baud") && !flags.Changed("baud") {
		baudRate = raw.Baud
	}
	if meta.IsDefined("url") && !flags.Changed("url") {
		wsURL = strings.TrimSpace(raw.URL)
	}
	if meta.IsDefined("username") && !flags.Changed("username") {
		wsUsername = strings.TrimSpace(raw.Username)
	}
	if meta.IsDefined("no_ssl_verify") && !flags.Changed("no-ssl-verify") {
		wsNoSSLVerify = raw.NoSSLVerify
	}
	if meta.IsDefined("password_env") && !flags.Changed("password-env") {
		passwordEnv = strings.TrimSpace(raw.PasswordEnv)
	}
	if meta.IsDefined("user_id") && !flags.Changed("user-id") {
		userID = raw.UserID
	}
	if meta.IsDefined("read_timeout_ms") && !flags.Changed("read-timeout") {
		readTimeoutMs = raw.ReadTimeoutMs
	}
	if meta.IsDefined("handshake_retries") && !flags.Changed("handshake-retries") {
		handshakeRetries = raw.HandshakeRetries
	}
	return nil
}
