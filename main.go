// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project
//
// Paradoxctl - Paradox MG/SP serial panel client
//
// A CLI tool for talking to Paradox alarm panels over the pre-7.50
// unencrypted serial protocol: identification, arming, zone bypass,
// EEPROM reads and live-event monitoring.

package main

import (
	"os"

	"github.com/openparadox/paradoxctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
