// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openparadox/paradoxctl/pkg/mgsp"
)

var (
	eepromAddress string
	eepromRecords int
	eepromPages   int
)

var eepromCmd = &cobra.Command{
	Use:   "eeprom",
	Short: "Read raw panel EEPROM",
	Long: `Reads panel EEPROM pages and prints them as a hex dump. Each page
request returns 27 data bytes; --pages issues consecutive requests with
the address advanced by one page each time. One request maps to exactly
one protocol exchange.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr64, err := strconv.ParseUint(eepromAddress, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid address %q: %v", eepromAddress, err)
		}
		if eepromPages < 1 {
			return fmt.Errorf("--pages must be at least 1")
		}

		session, _, err := openPanelSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		address := uint16(addr64)
		for i := 0; i < eepromPages; i++ {
			page, err := session.ReadEEPROM(cmd.Context(), address, eepromRecords)
			if err != nil {
				return fmt.Errorf("read page at 0x%04X: %w", address, err)
			}
			fmt.Printf("EEPROM 0x%04X (%d records):\n", page.Address, page.Records)
			fmt.Print(mgsp.HexDump(page.Data))
			address += mgsp.EEPROMDataSize
		}
		return nil
	},
}

func init() {
	eepromCmd.Flags().StringVar(&eepromAddress, "address", "0x0000", "Start address (decimal or 0x hex)")
	eepromCmd.Flags().IntVar(&eepromRecords, "records", 1, "Record count per request")
	eepromCmd.Flags().IntVar(&eepromPages, "pages", 1, "Consecutive pages to read")
	rootCmd.AddCommand(eepromCmd)
}
