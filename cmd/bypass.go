// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bypassZone int

var bypassCmd = &cobra.Command{
	Use:   "bypass",
	Short: "Toggle bypass on a zone",
	Long: `Toggles the bypass state of a zone. The panel does not report the
resulting state, only acceptance; a bypassed zone stops generating alarms
until the toggle is repeated or the partition disarms.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := openPanelSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		result, err := session.BypassZone(cmd.Context(), bypassZone)
		if err != nil {
			return err
		}
		if !result.Success() {
			return fmt.Errorf("panel refused bypass: %s", result)
		}
		fmt.Printf("Zone %d bypass toggled\n", bypassZone)
		return nil
	},
}

func init() {
	bypassCmd.Flags().IntVar(&bypassZone, "zone", 0, "Zone number (1-based)")
	bypassCmd.MarkFlagRequired("zone")
	rootCmd.AddCommand(bypassCmd)
}
