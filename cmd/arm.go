// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openparadox/paradoxctl/pkg/mgsp"
)

var (
	armPartition int
	armModeName  string
)

var armCmd = &cobra.Command{
	Use:   "arm",
	Short: "Arm a partition",
	Long: `Arms a partition in the requested mode.

Modes:
  away          full arm (default)
  stay          perimeter only
  sleep         perimeter plus interior minus bedrooms
  stay-instant  stay with no entry delay
  instant       full arm with no entry delay`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := mgsp.ParseArmMode(armModeName)
		if err != nil {
			return err
		}

		session, _, err := openPanelSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		result, err := session.Arm(cmd.Context(), armPartition, mode)
		if err != nil {
			return err
		}
		if !result.Success() {
			return fmt.Errorf("panel refused arm: %s", result)
		}
		fmt.Printf("Partition %d armed (%s)\n", armPartition, mode)
		return nil
	},
}

func init() {
	armCmd.Flags().IntVar(&armPartition, "partition", 1, "Partition number (1-based)")
	armCmd.Flags().StringVar(&armModeName, "mode", "away", "Arming mode")
	rootCmd.AddCommand(armCmd)
}
