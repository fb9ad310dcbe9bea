// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var disarmPartition int

var disarmCmd = &cobra.Command{
	Use:   "disarm",
	Short: "Disarm a partition",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := openPanelSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		result, err := session.Disarm(cmd.Context(), disarmPartition)
		if err != nil {
			return err
		}
		if !result.Success() {
			return fmt.Errorf("panel refused disarm: %s", result)
		}
		fmt.Printf("Partition %d disarmed\n", disarmPartition)
		return nil
	},
}

func init() {
	disarmCmd.Flags().IntVar(&disarmPartition, "partition", 1, "Partition number (1-based)")
	rootCmd.AddCommand(disarmCmd)
}
