// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openparadox/paradoxctl/pkg/mgsp"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Identify the connected panel",
	Long: `Runs the handshake and prints the identity the panel reported: product
model, firmware version, panel id and the partition/zone capacities
derived from the model. The handshake does not require the PC password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, connInfo, err := OpenConnection()
		if err != nil {
			return err
		}
		logger.Info().Str("connection", connInfo).Msg("connected")

		session := mgsp.NewSession(conn, sessionOptions())
		defer session.Close()

		info, err := session.Connect(cmd.Context())
		if err != nil {
			return fmt.Errorf("handshake: %w", err)
		}

		fmt.Printf("Product:     %s (0x%02X)\n", info.ProductID, byte(info.ProductID))
		fmt.Printf("Firmware:    %s\n", info.Firmware())
		fmt.Printf("Panel ID:    0x%04X\n", info.PanelID)
		fmt.Printf("Modem speed: %d\n", info.ModemSpeed)
		fmt.Printf("Partitions:  %d\n", info.MaxPartitions())
		fmt.Printf("Zones:       %d\n", info.MaxZones())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
