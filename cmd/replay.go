// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openparadox/paradoxctl/pkg/mgsp"
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture-file>",
	Short: "Print events from a capture file",
	Long: `Decodes a CBOR capture file written by monitor --record and prints the
events in the same format monitoring would, with the recorded timestamps.
No panel connection is made.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := readCapture(args[0])
		if err != nil {
			return err
		}
		for _, ev := range events {
			fmt.Println(mgsp.FormatEvent(ev))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d events\n", len(events))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
