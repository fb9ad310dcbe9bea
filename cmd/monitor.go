// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 OpenParadox Project

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openparadox/paradoxctl/pkg/mgsp"
)

var monitorRecordPath string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream live panel events",
	Long: `Switches the session into monitoring mode and prints live events as
they arrive, one line per event, until interrupted with Ctrl-C.

With --record, every event is also appended to a CBOR capture file that
the replay command can play back later.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session, _, err := openPanelSession(ctx)
		if err != nil {
			return err
		}
		defer session.Close()

		var recorder *captureWriter
		if monitorRecordPath != "" {
			recorder, err = newCaptureWriter(monitorRecordPath)
			if err != nil {
				return err
			}
			defer recorder.Close()
		}

		if err := session.BeginMonitoring(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Monitoring (Ctrl-C to stop)")

		for {
			ev, err := session.NextEvent(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					break
				}
				return err
			}
			fmt.Println(mgsp.FormatEvent(ev))
			if recorder != nil {
				if err := recorder.WriteEvent(ev); err != nil {
					return fmt.Errorf("record event: %w", err)
				}
			}
		}

		stats := session.Stats()
		fmt.Fprintf(os.Stderr, "\n%s\n", stats)
		return nil
	},
}

func init() {
	monitorCmd.Flags().StringVar(&monitorRecordPath, "record", "", "Append events to a CBOR capture file")
	rootCmd.AddCommand(monitorCmd)
}
