package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one virus-scan pass over pending attachments",
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.Services.Scans.RunPass(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent: %d\nreceived: %d\nfailed: %d\n", summary.Sent, summary.Received, summary.Failed)
	return nil
}
