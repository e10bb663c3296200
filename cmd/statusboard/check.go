package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/statusboard/internal/app"
	"github.com/okian/statusboard/internal/dashboard"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch health and message once and print them",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
	cmd.Flags().String("backend-url", "", "backend base URL (overrides config backend_url)")
	cmd.Flags().Duration("timeout", 0, "per-request backend timeout, 0 for none")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := setup(ctx, cmd)
	if err != nil {
		return err
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithBackendURL(cfg.BackendURL),
		app.WithRequestTimeout(cfg.RequestTimeout),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	snap := svc.Dashboard().Snapshot()
	printSnapshot(cmd.OutOrStdout(), snap)
	if snap.HasError() {
		return errCheckFailed
	}
	return nil
}

func printSnapshot(w io.Writer, snap dashboard.Snapshot) {
	if snap.HasError() {
		fmt.Fprintf(w, "Error: %s\n", snap.Error)
	}
	fmt.Fprintf(w, "Backend Status: %s\n", snap.Health)
	msg := snap.Message
	if msg == "" {
		msg = "No message received"
	}
	fmt.Fprintf(w, "API Message: %s\n", msg)
}
