package main

import (
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/statusboard/internal/adapters/http/stub"
)

func newStubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local stand-in for the backend API",
		Args:  cobra.NoArgs,
		RunE:  runStub,
	}
	cmd.Flags().String("addr", "", "listen address (overrides config stub_addr)")
	cmd.Flags().String("message", stub.DefaultMessage, "greeting returned by GET /")
	cmd.Flags().String("status", stub.DefaultStatus, "status returned by GET /health")
	return cmd
}

func runStub(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	message, _ := cmd.Flags().GetString("message")
	status, _ := cmd.Flags().GetString("status")

	h := stub.New(stub.WithMessage(message), stub.WithStatus(status))
	srv := &http.Server{
		Addr:              cfg.StubAddr,
		Handler:           h.Router(ctx),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return listenAndShutdown(ctx, srv, log.Named("stub"))
}
