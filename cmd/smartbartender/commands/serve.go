package commands

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the login gate web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd)
		},
	}
	cmd.Flags().String("listen", "", "listen address (default 0.0.0.0:8014)")
	cmd.Flags().String("static-dir", "", "directory served under /static (default <home>/static)")
	cmd.Flags().String("site-url", "", "link shown after a successful login")
	bindFlag(cmd, "listen", "listen")
	bindFlag(cmd, "static_dir", "static-dir")
	bindFlag(cmd, "site_url", "site-url")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command) error {
	srv, err := wire.NewServer()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", wire.Config.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", wire.Config.Listen, err)
	}
	logger().Info("serving",
		zap.String("addr", ln.Addr().String()),
		zap.String("store", wire.Config.Store.Backend),
		zap.String("static_dir", wire.Config.StaticDir))
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", ln.Addr())
	return srv.Serve(ctx, ln)
}
