// Command studio is the interactive terminal client for the image studio
// server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pixelforge/image-studio/internal/client/api"
	"github.com/pixelforge/image-studio/internal/client/cli"
	"github.com/pixelforge/image-studio/internal/client/config"
	"github.com/pixelforge/image-studio/internal/client/profile"
	"github.com/pixelforge/image-studio/internal/client/session"
	"github.com/pixelforge/image-studio/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "studio",
		Short:        "Generate images from prompts and browse the community gallery",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			log := logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  true,
				Service: "studio",
				Output:  cmd.ErrOrStderr(),
			})
			log.Debug().Str("server", cfg.ServerURL).Str("state_dir", cfg.StateDir).Msg("starting client")

			sess := session.New(
				api.New(cfg.ServerURL, cfg.RequestTimeout),
				profile.NewFileStore(cfg.StateDir),
				logger.For("session"),
			)
			return cli.NewApp(sess, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}
