package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vasalvit/badge/internal/cli"
	"github.com/vasalvit/badge/internal/config"
	"github.com/vasalvit/badge/internal/preview"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:           "badge",
		Short:         "Badge",
		Long:          `Draw and animate a two-arc circular badge`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.DefineFlags(rootCmd)
	rootCmd.AddCommand(
		cli.Render(),
		cli.Animate(),
		cli.Frames(),
		cli.Inspect(),
		cli.Preview(preview.Run),
		cli.GenConfig(),
		cli.VersionCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("badge failed")
		os.Exit(1)
	}
}
