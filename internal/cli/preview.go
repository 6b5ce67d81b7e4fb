package cli

import (
	"github.com/vasalvit/badge"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Preview returns the preview command. run opens the window, the binary
// passes preview.Run.
func Preview(run func(b *badge.Badge, scale float64) error) *cobra.Command {
	var previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Play the animation in a window",
		Long:  `Open a window playing the badge animation once, Esc or Q quits`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			log.Info().Float64("scale", e.cfg.Output.Scale).Msg("starting preview")
			return run(e.badge, e.cfg.Output.Scale)
		},
	}
	previewCmd.Flags().Float64P("scale", "", 1, "window scale")
	return previewCmd
}
