package cli

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Render() *cobra.Command {
	var (
		at     time.Duration
		output string
	)
	var renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render a single frame",
		Long:  `Render the badge at a point of its animation as SVG, or as PNG when the output file ends with .png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if !cmd.Flags().Changed("at") {
				at = e.badge.Timeline().Duration()
			}
			s, err := e.badge.Frame(at)
			if err != nil {
				return err
			}
			if err := writeScene(s, output, e.cfg.Output.Scale); err != nil {
				return err
			}
			log.Info().Dur("at", at).Str("output", output).Msg("frame rendered")
			return nil
		},
	}
	renderCmd.Flags().DurationVarP(&at, "at", "", 0, "time since the animation start, the end of the animation by default")
	renderCmd.Flags().StringVarP(&output, "output", "o", "badge.svg", "output file, - for STDOUT")
	renderCmd.Flags().Float64P("scale", "", 1, "scale of PNG output")
	return renderCmd
}
