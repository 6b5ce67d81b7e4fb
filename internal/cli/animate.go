package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Animate() *cobra.Command {
	var output string
	var animateCmd = &cobra.Command{
		Use:   "animate",
		Short: "Write an animated SVG",
		Long:  `Write the badge as a single SVG document animated with SMIL`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			w, err := create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer func() {
				if cerr := w.Close(); err == nil {
					err = cerr
				}
			}()
			if err := e.badge.WriteAnimated(w, e.cfg.Output.FPS); err != nil {
				return err
			}
			log.Info().Int("fps", e.cfg.Output.FPS).Str("output", output).Msg("animation written")
			return nil
		},
	}
	animateCmd.Flags().StringVarP(&output, "output", "o", "badge-animated.svg", "output file, - for STDOUT")
	animateCmd.Flags().IntP("fps", "", 60, "frames per second used to sample the animation")
	return animateCmd
}
