package cli

import (
	"github.com/vasalvit/badge"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Frames() *cobra.Command {
	var dir string
	var framesCmd = &cobra.Command{
		Use:   "frames",
		Short: "Export every frame of the animation",
		Long:  `Export the animation as a numbered sequence of SVG or PNG files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			files, err := badge.ExportFrames(cmd.Context(), e.badge, dir, badge.ExportOptions{
				FPS:     e.cfg.Output.FPS,
				Format:  e.cfg.Output.Format,
				Scale:   e.cfg.Output.Scale,
				Workers: e.cfg.Output.Workers,
			})
			if err != nil {
				return err
			}
			log.Info().Int("frames", len(files)).Str("dir", dir).Str("format", e.cfg.Output.Format).Msg("frames exported")
			return nil
		},
	}
	framesCmd.Flags().StringVarP(&dir, "dir", "d", "frames", "output directory")
	framesCmd.Flags().IntP("fps", "", 60, "frames per second")
	framesCmd.Flags().StringP("format", "f", badge.FormatSVG, "frame format: svg or png")
	framesCmd.Flags().Float64P("scale", "", 1, "scale of PNG frames")
	framesCmd.Flags().IntP("workers", "w", 0, "number of frames rendered in parallel, 0 for one per CPU")
	return framesCmd
}
