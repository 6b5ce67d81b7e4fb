package cli

import (
	"fmt"
	"os"

	"github.com/vasalvit/badge"
	"github.com/vasalvit/badge/internal/config"
	"github.com/vasalvit/badge/internal/logging"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Inspect() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the paths of an SVG file",
		Long:  `Parse an SVG file and log the segments of every path in it`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.GetConfig(cmd, configFile)
			if err != nil {
				return err
			}
			closeLog, err := logging.Setup(cfg.Log)
			if err != nil {
				return err
			}
			defer closeLog()
			return inspect(args[0])
		},
	}
}

func inspect(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	s, err := badge.ParseSvgFromReader(f, name)
	if err != nil {
		return err
	}
	paths := s.AllPaths()
	log.Info().
		Str("file", name).
		Float64("width", s.Width).
		Float64("height", s.Height).
		Int("paths", len(paths)).
		Msg("svg parsed")

	for i, p := range paths {
		if p.D == "" {
			log.Info().Int("index", i).Str("id", p.ID).Msg("path has no data")
			continue
		}
		data, err := p.Data()
		if err != nil {
			return fmt.Errorf("path %d (%s): %w", i, p.ID, err)
		}
		log.Info().
			Int("index", i).
			Str("id", p.ID).
			Str("fill", p.Fill).
			Str("shape", data.Shape()).
			Int("animations", len(p.Animations)).
			Msg("path")
		if !logging.Enabled(zerolog.DebugLevel) {
			continue
		}
		for j, seg := range data.Segments {
			log.Debug().
				Int("segment", j).
				Str("command", string(seg.Cmd)).
				Floats64("point", seg.Point[:]).
				Msg("segment")
		}
	}
	return nil
}
