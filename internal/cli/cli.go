// Package cli contains the commands of the badge binary.
package cli

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vasalvit/badge"
	"github.com/vasalvit/badge/internal/config"
	"github.com/vasalvit/badge/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// env is what every drawing command starts from.
type env struct {
	cfg   config.Config
	badge *badge.Badge
	close func()
}

func setup(cmd *cobra.Command) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.GetConfig(cmd, configFile)
	if err != nil {
		return nil, err
	}
	closeLog, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}
	b, err := badge.New(cfg.Badge)
	if err != nil {
		closeLog()
		return nil, err
	}
	log.Debug().
		Str("config", configFile).
		Float64("width", cfg.Badge.Width).
		Dur("duration", b.Timeline().Duration()).
		Msg("badge configured")
	return &env{cfg: cfg, badge: b, close: closeLog}, nil
}

// create opens name for writing, "-" meaning STDOUT.
func create(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(name)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// writeScene writes s as PNG when name ends with .png, as SVG otherwise.
func writeScene(s *badge.Svg, name string, scale float64) (err error) {
	w, err := create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if strings.EqualFold(filepath.Ext(name), ".png") {
		img, err := s.Rasterize(scale)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	}
	return s.Encode(w)
}
