// Package config contains the badge CLI configuration and the code to load it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vasalvit/badge"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. BADGE_LOG_LEVEL or BADGE_BADGE_SMALL_COLOR.
const EnvPrefix = "BADGE"

type Config struct {
	// Badge is the geometry, colours and timing of the badge.
	Badge badge.Config `mapstructure:"badge"`
	// Log is a configuration for logging.
	Log Log `mapstructure:"log"`
	// Output controls animated and frame-by-frame output.
	Output Output `mapstructure:"output"`
}

type Log struct {
	// Level is one of trace, debug, info, warn, error, fatal or none.
	Level string `mapstructure:"level"`
	// File is an optional log file, logs go to STDOUT when empty.
	File string `mapstructure:"file"`
}

type Output struct {
	// FPS is the sampling rate of animated SVG and frame sequences.
	FPS int `mapstructure:"fps"`
	// Scale multiplies the canvas size of raster output.
	Scale float64 `mapstructure:"scale"`
	// Format of exported frames: svg or png.
	Format string `mapstructure:"format"`
	// Workers bounds parallel frame rendering, 0 means one per CPU.
	Workers int `mapstructure:"workers"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Badge: badge.DefaultConfig(),
		Log: Log{
			Level: "info",
		},
		Output: Output{
			FPS:    60,
			Scale:  1,
			Format: badge.FormatSVG,
		},
	}
}

// Validate checks the parts of the configuration not covered by
// badge.Config.Validate.
func (c Config) Validate() error {
	if err := c.Badge.Validate(); err != nil {
		return fmt.Errorf("badge: %w", err)
	}
	if c.Output.FPS <= 0 {
		return errors.New("output.fps must be positive")
	}
	if c.Output.Scale <= 0 {
		return errors.New("output.scale must be positive")
	}
	if c.Output.Format != badge.FormatSVG && c.Output.Format != badge.FormatPNG {
		return fmt.Errorf("output.format must be %s or %s", badge.FormatSVG, badge.FormatPNG)
	}
	return nil
}

// DefineFlags registers the flags shared by every command.
func DefineFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringP("log.level", "", "info", "set the log level: trace, debug, info, warn, error, fatal or none")
	rootCmd.PersistentFlags().StringP("log.file", "", "", "optional log file - if not specified logs go to STDOUT")
}

// flagNames maps config keys to the names of the command flags
// overriding them. Commands define only the flags they use.
var flagNames = map[string]string{
	"log.level":      "log.level",
	"log.file":       "log.file",
	"output.fps":     "fps",
	"output.scale":   "scale",
	"output.format":  "format",
	"output.workers": "workers",
}

// GetConfig merges defaults, the optional config file, BADGE_* environment
// variables and the flags of cmd, in increasing order of precedence.
func GetConfig(cmd *cobra.Command, configFile string) (Config, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))

	for key, value := range flatten("", defaultSettings()) {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key, flag := range flagNames {
			if f := cmd.Flags().Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	conf := Default()
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return conf, nil
}

// GenerateConfig writes the default configuration to path as TOML. An
// existing file is never overwritten.
func GenerateConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("output config file %s already exists", path)
	}
	data, err := toml.Marshal(defaultSettings())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// defaultSettings returns Default as nested maps keyed like the
// mapstructure tags, durations as strings so the file stays readable.
func defaultSettings() map[string]interface{} {
	d := Default()
	b := d.Badge
	return map[string]interface{}{
		"badge": map[string]interface{}{
			"width":              b.Width,
			"thickness":          b.Thickness,
			"space_angle":        b.SpaceAngle,
			"offset_angle":       b.OffsetAngle,
			"small":              b.Small,
			"big":                b.Big,
			"magic_angle_offset": b.MagicAngleOffset,
			"small_color":        b.SmallColor,
			"big_color":          b.BigColor,
			"ease":               b.Ease,
			"small_delay":        durationString(b.SmallDelay),
			"small_duration":     durationString(b.SmallDuration),
			"big_delay":          durationString(b.BigDelay),
			"big_duration":       durationString(b.BigDuration),
			"big_fix_duration":   durationString(b.BigFixDuration),
		},
		"log": map[string]interface{}{
			"level": d.Log.Level,
			"file":  d.Log.File,
		},
		"output": map[string]interface{}{
			"fps":     d.Output.FPS,
			"scale":   d.Output.Scale,
			"format":  d.Output.Format,
			"workers": d.Output.Workers,
		},
	}
}

func durationString(d time.Duration) string {
	return d.String()
}

func flatten(prefix string, m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}
