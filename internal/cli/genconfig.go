package cli

import (
	"fmt"
	"os"

	"github.com/vasalvit/badge/internal/config"

	"github.com/spf13/cobra"
)

func GenConfig() *cobra.Command {
	var outputConfigFile string
	var genConfigCmd = &cobra.Command{
		Use:   "genconfig",
		Short: "Generate configuration file with defaults",
		Long:  `Generate a TOML configuration file holding every default setting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return genConfig(cmd, outputConfigFile)
		},
	}
	genConfigCmd.Flags().StringVarP(&outputConfigFile, "output", "o", "badge.toml", "path to output config file")
	return genConfigCmd
}

func genConfig(cmd *cobra.Command, outputConfigFile string) error {
	if err := config.GenerateConfig(outputConfigFile); err != nil {
		return err
	}
	if _, err := config.GetConfig(cmd, outputConfigFile); err != nil {
		_ = os.Remove(outputConfigFile)
		return fmt.Errorf("error checking generated config: %w", err)
	}
	return nil
}
