package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/vasalvit/badge/internal/cli.Version=..."
var Version = "0.0.0"

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Badge version information",
		Long:  `Print the version information of badge`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("badge v%s (Go version: %s)\n", Version, runtime.Version())
		},
	}
}
