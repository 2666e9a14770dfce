// Command voxhist exercises the voxel edit history from the command line.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/chazu/voxmemento/pkg/config"
	"github.com/spf13/cobra"
)

var (
	configPath string

	cfg    = config.Default()
	logger = slog.Default()

	rootCmd = &cobra.Command{
		Use:           "voxhist",
		Short:         "Record, undo and inspect voxel scene edit history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				c, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = c
			}
			logger = cfg.Logger(cmd.ErrOrStderr())
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.AddCommand(benchCmd, consoleCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("voxhist: %v", err)
		os.Exit(1)
	}
}
