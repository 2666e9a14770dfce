package main

import (
	"fmt"

	"github.com/chazu/voxmemento/pkg/config"
	"github.com/spf13/cobra"
)

var (
	configFile string

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Validate a configuration file and print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return err
				}
				c = loaded
			}
			out, err := c.YAML()
			if err != nil {
				return fmt.Errorf("config: encode: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
)

func init() {
	configCmd.Flags().StringVarP(&configFile, "file", "f", "", "configuration file to validate")
}
