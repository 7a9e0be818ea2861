// cmd/config.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the site metadata and plugin list",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(siteConfig)
		if err != nil {
			return fmt.Errorf("failed to encode site config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
