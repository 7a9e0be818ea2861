// cmd/build.go
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nicolasmendonca/raptor-redux/internal/build"
	"github.com/nicolasmendonca/raptor-redux/internal/config"
	"github.com/nicolasmendonca/raptor-redux/internal/model"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Runs page creation and publishes the registered redirects",
	Long: `The build command runs the site's page-creation hooks, collects the
redirects they register and writes them to the configured output directory
(default './public/') as a _redirects file, a redirects.yaml manifest and
in-browser redirect pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuildProcess(cmd.Context(), afero.NewOsFs(), appConfig, siteConfig, siteHooks)
		return err
	},
}

func runBuildProcess(ctx context.Context, fs afero.Fs, cfg config.Config, site model.SiteConfig, hooks []build.NamedHook) (*build.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log.Printf("Building '%s' into '%s' (baseURL: '%s')", site.Metadata.Title, cfg.OutputDir, cfg.BaseURL)

	result, err := build.NewBuilder(site, logger).Run(ctx, hooks...)
	if err != nil {
		return nil, fmt.Errorf("page creation failed: %w", err)
	}

	publisher := &build.Publisher{Fs: fs, OutputDir: cfg.OutputDir, BaseURL: cfg.BaseURL}
	if err := publisher.Publish(result); err != nil {
		return nil, fmt.Errorf("publishing build %s failed: %w", result.BuildID, err)
	}

	for _, r := range result.Redirects.Rules() {
		log.Printf("  %s -> %s (%d)", r.FromPath, r.ToPath, r.StatusCode())
	}
	log.Println("Build completed successfully.")
	return result, nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
