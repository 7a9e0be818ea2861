package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nicolasmendonca/raptor-redux/internal/build"
	"github.com/nicolasmendonca/raptor-redux/internal/config"
	"github.com/nicolasmendonca/raptor-redux/internal/model"
)

var cfgFile string
var configFileUsed string
var appConfig config.Config

var siteConfig model.SiteConfig
var siteHooks []build.NamedHook

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var rootCmd = &cobra.Command{
	Use:   "raptor-redux",
	Short: "Build and serve the Raptor Redux slides site",
	Long: `raptor-redux runs the page-creation phase of the Raptor Redux site,
publishes the registered redirects into the output directory and can serve
the result locally.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the CLI for the given site descriptor and page-creation hooks.
func Execute(site model.SiteConfig, hooks ...build.NamedHook) {
	siteConfig = site
	siteHooks = hooks
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("outputDir", "public")
	v.SetDefault("baseURL", "")
	v.SetDefault("port", 1313)

	v.SetEnvPrefix("RAPTOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func initializeConfig(_ *cobra.Command) error {
	v := newViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found in current directory. Using defaults and environment variables.")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Println("Using config file:", configFileUsed)
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	appConfig = cfg
	return nil
}
