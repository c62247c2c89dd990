package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/assetry/config"
)

var version = "dev"

// skipConfig marks commands that run without a loaded configuration.
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "assetry",
	Short:   "Multi-tenant static asset server with pre-compressed variants",
	Long: `Assetry serves static files for many hostnames from per-host document
roots. Files are served from pre-built encoded variants (app.js.br,
app.js.gz, ...) chosen by the client's Accept-Encoding header.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipConfig] == "true" {
			setupLogging(&config.Config{})
			return nil
		}

		configFiles, _ := cmd.Flags().GetStringSlice("config")
		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable; later files override earlier (default: ./assetry.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: ASSETRY_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("env", "", "environment: dev or prod (env: ASSETRY_ENV)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
