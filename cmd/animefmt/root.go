package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/animefmt/internal/config"
	"github.com/aretw0/animefmt/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "animefmt",
	Short: "animefmt formats anime metadata into channel cards",
	Long: `animefmt turns structured anime blocks, or AniList search results, into
HTML cards ready to post on a Telegram channel.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./animefmt.yaml or $HOME/.animefmt/animefmt.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides log.level)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides log.format)")
}

// setup loads the configuration and builds the logger, applying flag overrides.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format, _ = cmd.Flags().GetString("log-format")
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(level, cfg.Log.Format)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
