package main

import (
	"fmt"

	"github.com/aretw0/animefmt/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the animefmt configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration to a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "animefmt.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (secrets redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		if cfg.Telegram.Token != "" {
			cfg.Telegram.Token = "********"
		}
		if cfg.Cache.RedisPassword != "" {
			cfg.Cache.RedisPassword = "********"
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}
