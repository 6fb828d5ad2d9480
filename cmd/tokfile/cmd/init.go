/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/tokfile/pkg/codec"
	"github.com/ssargent/tokfile/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default tokfile configuration",
	Long: `Write a default configuration file to the --config location.

Examples:
  tokfile init
  tokfile init --config ./tokfile.yaml --sentinel 0000 --flush-every 1000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		cfg, err := initialConfig(cmd)
		if err != nil {
			return err
		}
		if err := config.SaveConfig(cfg, configPath); err != nil {
			return err
		}

		cmd.Printf("Wrote config to %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	initCmd.Flags().Int("flush-every", codec.DefaultFlushEvery, "Lines between flushes")
}

// initialConfig builds the default config with any flag overrides applied
func initialConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cmd.Flags().Changed("sentinel") {
		cfg.Sentinel, _ = cmd.Flags().GetString("sentinel")
	}
	if cmd.Flags().Changed("byte-order") {
		cfg.ByteOrder, _ = cmd.Flags().GetString("byte-order")
	}
	cfg.FlushEvery, _ = cmd.Flags().GetInt("flush-every")

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
