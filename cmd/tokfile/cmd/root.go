/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/ssargent/tokfile/pkg/codec"
	"github.com/ssargent/tokfile/pkg/config"
	"github.com/ssargent/tokfile/pkg/metrics"
)

type sessionKey struct{}

// session carries the resolved configuration to subcommands
type session struct {
	config   *config.Config
	format   codec.Format
	log      *consoleLogger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tokfile",
	Short: "tokfile - tokens file encoder and decoder",
	Long: `tokfile converts between text files of token ids and tokens files.

A tokens file stores each line of token ids as 16-bit little-endian values
followed by a two-byte sentinel (0xFFFF unless configured otherwise).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == initCmd {
			return nil
		}
		s, err := loadSession(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command, then prints metrics and reports the error.
// Both happen after failed runs too, which is when the error counters matter.
func execute() error {
	// Subcommands keep their context between runs
	for _, c := range rootCmd.Commands() {
		c.SetContext(context.Background())
	}

	cmd, err := rootCmd.ExecuteC()
	if cmd == nil {
		cmd = rootCmd
	}
	s, _ := sessionFrom(cmd)

	if metricsErr := printMetrics(cmd, s); err == nil {
		err = metricsErr
	}
	if err != nil {
		log := newConsoleLogger(cmd.ErrOrStderr(), "info")
		if s != nil {
			log = s.log
		}
		log.Errorf("%v", err)
	}
	return err
}

// printMetrics writes the session's metrics to stderr when --metrics is set
func printMetrics(cmd *cobra.Command, s *session) error {
	enabled, _ := rootCmd.PersistentFlags().GetBool("metrics")
	if !enabled || s == nil {
		return nil
	}
	families, err := s.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), family); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.GetDefaultConfigPath(), "Path to the config file")
	rootCmd.PersistentFlags().String("sentinel", "", "Sentinel as 4 hex digits in file order, e.g. ffff (overrides config)")
	rootCmd.PersistentFlags().String("byte-order", "", "Token byte order: little or big (overrides config)")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print Prometheus metrics to stderr on exit")
	rootCmd.PersistentFlags().Bool("no-progress", false, "Do not show progress bars")
}

// loadSession reads the config file, applies flag overrides and validates the result.
// A missing config file at the default location is not an error.
func loadSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if cmd.Flags().Changed("config") {
		return nil, errors.Errorf("config file does not exist: %s", configPath)
	}

	if cmd.Flags().Changed("sentinel") {
		cfg.Sentinel, _ = cmd.Flags().GetString("sentinel")
	}
	if cmd.Flags().Changed("byte-order") {
		cfg.ByteOrder, _ = cmd.Flags().GetString("byte-order")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	format, err := cfg.Format()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	return &session{
		config:   cfg,
		format:   format,
		log:      newConsoleLogger(cmd.ErrOrStderr(), cfg.Logging.Level),
		registry: registry,
		metrics:  metrics.NewMetrics(registry),
	}, nil
}

func sessionFrom(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}
	return s, nil
}
