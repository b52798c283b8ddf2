package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2dash/config"
	coremon "github.com/kilianp07/co2dash/core/monitoring"
	"github.com/kilianp07/co2dash/infra/logger"
	"github.com/kilianp07/co2dash/infra/monitoring"
	"github.com/kilianp07/co2dash/internal/i18n"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgPath string
	lang    string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "co2dash",
	Short:             "CO2 emissions estimator and dashboard for small steel plants",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		flush := 2 * time.Second
		if cfg != nil {
			flush = cfg.Sentry.FlushTimeout
		}
		coremon.Flush(flush)
		_ = logger.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "output language (en, hi)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lang != "" {
		c.Language = lang
	}
	if err := logger.Configure(c.Logging.Options()); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	mon, err := monitoring.NewSentryMonitor(c.Sentry, Version, c.Plant.Name)
	if err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)
	cfg = c
	return nil
}

func translator() *i18n.Translator { return i18n.New(cfg.Language) }
