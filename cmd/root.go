// Package cmd contains the narrative CLI commands
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buffos/go-narrative/internal/config"
	applog "github.com/buffos/go-narrative/internal/logger"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "narrative",
	Short: "Three-slide data narrative renderer",
	Long: `narrative renders a three-slide scrollytelling narrative: a grouped
horizontal bar chart comparing 2019 and 2022 time-use statistics, with a
caption, chart title and two callouts per slide.

Example usage:
  narrative render 1 svg -o slide1.svg   # Render one slide
  narrative export out/ --formats svg,png # Render every slide
  narrative serve                        # Serve the slides over HTTP
  narrative slides                       # List the slides`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = applog.New(level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded",
			zap.String("data_dir", cfg.Data.Dir),
			zap.String("data_base_url", cfg.Data.BaseURL),
			zap.String("deck_file", cfg.Deck.File),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .narrative.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
