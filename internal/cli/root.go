// Package cli provides the pressroom command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mickamy/pressroom/internal/config"
	"github.com/mickamy/pressroom/internal/logging"
	"github.com/mickamy/pressroom/internal/store"
)

// Version is set at build time.
var Version = "dev"

// env carries the loaded configuration to subcommands.
type env struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "pressroom",
		Short: "Authors, magazines and the articles that link them",
		Long: `pressroom stores authors, magazines and articles in a relational
database and answers questions about who wrote for which magazine.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := config.Load(e.cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = logging.New(cfg.Log, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&e.cfgFile, "config", "", "config file (default: ./"+config.FileName+")")
	config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newMigrateCommand(e))
	rootCmd.AddCommand(newSeedCommand(e))
	rootCmd.AddCommand(newReportCommand(e))

	return rootCmd
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx) //nolint:wrapcheck // cobra reports the error
}

// openStore opens and migrates the configured store.
func (e *env) openStore(ctx context.Context) (*store.Store, error) {
	s, err := store.Open(ctx, e.cfg.Database, e.logger)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to prepare store: %w", err)
	}
	return s, nil
}
