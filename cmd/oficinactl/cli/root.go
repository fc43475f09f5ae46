// Package cli implements oficinactl, the maintenance tool of the API.
package cli

import (
	"context"
	"fmt"

	"oficina-api/pkg/config"
	"oficina-api/pkg/logger"
	"oficina-api/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// SilentError is returned once the command already told the user what went
// wrong.
type SilentError struct {
	Err error
}

func (e *SilentError) Error() string {
	return e.Err.Error()
}

func (e *SilentError) Unwrap() error {
	return e.Err
}

type rootOptions struct {
	logLevel string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "oficinactl",
		Short:         "Maintenance commands for the oficina API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPeriodCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
	)
	return cmd
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	return logger.New(o.logLevel, logger.FormatConsole)
}

// connect loads the configuration and opens the database pool. Callers close
// the pool.
func (o *rootOptions) connect(ctx context.Context) (*config.Config, *pgxpool.Pool, *zap.Logger, error) {
	log, err := o.logger()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := postgres.NewPool(ctx, &cfg.Database, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, pool, log, nil
}
