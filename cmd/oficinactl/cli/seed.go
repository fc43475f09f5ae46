package cli

import (
	"fmt"

	"oficina-api/internal/repository"
	"oficina-api/internal/seed"
	"oficina-api/pkg/postgres"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create default categories and the first manager account",
		Long: `Create the default transaction categories and, when
SEED_MANAGER_PASSWORD is set, a manager account for SEED_MANAGER_EMAIL.
Existing rows are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, pool, log, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if !skipMigrate {
				if err := postgres.Migrate(ctx, pool, log); err != nil {
					return err
				}
			}

			seeder := seed.New(
				repository.NewCategoryRepository(pool, log),
				repository.NewEmployeeRepository(pool, log),
				log,
			)
			res, err := seeder.Run(ctx, cfg.Seed)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Categories created: %d\n", res.Categories)
			if res.ManagerCreated {
				fmt.Fprintf(cmd.OutOrStdout(), "Manager created: %s\n", cfg.Seed.ManagerEmail)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply migrations first")

	return cmd
}
