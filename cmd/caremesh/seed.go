package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caremesh/caremesh/store"
)

func newSeedCmd() *cobra.Command {
	var (
		users int
		days  int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with synthetic users and health data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}

			logger.Info("seed.start", "db_path", cfg.DBPath, "users", users, "days", days)

			err = store.Seed(cmd.Context(), st, func(o *store.SeedOptions) {
				o.Users = users
				o.Days = days
				if seed != 0 {
					o.Seed = seed
				}
			})
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users with %d days of history into %s\n", users, days, cfg.DBPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&users, "users", 100, "number of users to generate")
	cmd.Flags().IntVar(&days, "days", 30, "days of reading and mood history per user")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")

	return cmd
}
