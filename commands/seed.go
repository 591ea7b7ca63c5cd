package commands

import (
	"context"
	"fmt"
	"time"

	"exale/config"
	"exale/connection"
	"exale/services"
	"exale/store"

	"github.com/spf13/cobra"
)

func addSeed(topLevel *cobra.Command) {
	var backend string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write demo records to the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&backend, "backend", "", "document backend: firestore or sqlite")

	seed := func(what string, run func(ctx context.Context, st store.Store) (int, error)) *cobra.Command {
		return &cobra.Command{
			Use:   what,
			Short: fmt.Sprintf("Seed demo %s", what),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				if backend != "" {
					cfg.Backend = backend
				}
				if cfg.Backend == config.BackendMemory {
					return fmt.Errorf("seeding the memory backend has no effect")
				}
				ctx := context.Background()
				b, err := connection.OpenBackend(ctx, cfg)
				if err != nil {
					return err
				}
				defer b.Store.Close()

				n, err := run(ctx, b.Store)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d %s\n", n, what)
				return nil
			},
		}
	}

	cmd.AddCommand(seed("tasks", func(ctx context.Context, st store.Store) (int, error) {
		return services.SeedTasks(ctx, st, time.Now())
	}))
	cmd.AddCommand(seed("users", services.SeedUsers))
	topLevel.AddCommand(cmd)
}
