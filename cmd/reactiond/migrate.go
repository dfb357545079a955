package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the reactions table and its unique slug index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			be, err := openBackend(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = be.close() }()

			if err := be.migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info("migration complete", "store", cfg.Store.Backend)
			return nil
		},
	}
}
