package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"reaction-counter/reactions/application"
	"reaction-counter/reactions/domain"
)

func newGetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Short: "Ensure a slug's record exists and print its reaction count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			res, err := application.Service{Store: be.store}.Fetch(cmd.Context(), domain.Slug(args[0]))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(map[string]int{"reactions": res.Record.Reactions})
		},
	}
}
