package main

import (
	"listing-service/internal/core/usecase"

	"github.com/spf13/cobra"
)

func FeaturedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show featured properties (retries with backoff)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			featured := usecase.NewFetchFeaturedUseCase(rt.client, usecase.FetchFeaturedConfig{
				MaxRetries:       rt.cfg.Featured.MaxRetries,
				BaseDelay:        rt.cfg.Featured.BaseDelay,
				PhotoFallbackURL: rt.cfg.CatalogApi.PhotoFallbackURL,
			})

			printProperties(featured.Execute(rt.ctx))
			return nil
		},
	}
	return cmd
}
