package main

import (
	"errors"
	"fmt"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/usecase"

	"github.com/spf13/cobra"
)

func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <reference|id>",
		Short: "Show a single property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			property, err := usecase.NewGetPropertyUseCase(rt.client).Execute(rt.ctx, args[0])
			if errors.Is(err, domain.ErrPropertyNotFound) {
				return fmt.Errorf("property %q not found", args[0])
			}
			if err != nil {
				return err
			}

			favorite := false
			if favorites, closeStore, err := loadFavorites(rt); err == nil {
				favorite = favorites.IsFavorite(property.ID)
				closeStore()
			}

			printProperty(*property, favorite)
			return nil
		},
	}
	return cmd
}
