package main

import (
	"fmt"
	"listing-service/internal"
	"listing-service/internal/core/usecase"

	"github.com/spf13/cobra"
)

func FavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite properties",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorite property ids",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withFavorites(cmd, func(rt *session, favorites *usecase.FavoritesController) error {
					ids := favorites.List()
					if len(ids) == 0 {
						fmt.Println("No favorites yet.")
						return nil
					}
					for _, id := range ids {
						fmt.Println(id)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <property-id>",
			Short: "Add a property to favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withFavorites(cmd, func(rt *session, favorites *usecase.FavoritesController) error {
					if err := favorites.Add(rt.ctx, args[0]); err != nil {
						return err
					}
					fmt.Printf("Added %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <property-id>",
			Short: "Remove a property from favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withFavorites(cmd, func(rt *session, favorites *usecase.FavoritesController) error {
					if err := favorites.Remove(rt.ctx, args[0]); err != nil {
						return err
					}
					fmt.Printf("Removed %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "toggle <property-id>",
			Short: "Toggle favorite state of a property",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withFavorites(cmd, func(rt *session, favorites *usecase.FavoritesController) error {
					favorite, err := favorites.Toggle(rt.ctx, args[0])
					if err != nil {
						return err
					}
					fmt.Printf("%s favorite: %t\n", args[0], favorite)
					return nil
				})
			},
		},
	)

	return cmd
}

func withFavorites(cmd *cobra.Command, fn func(rt *session, favorites *usecase.FavoritesController) error) error {
	rt, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	favorites, closeStore, err := loadFavorites(rt)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(rt, favorites)
}

func loadFavorites(rt *session) (*usecase.FavoritesController, func(), error) {
	store, closeStore, err := internal.NewFavoritesStore(rt.ctx, rt.cfg, rt.logger)
	if err != nil {
		return nil, nil, err
	}

	favorites := usecase.NewFavoritesController(store)
	if err := favorites.Load(rt.ctx); err != nil {
		closeStore()
		return nil, nil, err
	}
	return favorites, closeStore, nil
}
