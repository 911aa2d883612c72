package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "listing-cli",
		Short:         "Browse the property catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("env-file", "", "Path to .env file")
	rootCmd.PersistentFlags().String("api-url", "", "Catalog API base URL (overrides CATALOG_API_URL)")

	rootCmd.AddCommand(
		SearchCmd(),
		FeaturedCmd(),
		ShowCmd(),
		FavoritesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
