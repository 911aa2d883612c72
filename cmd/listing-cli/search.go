package main

import (
	"fmt"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"

	"github.com/spf13/cobra"
)

func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties with filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}

			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")
			pages, _ := cmd.Flags().GetInt("pages")
			if limit <= 0 {
				limit = rt.cfg.CatalogApi.PageSize
			}

			controller := usecase.NewListingController(rt.client, usecase.ListingControllerConfig{
				PageSize:       limit,
				RequestTimeout: rt.cfg.CatalogApi.Timeout,
				InfiniteScroll: pages > 1,
			})

			state := controller.Search(rt.ctx, filters, page)
			for loaded := 1; loaded < pages && controller.HasMore(); loaded++ {
				state = controller.LoadMore(rt.ctx)
				if state.Error != "" {
					break
				}
			}

			if state.Error != "" {
				rt.logger.Warn("Search finished with error", port.Fields{"error": state.Error})
				if len(state.Properties) == 0 {
					return fmt.Errorf("search failed: %s", state.Error)
				}
				fmt.Printf("Warning: %s\n\n", state.Error)
			}

			printProperties(state.Properties)
			if state.Pagination != nil {
				fmt.Printf("\nPage %d of %d (%d properties total)",
					state.Pagination.CurrentPage, state.Pagination.TotalPages, state.Pagination.TotalItems)
				if state.HasMore {
					fmt.Printf(", more available with --page %d", state.Pagination.CurrentPage+1)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().String("location", "", "City, neighborhood or free text")
	cmd.Flags().Float64("min-price", 0, "Minimum price")
	cmd.Flags().Float64("max-price", 0, "Maximum price")
	cmd.Flags().Int("bedrooms", 0, "Minimum number of bedrooms")
	cmd.Flags().String("category", "", "apartment, house, small-farm, land, commercial-hall, two-story-house")
	cmd.Flags().String("availability", "", "for-sale, for-rent, seasonal, both")
	cmd.Flags().Int("page", 1, "Page to start from")
	cmd.Flags().Int("limit", 0, "Page size (defaults to LISTING_PAGE_SIZE)")
	cmd.Flags().Int("pages", 1, "Number of pages to load with infinite scroll")

	return cmd
}

// filtersFromFlags собирает фильтры только из явно переданных флагов,
// в порядке location, цены, спальни, категория, доступность.
func filtersFromFlags(cmd *cobra.Command) (domain.SearchFilters, error) {
	var filters domain.SearchFilters
	flags := cmd.Flags()

	if flags.Changed("location") {
		v, _ := flags.GetString("location")
		filters = filters.WithLocation(v)
	}
	if flags.Changed("min-price") {
		v, _ := flags.GetFloat64("min-price")
		filters = filters.WithMinPrice(v)
	}
	if flags.Changed("max-price") {
		v, _ := flags.GetFloat64("max-price")
		filters = filters.WithMaxPrice(v)
	}
	if flags.Changed("bedrooms") {
		v, _ := flags.GetInt("bedrooms")
		filters = filters.WithBedrooms(v)
	}
	if flags.Changed("category") {
		v, _ := flags.GetString("category")
		if !domain.Category(v).IsValid() {
			return domain.SearchFilters{}, fmt.Errorf("unknown category %q", v)
		}
		filters = filters.WithCategory(domain.Category(v))
	}
	if flags.Changed("availability") {
		v, _ := flags.GetString("availability")
		if !domain.Availability(v).IsValid() {
			return domain.SearchFilters{}, fmt.Errorf("unknown availability %q", v)
		}
		filters = filters.WithAvailability(domain.Availability(v))
	}
	return filters, nil
}
