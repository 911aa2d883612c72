package main

import (
	"fmt"
	"listing-service/internal/core/domain"
)

func printProperties(properties []domain.Property) {
	if len(properties) == 0 {
		fmt.Println("No properties found.")
		return
	}

	fmt.Printf("%-24s  %-40s  %-16s  %-18s  %-4s\n", "Key", "Title", "Category", "Price", "Beds")
	for _, p := range properties {
		fmt.Printf("%-24s  %-40s  %-16s  %-18s  %-4d\n",
			truncate(p.RouteKey(), 24),
			truncate(p.Title, 40),
			p.Category,
			domain.FormatBRL(p.Price),
			p.Bedrooms,
		)
	}
}

func printProperty(p domain.Property, favorite bool) {
	fmt.Printf("%s\n", p.Title)
	fmt.Printf("  Key:          %s\n", p.RouteKey())
	fmt.Printf("  Category:     %s (%s)\n", p.Category, p.Availability)
	fmt.Printf("  Price:        %s\n", domain.FormatBRL(p.Price))
	if p.CondominiumPrice != nil {
		fmt.Printf("  Condominium:  %s\n", domain.FormatBRL(*p.CondominiumPrice))
	}
	fmt.Printf("  Rooms:        %d bedrooms, %d bathrooms, %d living rooms\n", p.Bedrooms, p.Bathrooms, p.LivingRooms)
	fmt.Printf("  Area:         %.0f m2 total, %.0f m2 useful\n", p.TotalArea, p.UsefulArea)

	fmt.Printf("  Address:      %s\n", p.PublicAddress())
	fmt.Printf("  Cover photo:  %s\n", p.CoverPhoto())
	if summary, ok := p.Owner.Summary(); ok {
		fmt.Printf("  Owner:        %s <%s>\n", summary.Name, summary.Email)
	} else if id := p.Owner.ID(); id != "" {
		fmt.Printf("  Owner:        %s\n", id)
	}
	fmt.Printf("  Favorite:     %t\n", favorite)
	if p.Description != "" {
		fmt.Printf("\n%s\n", p.Description)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
