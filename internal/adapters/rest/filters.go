package rest

import (
	"fmt"
	"listing-service/internal/core/domain"
	"net/url"
	"strconv"
	"strings"
)

// parseSearchFilters читает фильтры из сырой query-строки, сохраняя порядок
// параметров: url.Values его теряет, а от порядка зависит запрос к каталогу.
// Пустые значения пропускаются, как и незнакомые ключи (page, limit и т.п.).
func parseSearchFilters(rawQuery string) (domain.SearchFilters, error) {
	var filters domain.SearchFilters

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return domain.SearchFilters{}, fmt.Errorf("invalid query key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return domain.SearchFilters{}, fmt.Errorf("invalid value for %q: %w", key, err)
		}
		if value == "" {
			continue
		}

		switch domain.FilterField(key) {
		case domain.FilterLocation:
			filters = filters.WithLocation(value)
		case domain.FilterMinPrice:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return domain.SearchFilters{}, fmt.Errorf("minPrice must be a number")
			}
			filters = filters.WithMinPrice(v)
		case domain.FilterMaxPrice:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return domain.SearchFilters{}, fmt.Errorf("maxPrice must be a number")
			}
			filters = filters.WithMaxPrice(v)
		case domain.FilterBedrooms:
			v, err := strconv.Atoi(value)
			if err != nil {
				return domain.SearchFilters{}, fmt.Errorf("bedrooms must be an integer")
			}
			filters = filters.WithBedrooms(v)
		case domain.FilterAvailability:
			filters = filters.WithAvailability(domain.Availability(value))
		case domain.FilterCategory:
			filters = filters.WithCategory(domain.Category(value))
		}
	}

	return filters, nil
}

func parsePositiveInt(query url.Values, key string, defaultValue int) int {
	v, err := strconv.Atoi(query.Get(key))
	if err != nil || v < 1 {
		return defaultValue
	}
	return v
}
