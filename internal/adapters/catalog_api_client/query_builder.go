package catalog_api_client

import (
	"listing-service/internal/core/domain"
	"net/url"
	"strconv"
	"strings"
)

// QueryParam - одна пара ключ/значение query-строки.
type QueryParam struct {
	Key   string
	Value string
}

// QueryParams - упорядоченный набор параметров. url.Values сортирует ключи
// при Encode, поэтому порядок храним сами.
type QueryParams []QueryParam

// Get возвращает значение параметра и признак его наличия.
func (q QueryParams) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Encode собирает query-строку в порядке добавления параметров.
func (q QueryParams) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// BuildListingQuery переводит фильтры в параметры запроса к /properties:
// сначала page и limit, затем каждое заданное поле фильтра под своим именем.
// Значения не валидируются, это делает бэкенд.
func BuildListingQuery(filters domain.SearchFilters, page, limit int) QueryParams {
	fields := filters.Fields()
	params := make(QueryParams, 0, 2+len(fields))
	params = append(params,
		QueryParam{Key: "page", Value: strconv.Itoa(page)},
		QueryParam{Key: "limit", Value: strconv.Itoa(limit)},
	)

	for _, field := range fields {
		value, ok := filterValue(filters, field)
		if !ok {
			continue
		}
		params = append(params, QueryParam{Key: string(field), Value: value})
	}
	return params
}

func filterValue(f domain.SearchFilters, field domain.FilterField) (string, bool) {
	if !f.IsSet(field) {
		return "", false
	}
	switch field {
	case domain.FilterLocation:
		return *f.Location, true
	case domain.FilterMinPrice:
		return formatNumber(*f.MinPrice), true
	case domain.FilterMaxPrice:
		return formatNumber(*f.MaxPrice), true
	case domain.FilterBedrooms:
		return strconv.Itoa(*f.Bedrooms), true
	case domain.FilterAvailability:
		return string(*f.Availability), true
	case domain.FilterCategory:
		return string(*f.Category), true
	}
	return "", false
}

// formatNumber - десятичная запись без разделителей разрядов и экспоненты.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
