package domain

// FilterField - имя поля фильтра, оно же имя query-параметра.
type FilterField string

const (
	FilterLocation     FilterField = "location"
	FilterMinPrice     FilterField = "minPrice"
	FilterMaxPrice     FilterField = "maxPrice"
	FilterBedrooms     FilterField = "bedrooms"
	FilterAvailability FilterField = "availability"
	FilterCategory     FilterField = "category"
)

// canonicalFilterOrder используется для полей, выставленных напрямую, минуя With*.
var canonicalFilterOrder = []FilterField{
	FilterLocation,
	FilterMinPrice,
	FilterMaxPrice,
	FilterBedrooms,
	FilterAvailability,
	FilterCategory,
}

// SearchFilters - разреженный набор фильтров поиска. nil означает "не задано".
// Порядок, в котором поля выставлялись через With*, сохраняется и определяет
// порядок query-параметров.
type SearchFilters struct {
	Location     *string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Availability *Availability
	Category     *Category

	order []FilterField
}

func (f SearchFilters) WithLocation(v string) SearchFilters {
	f.Location = &v
	return f.touch(FilterLocation)
}

func (f SearchFilters) WithMinPrice(v float64) SearchFilters {
	f.MinPrice = &v
	return f.touch(FilterMinPrice)
}

func (f SearchFilters) WithMaxPrice(v float64) SearchFilters {
	f.MaxPrice = &v
	return f.touch(FilterMaxPrice)
}

func (f SearchFilters) WithBedrooms(v int) SearchFilters {
	f.Bedrooms = &v
	return f.touch(FilterBedrooms)
}

func (f SearchFilters) WithAvailability(v Availability) SearchFilters {
	f.Availability = &v
	return f.touch(FilterAvailability)
}

func (f SearchFilters) WithCategory(v Category) SearchFilters {
	f.Category = &v
	return f.touch(FilterCategory)
}

func (f SearchFilters) touch(field FilterField) SearchFilters {
	for _, existing := range f.order {
		if existing == field {
			return f
		}
	}
	// копируем, чтобы не делить backing array между значениями
	order := make([]FilterField, len(f.order), len(f.order)+1)
	copy(order, f.order)
	f.order = append(order, field)
	return f
}

// IsSet сообщает, задано ли поле непустым значением.
func (f SearchFilters) IsSet(field FilterField) bool {
	switch field {
	case FilterLocation:
		return f.Location != nil && *f.Location != ""
	case FilterMinPrice:
		return f.MinPrice != nil
	case FilterMaxPrice:
		return f.MaxPrice != nil
	case FilterBedrooms:
		return f.Bedrooms != nil
	case FilterAvailability:
		return f.Availability != nil && *f.Availability != ""
	case FilterCategory:
		return f.Category != nil && *f.Category != ""
	}
	return false
}

// Fields возвращает заданные поля: сначала в порядке установки, затем
// выставленные напрямую в каноническом порядке.
func (f SearchFilters) Fields() []FilterField {
	fields := make([]FilterField, 0, len(canonicalFilterOrder))
	seen := make(map[FilterField]bool, len(canonicalFilterOrder))

	for _, field := range f.order {
		if !seen[field] && f.IsSet(field) {
			fields = append(fields, field)
		}
		seen[field] = true
	}
	for _, field := range canonicalFilterOrder {
		if !seen[field] && f.IsSet(field) {
			fields = append(fields, field)
		}
	}
	return fields
}

// IsEmpty - true, если не задано ни одного фильтра.
func (f SearchFilters) IsEmpty() bool {
	return len(f.Fields()) == 0
}
