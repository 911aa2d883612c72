package domain

import (
	"strings"
)

// Category - тип объекта недвижимости.
type Category string

const (
	CategoryApartment      Category = "apartment"
	CategoryHouse          Category = "house"
	CategorySmallFarm      Category = "small-farm"
	CategoryLand           Category = "land"
	CategoryCommercialHall Category = "commercial-hall"
	CategoryTwoStoryHouse  Category = "two-story-house"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryApartment, CategoryHouse, CategorySmallFarm, CategoryLand, CategoryCommercialHall, CategoryTwoStoryHouse:
		return true
	}
	return false
}

// Availability - тип сделки.
type Availability string

const (
	AvailabilityForSale  Availability = "for-sale"
	AvailabilityForRent  Availability = "for-rent"
	AvailabilitySeasonal Availability = "seasonal"
	AvailabilityBoth     Availability = "both"
)

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityForSale, AvailabilityForRent, AvailabilitySeasonal, AvailabilityBoth:
		return true
	}
	return false
}

type SolarPosition string

const (
	SolarPositionMorning   SolarPosition = "morning"
	SolarPositionAfternoon SolarPosition = "afternoon"
)

// AddressVisibility определяет, какая часть адреса видна публично.
type AddressVisibility string

const (
	AddressVisibilityFull               AddressVisibility = "full"
	AddressVisibilityStreetNeighborhood AddressVisibility = "street-neighborhood"
	AddressVisibilityNeighborhoodOnly   AddressVisibility = "neighborhood-only"
	AddressVisibilityHidden             AddressVisibility = "hidden"
)

// DefaultPhotoFallbackURL подставляется, когда у объекта нет фотографий.
const DefaultPhotoFallbackURL = "/images/property-placeholder.jpg"

type Address struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Public возвращает строку адреса с учетом настройки видимости.
// Для hidden показывается только город и штат.
func (a Address) Public(visibility AddressVisibility) string {
	cityState := joinNonEmpty(" - ", a.City, a.State)

	switch visibility {
	case AddressVisibilityFull, "":
		street := joinNonEmpty(", ", a.Street, a.Number, a.Complement)
		return joinNonEmpty(", ", street, a.Neighborhood, cityState)
	case AddressVisibilityStreetNeighborhood:
		return joinNonEmpty(", ", a.Street, a.Neighborhood, cityState)
	case AddressVisibilityNeighborhoodOnly:
		return joinNonEmpty(", ", a.Neighborhood, cityState)
	default:
		return cityState
	}
}

// Masked возвращает копию адреса, в которой оставлены только видимые публично части.
func (a Address) Masked(visibility AddressVisibility) Address {
	switch visibility {
	case AddressVisibilityFull, "":
		return a
	case AddressVisibilityStreetNeighborhood:
		return Address{Street: a.Street, Neighborhood: a.Neighborhood, City: a.City, State: a.State}
	case AddressVisibilityNeighborhoodOnly:
		return Address{Neighborhood: a.Neighborhood, City: a.City, State: a.State}
	default:
		return Address{City: a.City, State: a.State}
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Property - read-модель объекта, которую отдает бэкенд каталога.
type Property struct {
	ID        string `json:"id,omitempty"`
	LegacyID  string `json:"_id,omitempty"` // идентификатор из БД до алиаса в id
	Reference string `json:"reference,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Category     Category     `json:"category"`
	Availability Availability `json:"availability"`

	Bedrooms      int           `json:"bedrooms"`
	Bathrooms     int           `json:"bathrooms"`
	LivingRooms   int           `json:"livingRooms"`
	TotalArea     float64       `json:"totalArea"`
	UsefulArea    float64       `json:"usefulArea"`
	SolarPosition SolarPosition `json:"solarPosition,omitempty"`

	Price            float64  `json:"price"`
	CondominiumPrice *float64 `json:"condominiumPrice,omitempty"`

	Address           Address           `json:"address"`
	AddressVisibility AddressVisibility `json:"addressVisibility,omitempty"`

	Photos    []string `json:"photos"`
	VideoLink string   `json:"videoLink,omitempty"`

	CondominiumFeatures []string `json:"condominiumFeatures,omitempty"`
	GeneralFeatures     []string `json:"generalFeatures,omitempty"`
	ProximityFeatures   []string `json:"proximityFeatures,omitempty"`
	Tags                []string `json:"tags,omitempty"`

	IsActive   bool `json:"isActive"`
	IsFeatured bool `json:"isFeatured"`

	Owner OwnerRef `json:"ownerId"`

	CreatedAt Timestamp  `json:"createdAt"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`

	// photosDefaulted выставляется, когда Normalize подставил заглушку вместо пустого списка фото.
	photosDefaulted bool
}

// RouteKey возвращает ключ для маршрутизации и поиска: reference, затем id, затем _id.
func (p Property) RouteKey() string {
	switch {
	case p.Reference != "":
		return p.Reference
	case p.ID != "":
		return p.ID
	default:
		return p.LegacyID
	}
}

// Normalize приводит объект к инвариантам клиентской модели:
// id берется из _id, если явного нет, а пустой список фото заменяется заглушкой.
func (p *Property) Normalize(fallbackPhotoURL string) {
	if p.ID == "" {
		p.ID = p.LegacyID
	}
	if fallbackPhotoURL == "" {
		fallbackPhotoURL = DefaultPhotoFallbackURL
	}
	if len(p.Photos) == 0 {
		p.Photos = []string{fallbackPhotoURL}
		p.photosDefaulted = true
	}
}

// CoverPhoto - первая фотография объекта.
func (p Property) CoverPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}

// PublicAddress - адрес для публичной карточки.
func (p Property) PublicAddress() string {
	return p.Address.Public(p.AddressVisibility)
}

// NormalizeProperties применяет Normalize к каждому элементу среза.
func NormalizeProperties(items []Property, fallbackPhotoURL string) []Property {
	for i := range items {
		items[i].Normalize(fallbackPhotoURL)
	}
	return items
}
