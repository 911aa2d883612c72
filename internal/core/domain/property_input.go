package domain

// PropertyInput - write-модель объекта: то, что форма редактирования отправляет на бэкенд.
// Содержит все редактируемые поля Property, чтобы правка одного поля не теряла остальные.
type PropertyInput struct {
	Reference   string `json:"reference,omitempty"`
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

	OwnerID string `json:"ownerId,omitempty"`
}

// ToInput проецирует read-модель в write-модель. Срезы и указатели копируются,
// чтобы правки формы не меняли исходный объект.
// Заглушка фото в write-модель не попадает.
func (p Property) ToInput() PropertyInput {
	photos := copyStrings(p.Photos)
	if p.photosDefaulted {
		photos = []string{}
	}
	return PropertyInput{
		Reference:           p.Reference,
		Title:               p.Title,
		Description:         p.Description,
		Category:            p.Category,
		Availability:        p.Availability,
		Bedrooms:            p.Bedrooms,
		Bathrooms:           p.Bathrooms,
		LivingRooms:         p.LivingRooms,
		TotalArea:           p.TotalArea,
		UsefulArea:          p.UsefulArea,
		SolarPosition:       p.SolarPosition,
		Price:               p.Price,
		CondominiumPrice:    copyFloatPtr(p.CondominiumPrice),
		Address:             p.Address,
		AddressVisibility:   p.AddressVisibility,
		Photos:              photos,
		VideoLink:           p.VideoLink,
		CondominiumFeatures: copyStrings(p.CondominiumFeatures),
		GeneralFeatures:     copyStrings(p.GeneralFeatures),
		ProximityFeatures:   copyStrings(p.ProximityFeatures),
		Tags:                copyStrings(p.Tags),
		IsActive:            p.IsActive,
		IsFeatured:          p.IsFeatured,
		OwnerID:             p.Owner.ID(),
	}
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

func copyFloatPtr(src *float64) *float64 {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}
