package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"listing-service/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchListings_CapsPageSize(t *testing.T) {
	catalog := &fakeCatalog{pages: []*domain.ListingPage{pageOf(1, 1, 1, "a")}}
	uc := NewSearchListingsUseCase(catalog, time.Second, 50)

	state := uc.Execute(context.Background(), domain.SearchFilters{}, 1, 500)

	assert.Equal(t, []string{"a"}, ids(state.Properties))
	require.Equal(t, 1, catalog.listCallCount())
	assert.Equal(t, 50, catalog.listCalls[0].limit)
}

func TestSearchListings_ReturnsErrorInState(t *testing.T) {
	catalog := &fakeCatalog{listErrs: []error{errors.New("catalog down")}}
	uc := NewSearchListingsUseCase(catalog, time.Second, 0)

	state := uc.Execute(context.Background(), domain.SearchFilters{}, 2, 12)

	assert.Equal(t, "catalog down", state.Error)
	assert.Empty(t, state.Properties)
	assert.Equal(t, 2, catalog.listCalls[0].page)
}

func TestGetProperty_NotFound(t *testing.T) {
	uc := NewGetPropertyUseCase(&fakeCatalog{})

	_, err := uc.Execute(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestUpdateProperty_PreservesUntouchedFields(t *testing.T) {
	condo := 300.0
	catalog := &fakeCatalog{properties: map[string]domain.Property{
		"REF-1": {
			ID:               "p1",
			Reference:        "REF-1",
			Title:            "Casa antiga",
			Category:         domain.CategoryHouse,
			Bedrooms:         3,
			Price:            500000,
			CondominiumPrice: &condo,
			Tags:             []string{"garden"},
			Owner:            domain.UnresolvedOwner("u1"),
		},
	}}
	uc := NewUpdatePropertyUseCase(catalog, catalog)

	updated, err := uc.Execute(context.Background(), "token", "REF-1", []byte(`{"title":"Casa reformada","price":550000}`))
	require.NoError(t, err)

	require.Len(t, catalog.updated, 1)
	sent := catalog.updated[0]
	assert.Equal(t, "REF-1", catalog.updatedKey)
	assert.Equal(t, "Casa reformada", sent.Title)
	assert.Equal(t, 550000.0, sent.Price)
	assert.Equal(t, 3, sent.Bedrooms)
	assert.Equal(t, domain.CategoryHouse, sent.Category)
	assert.Equal(t, []string{"garden"}, sent.Tags)
	assert.Equal(t, "u1", sent.OwnerID)
	require.NotNil(t, sent.CondominiumPrice)
	assert.Equal(t, 300.0, *sent.CondominiumPrice)
	assert.NotNil(t, sent.Photos)
	assert.Empty(t, sent.Photos)
	assert.Equal(t, "Casa reformada", updated.Title)
}

func TestUpdateProperty_DoesNotPersistPlaceholderPhoto(t *testing.T) {
	catalog := &fakeCatalog{properties: map[string]domain.Property{
		"p1": {ID: "p1", Title: "Casa", Photos: []string{}},
		"p2": {ID: "p2", Title: "Casa", Photos: []string{"/fotos/1.jpg", "/fotos/2.jpg"}},
	}}
	uc := NewUpdatePropertyUseCase(catalog, catalog)

	current, err := NewGetPropertyUseCase(catalog).Execute(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, []string{domain.DefaultPhotoFallbackURL}, current.Photos)

	_, err = uc.Execute(context.Background(), "token", "p1", []byte(`{"title":"Casa nova"}`))
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), "token", "p2", []byte(`{"title":"Casa nova"}`))
	require.NoError(t, err)

	require.Len(t, catalog.updated, 2)
	assert.Empty(t, catalog.updated[0].Photos)
	assert.NotContains(t, catalog.updated[0].Photos, domain.DefaultPhotoFallbackURL)
	assert.Equal(t, []string{"/fotos/1.jpg", "/fotos/2.jpg"}, catalog.updated[1].Photos)

	_, err = uc.Execute(context.Background(), "token", "p1", []byte(`{"photos":["/fotos/nova.jpg"]}`))
	require.NoError(t, err)
	require.Len(t, catalog.updated, 3)
	assert.Equal(t, []string{"/fotos/nova.jpg"}, catalog.updated[2].Photos)
}

func TestUpdateProperty_InvalidChanges(t *testing.T) {
	catalog := &fakeCatalog{properties: map[string]domain.Property{"p1": {ID: "p1"}}}
	uc := NewUpdatePropertyUseCase(catalog, catalog)

	_, err := uc.Execute(context.Background(), "token", "p1", []byte(`{"bedrooms":"three"}`))

	assert.ErrorIs(t, err, domain.ErrInvalidChanges)
	assert.Empty(t, catalog.updated)
}

func TestUpdateProperty_NotFound(t *testing.T) {
	catalog := &fakeCatalog{}
	uc := NewUpdatePropertyUseCase(catalog, catalog)

	_, err := uc.Execute(context.Background(), "token", "ghost", []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestApplyChanges_ExplicitNullClearsPointer(t *testing.T) {
	condo := 100.0
	input := domain.PropertyInput{Title: "A", CondominiumPrice: &condo}

	out, err := ApplyChanges(input, []byte(`{"condominiumPrice":null}`))
	require.NoError(t, err)
	assert.Nil(t, out.CondominiumPrice)
	assert.Equal(t, "A", out.Title)

	out, err = ApplyChanges(input, nil)
	require.NoError(t, err)
	assert.Equal(t, input, out)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"condominiumPrice":100`)
}
