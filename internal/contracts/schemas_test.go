package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "ListingPageResponse/1.0.0", generateKeyFromPath("listing-page/v1.json"))
	assert.Equal(t, "PropertyResponse/2.0.0", generateKeyFromPath("property/v2.json"))
	assert.Empty(t, generateKeyFromPath("v1.json"))
}

func TestSchemasAreCompiled(t *testing.T) {
	require.Contains(t, compiledSchemas, "ListingPageResponse/1.0.0")
	require.Contains(t, compiledSchemas, "PropertyResponse/1.0.0")
}

func TestValidateResponse_ListingPage(t *testing.T) {
	valid := `{
		"properties": [
			{"_id": "1", "price": 100, "ownerId": "u1", "photos": []},
			{"id": "2", "ownerId": {"_id": "u2", "name": "Ana"}, "photos": null}
		],
		"pagination": {"currentPage": 1, "totalPages": 3, "totalItems": 30}
	}`
	assert.NoError(t, ValidateResponse(ListingPageResponse, "1.0.0", []byte(valid)))

	withoutPagination := `{"properties": []}`
	assert.NoError(t, ValidateResponse(ListingPageResponse, "1.0.0", []byte(withoutPagination)))
}

func TestValidateResponse_ListingPageRejectsBadShapes(t *testing.T) {
	cases := map[string]string{
		"missing properties":     `{"data": []}`,
		"properties not array":   `{"properties": {"id": "1"}}`,
		"negative price":         `{"properties": [{"id": "1", "price": -5}]}`,
		"ownerId number":         `{"properties": [{"id": "1", "ownerId": 7}]}`,
		"incomplete pagination":  `{"properties": [], "pagination": {"currentPage": 1}}`,
		"non-integer pagination": `{"properties": [], "pagination": {"currentPage": 1.5, "totalPages": 2, "totalItems": 3}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidateResponse(ListingPageResponse, "1.0.0", []byte(body)))
		})
	}
}

func TestValidateResponse_Errors(t *testing.T) {
	err := ValidateResponse("UnknownResponse", "1.0.0", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateResponse(PropertyResponse, "1.0.0", []byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid JSON")
}
