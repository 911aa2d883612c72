package catalog_api_client

import (
	"context"
	"encoding/json"
	"io"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) ObserveRequest(endpoint, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, endpoint+":"+outcome)
}

func (m *recordingMetrics) IncFeaturedAttempt(string) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingMetrics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	metrics := &recordingMetrics{}
	return NewClient(Config{BaseURL: server.URL + "/api/", Metrics: metrics}), metrics
}

func TestClient_ListPropertiesSendsOrderedQuery(t *testing.T) {
	var gotPath, gotQuery, gotTrace string
	client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotTrace = r.Header.Get("X-Trace-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"properties": [{"_id": "a1", "title": "Casa", "photos": []}],
			"pagination": {"currentPage": 2, "totalPages": 3, "totalItems": 25}
		}`)
	})

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	filters := domain.SearchFilters{}.WithCategory(domain.CategoryHouse).WithMinPrice(300000)

	page, err := client.ListProperties(ctx, filters, 2, 12)
	require.NoError(t, err)

	assert.Equal(t, "/api/properties", gotPath)
	assert.Equal(t, "page=2&limit=12&category=house&minPrice=300000", gotQuery)
	assert.Equal(t, "trace-1", gotTrace)

	require.Len(t, page.Properties, 1)
	assert.Equal(t, "a1", page.Properties[0].ID)
	assert.Equal(t, []string{domain.DefaultPhotoFallbackURL}, page.Properties[0].Photos)

	require.NotNil(t, page.Pagination)
	assert.True(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPrevPage)
	assert.Equal(t, []string{"list:success"}, metrics.outcomes)
}

func TestClient_ListPropertiesWithoutPagination(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"properties": []}`)
	})

	page, err := client.ListProperties(context.Background(), domain.SearchFilters{}, 1, 12)
	require.NoError(t, err)

	assert.NotNil(t, page.Properties)
	assert.Empty(t, page.Properties)
	assert.Nil(t, page.Pagination)
}

func TestClient_ListPropertiesUnexpectedShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": []}`)
	})

	_, err := client.ListProperties(context.Background(), domain.SearchFilters{}, 1, 12)
	assert.ErrorIs(t, err, domain.ErrUnexpectedShape)
}

func TestClient_ListPropertiesServerError(t *testing.T) {
	client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message": "database unavailable"}`)
	})

	_, err := client.ListProperties(context.Background(), domain.SearchFilters{}, 1, 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database unavailable")
	assert.Equal(t, []string{"list:status_error"}, metrics.outcomes)
}

func TestClient_GetPropertyNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message": "Property not found"}`)
	})

	_, err := client.GetProperty(context.Background(), "REF-404")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestClient_GetPropertyEscapesIdentifier(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, `{"_id": "x1", "reference": "AP 01/B", "ownerId": {"_id": "u1", "name": "Ana"}}`)
	})

	property, err := client.GetProperty(context.Background(), "AP 01/B")
	require.NoError(t, err)

	assert.Equal(t, "/api/properties/AP%2001%2FB", gotPath)
	assert.Equal(t, "AP 01/B", property.RouteKey())
	assert.Equal(t, domain.OwnerResolved, property.Owner.Kind())
}

func TestClient_UpdatePropertySendsTokenAndBody(t *testing.T) {
	var gotAuth, gotMethod, gotContentType string
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, `{"_id": "p1", "title": "Atualizado", "price": 10}`)
	})

	input := domain.PropertyInput{Title: "Atualizado", Price: 10, OwnerID: "u1"}
	updated, err := client.UpdateProperty(context.Background(), "secret-token", "p1", input)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Atualizado", gotBody["title"])
	assert.Equal(t, "u1", gotBody["ownerId"])
	assert.Equal(t, "p1", updated.ID)
}

func TestClient_DeleteProperty(t *testing.T) {
	var gotMethod string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteProperty(context.Background(), "token", "p1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestClient_FetchFeaturedRawReturnsBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties/featured", r.URL.Path)
		_, _ = io.WriteString(w, `{"data": [{"_id": "f1"}]}`)
	})

	body, err := client.FetchFeaturedRaw(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"data": [{"_id": "f1"}]}`, string(body))
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	metrics := &recordingMetrics{}
	client := NewClient(Config{BaseURL: baseURL, Metrics: metrics})

	_, err := client.FetchFeaturedRaw(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"featured:transport_error"}, metrics.outcomes)
}

func TestClient_ListPropertiesToleratesLooseDates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{
			"properties": [
				{"_id": "a1", "createdAt": "2024-01-01"},
				{"_id": "a2", "createdAt": "2024-02-03T10:00:00Z", "updatedAt": "ontem"},
				{"_id": "a3", "createdAt": null}
			],
			"pagination": {"currentPage": 1, "totalPages": 1, "totalItems": 3}
		}`)
	})

	page, err := client.ListProperties(context.Background(), domain.SearchFilters{}, 1, 12)
	require.NoError(t, err)

	require.Len(t, page.Properties, 3)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), page.Properties[0].CreatedAt.Time)
	assert.Equal(t, 2, int(page.Properties[1].CreatedAt.Month()))
	require.NotNil(t, page.Properties[1].UpdatedAt)
	assert.True(t, page.Properties[1].UpdatedAt.IsZero())
	assert.True(t, page.Properties[2].CreatedAt.IsZero())
}

func TestClient_TimeoutBoundsSlowResponses(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := client.GetProperty(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, time.Since(start) < 2*time.Second, "request should be cut by the client timeout")

	_, err = client.FetchFeaturedRaw(context.Background())
	require.Error(t, err)
}
