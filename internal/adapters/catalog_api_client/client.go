package catalog_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config - параметры клиента каталога.
type Config struct {
	BaseURL          string        // Например, "https://api.imoveis.example.com/api"
	Timeout          time.Duration // 0 - без таймаута на уровне http.Client
	PhotoFallbackURL string
	Metrics          port.CatalogMetricsPort
	HTTPClient       *http.Client
}

// Client - клиент REST API каталога объектов недвижимости.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	photoFallbackURL string
	metrics          port.CatalogMetricsPort
}

// NewClient - конструктор.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = port.NoopCatalogMetrics{}
	}
	fallback := cfg.PhotoFallbackURL
	if fallback == "" {
		fallback = domain.DefaultPhotoFallbackURL
	}

	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:       httpClient,
		photoFallbackURL: fallback,
		metrics:          metrics,
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, url, token string, body io.Reader) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// do выполняет запрос и возвращает тело успешного ответа.
// Любой статус вне 2xx превращается в ошибку с текстом из тела.
func (c *Client) do(ctx context.Context, endpoint, method, url, token string, body io.Reader) (int, []byte, error) {
	startTime := time.Now()

	resp, err := c.doRequest(ctx, method, url, token, body)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, "transport_error", time.Since(startTime))
		return 0, nil, fmt.Errorf("failed to perform request to catalog API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, "read_error", time.Since(startTime))
		return resp.StatusCode, nil, fmt.Errorf("failed to read catalog API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.ObserveRequest(endpoint, "status_error", time.Since(startTime))
		return resp.StatusCode, bodyBytes, fmt.Errorf("catalog API returned non-success status code %d: %s",
			resp.StatusCode, errorMessage(bodyBytes))
	}

	c.metrics.ObserveRequest(endpoint, "success", time.Since(startTime))
	return resp.StatusCode, bodyBytes, nil
}

func errorMessage(body []byte) string {
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Error != "" {
			return apiErr.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// ListProperties реализует порт PropertyCatalogPort.
func (c *Client) ListProperties(ctx context.Context, filters domain.SearchFilters, page, limit int) (*domain.ListingPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "CatalogApiClient",
		"method":    "ListProperties",
		"page":      page,
		"limit":     limit,
	})

	requestURL := c.baseURL + "/properties?" + BuildListingQuery(filters, page, limit).Encode()
	clientLogger.Debug("Sending request to catalog API", port.Fields{"url": requestURL})

	_, body, err := c.do(ctx, "list", http.MethodGet, requestURL, "", nil)
	if err != nil {
		clientLogger.Error("Listing request failed", err, nil)
		return nil, err
	}

	if err := contracts.ValidateResponse(contracts.ListingPageResponse, "1.0.0", body); err != nil {
		clientLogger.Error("Listing response does not match contract", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrUnexpectedShape, err)
	}

	var apiResponse listingPageResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		clientLogger.Error("Failed to decode listing response", err, nil)
		return nil, fmt.Errorf("failed to decode listing response: %w", err)
	}

	result := &domain.ListingPage{
		Properties: domain.NormalizeProperties(apiResponse.Properties, c.photoFallbackURL),
	}
	if result.Properties == nil {
		result.Properties = []domain.Property{}
	}
	if apiResponse.Pagination != nil {
		pagination := apiResponse.Pagination.Normalize()
		result.Pagination = &pagination
	}

	clientLogger.Info("Successfully received listing page", port.Fields{"objects_count": len(result.Properties)})
	return result, nil
}

// FetchFeaturedRaw реализует порт PropertyCatalogPort.
func (c *Client) FetchFeaturedRaw(ctx context.Context) ([]byte, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "CatalogApiClient",
		"method":    "FetchFeaturedRaw",
	})

	_, body, err := c.do(ctx, "featured", http.MethodGet, c.baseURL+"/properties/featured", "", nil)
	if err != nil {
		clientLogger.Warn("Featured request failed", port.Fields{"error": err.Error()})
		return nil, err
	}
	return body, nil
}

// GetProperty реализует порт PropertyCatalogPort.
func (c *Client) GetProperty(ctx context.Context, identifier string) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component":  "CatalogApiClient",
		"method":     "GetProperty",
		"identifier": identifier,
	})

	status, body, err := c.do(ctx, "get", http.MethodGet, c.propertyURL(identifier), "", nil)
	if status == http.StatusNotFound {
		clientLogger.Warn("Property not found", nil)
		return nil, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, identifier)
	}
	if err != nil {
		clientLogger.Error("Property request failed", err, nil)
		return nil, err
	}

	return c.decodeProperty(body)
}

// CreateProperty реализует порт PropertyWriterPort.
func (c *Client) CreateProperty(ctx context.Context, token string, input domain.PropertyInput) (*domain.Property, error) {
	reqBody, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	_, body, err := c.do(ctx, "create", http.MethodPost, c.baseURL+"/properties", token, bytes.NewReader(reqBody))
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Create property request failed", err, nil)
		return nil, err
	}
	return c.decodeProperty(body)
}

// UpdateProperty реализует порт PropertyWriterPort.
func (c *Client) UpdateProperty(ctx context.Context, token, identifier string, input domain.PropertyInput) (*domain.Property, error) {
	reqBody, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	status, body, err := c.do(ctx, "update", http.MethodPut, c.propertyURL(identifier), token, bytes.NewReader(reqBody))
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, identifier)
	}
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Update property request failed", err, port.Fields{"identifier": identifier})
		return nil, err
	}
	return c.decodeProperty(body)
}

// DeleteProperty реализует порт PropertyWriterPort.
func (c *Client) DeleteProperty(ctx context.Context, token, identifier string) error {
	status, _, err := c.do(ctx, "delete", http.MethodDelete, c.propertyURL(identifier), token, nil)
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, identifier)
	}
	return err
}

func (c *Client) propertyURL(identifier string) string {
	return c.baseURL + "/properties/" + url.PathEscape(identifier)
}

func (c *Client) decodeProperty(body []byte) (*domain.Property, error) {
	if err := contracts.ValidateResponse(contracts.PropertyResponse, "1.0.0", body); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnexpectedShape, err)
	}

	var property domain.Property
	if err := json.Unmarshal(body, &property); err != nil {
		return nil, fmt.Errorf("failed to decode property: %w", err)
	}
	property.Normalize(c.photoFallbackURL)
	return &property, nil
}
