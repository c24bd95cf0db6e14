// Package lookup provides the client-side data-fetching layer: a debounced
// city searcher and a cached warehouse loader over the proxy HTTP API.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shipping_portal_backend/platform/novaposhta"
)

// Fetcher is the data source the searcher and loader components use.
// It is satisfied by APIClient and by test fakes.
type Fetcher interface {
	SearchCities(ctx context.Context, query string) ([]novaposhta.Settlement, error)
	GetWarehouses(ctx context.Context, cityRef string) ([]novaposhta.Warehouse, error)
}

// APIClient calls the proxy server's JSON endpoints.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a proxy API client for the given base URL.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type citiesEnvelope struct {
	Success bool                    `json:"success"`
	Data    []novaposhta.Settlement `json:"data"`
	Error   string                  `json:"error"`
}

type warehousesEnvelope struct {
	Success bool                   `json:"success"`
	Data    []novaposhta.Warehouse `json:"data"`
	Error   string                 `json:"error"`
}

type declarationEnvelope struct {
	Success bool                        `json:"success"`
	Data    novaposhta.InternetDocument `json:"data"`
	Error   string                      `json:"error"`
}

// SearchCities queries GET /api/v1/cities.
func (c *APIClient) SearchCities(ctx context.Context, query string) ([]novaposhta.Settlement, error) {
	var envelope citiesEnvelope
	endpoint := c.baseURL + "/api/v1/cities?query=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, proxyError(envelope.Error, "city search failed")
	}
	return envelope.Data, nil
}

// GetWarehouses queries GET /api/v1/warehouses.
func (c *APIClient) GetWarehouses(ctx context.Context, cityRef string) ([]novaposhta.Warehouse, error) {
	var envelope warehousesEnvelope
	endpoint := c.baseURL + "/api/v1/warehouses?cityRef=" + url.QueryEscape(cityRef)
	if err := c.getJSON(ctx, endpoint, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, proxyError(envelope.Error, "warehouse lookup failed")
	}
	return envelope.Data, nil
}

// CreateDeclaration posts the declaration form to POST /api/v1/declaration.
func (c *APIClient) CreateDeclaration(ctx context.Context, form any) (novaposhta.InternetDocument, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return novaposhta.InternetDocument{}, fmt.Errorf("failed to marshal declaration: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/declaration", strings.NewReader(string(payload)))
	if err != nil {
		return novaposhta.InternetDocument{}, err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return novaposhta.InternetDocument{}, err
	}
	defer resp.Body.Close()

	var envelope declarationEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return novaposhta.InternetDocument{}, fmt.Errorf("failed to decode declaration response: %w", err)
	}
	if !envelope.Success {
		return novaposhta.InternetDocument{}, proxyError(envelope.Error, "declaration submission failed")
	}
	return envelope.Data, nil
}

func (c *APIClient) getJSON(ctx context.Context, endpoint string, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Error statuses still carry the JSON error envelope; decode regardless.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response (%d): %w", resp.StatusCode, err)
	}
	return nil
}

func proxyError(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return fmt.Errorf("%s", message)
}

var _ Fetcher = (*APIClient)(nil)
