// Package novaposhta provides a client for the Nova Poshta carrier API.
// Every call is a single HTTP POST to a fixed JSON endpoint; the carrier
// dispatches on modelName/calledMethod inside the body.
package novaposhta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIURL is the production carrier endpoint.
const DefaultAPIURL = "https://api.novaposhta.ua/v2.0/json/"

const searchLimit = 20

// Client is an HTTP client for the Nova Poshta API.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// Config configures the carrier API client.
type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new carrier API client.
func NewClient(cfg Config) *Client {
	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		apiURL:     apiURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// call posts a single carrier request and decodes the response envelope.
func call[T any](ctx context.Context, c *Client, modelName, calledMethod string, props any) (Envelope[T], error) {
	var envelope Envelope[T]

	bodyBytes, err := json.Marshal(apiRequest{
		APIKey:           c.apiKey,
		ModelName:        modelName,
		CalledMethod:     calledMethod,
		MethodProperties: props,
	})
	if err != nil {
		return envelope, fmt.Errorf("failed to marshal %s.%s request: %w", modelName, calledMethod, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return envelope, fmt.Errorf("failed to create %s.%s request: %w", modelName, calledMethod, err)
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return envelope, fmt.Errorf("%s.%s request failed: %w", modelName, calledMethod, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return envelope, fmt.Errorf("carrier API returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return envelope, fmt.Errorf("failed to decode %s.%s response: %w", modelName, calledMethod, err)
	}

	return envelope, nil
}

// envelopeError turns an unsuccessful envelope into an error carrying the
// carrier's joined error messages, or the fallback when none were provided.
func envelopeError[T any](envelope Envelope[T], fallback string) error {
	message := strings.Join(envelope.Errors, ", ")
	if message == "" {
		message = fallback
	}
	return fmt.Errorf("%s", message)
}

// SearchSettlements searches cities by partial name for autocomplete.
// Queries shorter than 2 characters return no results without a network call.
func (c *Client) SearchSettlements(ctx context.Context, query string) ([]Settlement, error) {
	if len(query) < 2 {
		return nil, nil
	}

	envelope, err := call[settlementSearchResult](ctx, c, "Address", "searchSettlements", map[string]any{
		"CityName": query,
		"Limit":    searchLimit,
	})
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, envelopeError(envelope, "failed to search cities")
	}

	if len(envelope.Data) == 0 {
		return []Settlement{}, nil
	}
	return envelope.Data[0].Addresses, nil
}

// GetCities looks cities up by substring using the alternative getCities method.
func (c *Client) GetCities(ctx context.Context, query string) ([]City, error) {
	if len(query) < 2 {
		return nil, nil
	}

	envelope, err := call[City](ctx, c, "Address", "getCities", map[string]any{
		"FindByString": query,
	})
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, envelopeError(envelope, "failed to get cities")
	}
	return envelope.Data, nil
}

// GetWarehouses returns all warehouses for a settlement reference.
func (c *Client) GetWarehouses(ctx context.Context, settlementRef string) ([]Warehouse, error) {
	if settlementRef == "" {
		return nil, nil
	}

	envelope, err := call[Warehouse](ctx, c, "Address", "getWarehouses", map[string]any{
		"SettlementRef": settlementRef,
		"Language":      "UA",
	})
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, envelopeError(envelope, "failed to get warehouses")
	}
	return envelope.Data, nil
}

// GetWarehousesByCityName returns all warehouses matched by city name.
func (c *Client) GetWarehousesByCityName(ctx context.Context, cityName string) ([]Warehouse, error) {
	if cityName == "" {
		return nil, nil
	}

	envelope, err := call[Warehouse](ctx, c, "Address", "getWarehouses", map[string]any{
		"CityName": cityName,
		"Language": "UA",
	})
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, envelopeError(envelope, "failed to get warehouses")
	}
	return envelope.Data, nil
}

// CreateInternetDocument creates a shipment declaration with the carrier.
func (c *Client) CreateInternetDocument(ctx context.Context, req CreateInternetDocumentRequest) (InternetDocument, error) {
	envelope, err := call[InternetDocument](ctx, c, "InternetDocument", "save", req)
	if err != nil {
		return InternetDocument{}, err
	}
	if !envelope.Success {
		return InternetDocument{}, envelopeError(envelope, "failed to create declaration")
	}
	if len(envelope.Data) == 0 {
		return InternetDocument{}, fmt.Errorf("carrier returned an empty declaration payload")
	}
	return envelope.Data[0], nil
}
