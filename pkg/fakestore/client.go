package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client represents a remote product catalog client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new catalog client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	body, err := c.doRequest(ctx, "products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	// The API answers 200 with an empty body for unknown ids.
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, ErrProductNotFound
	}

	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if !product.Valid() {
		return nil, ErrProductNotFound
	}

	return &product, nil
}

// ListProducts fetches the whole remote catalog
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	body, err := c.doRequest(ctx, "products")
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	valid := products[:0]
	for _, p := range products {
		if p.Valid() {
			valid = append(valid, p)
		}
	}
	return valid, nil
}

// doRequest performs a GET against the catalog API
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s", c.config.BaseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrNetworkError, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return body, nil
}

// IsUnavailable reports whether err means the catalog could not answer, as
// opposed to answering that the product does not exist.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNetworkError) ||
		errors.Is(err, ErrUnexpectedStatus) ||
		errors.Is(err, ErrInvalidResponse)
}
