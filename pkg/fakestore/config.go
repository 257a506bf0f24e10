package fakestore

import "time"

// Config represents the configuration for the remote catalog client
type Config struct {
	// BaseURL is the product API root, e.g. https://fakestoreapi.com
	BaseURL string

	// Timeout bounds every request made by the client
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	if c.Timeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
