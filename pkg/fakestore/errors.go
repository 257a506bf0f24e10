package fakestore

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid fakestore config")

	// ErrProductNotFound is returned when the API has no product for the id
	ErrProductNotFound = errors.New("product not found in remote catalog")

	// ErrNetworkError is returned when the API could not be reached in time
	ErrNetworkError = errors.New("network error")

	// ErrUnexpectedStatus is returned for any other non-2xx response
	ErrUnexpectedStatus = errors.New("unexpected status from remote catalog")

	// ErrInvalidResponse is returned when the response body cannot be decoded
	ErrInvalidResponse = errors.New("invalid response from remote catalog")
)
