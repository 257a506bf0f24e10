package fakestore

import (
	"encoding/json"
	"strings"
)

// Product is the remote representation of a catalog entry.
type Product struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
}

// Valid reports whether the product carries the fields the cart needs.
func (p *Product) Valid() bool {
	return p.ID.String() != "" && strings.TrimSpace(p.Title) != ""
}
