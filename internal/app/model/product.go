package model

// Product is a catalog entry. Products are not persisted locally: they come
// from the remote catalog or the built-in fallback table.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image"`
	Category    string  `json:"category,omitempty"`
}

type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasMore       bool `json:"hasMore"`
	Limit         int  `json:"limit"`
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
