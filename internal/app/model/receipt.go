package model

import "time"

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ReceiptItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Receipt is the result of a checkout. It is returned to the caller and never stored.
type Receipt struct {
	OrderID   string        `json:"orderId"`
	Total     float64       `json:"total"`
	Timestamp time.Time     `json:"timestamp"`
	Items     []ReceiptItem `json:"items"`
	Customer  Customer      `json:"customer"`
}
