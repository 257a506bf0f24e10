package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one cart line per (user, product). Name, price and image are a
// snapshot of the catalog entry taken when the product was first added.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;index;uniqueIndex:idx_cart_items_user_product,priority:1" json:"userId"`
	ProductID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_items_user_product,priority:2" json:"productId"`
	Name      string    `gorm:"not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null;check:chk_cart_items_quantity,quantity > 0" json:"quantity"`
	Image     string    `json:"image"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	// Derived, never stored.
	Subtotal float64 `gorm:"-" json:"subtotal"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (c *CartItem) AfterFind(tx *gorm.DB) error {
	c.Subtotal = LineSubtotal(c.Price, c.Quantity)
	return nil
}

func (c *CartItem) AfterCreate(tx *gorm.DB) error {
	c.Subtotal = LineSubtotal(c.Price, c.Quantity)
	return nil
}

// LineSubtotal returns price * quantity computed on the decimal form of price.
func LineSubtotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}

// SumSubtotals adds up the subtotals of the given lines.
func SumSubtotals(items []CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.InexactFloat64()
}
