package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
	"github.com/ikkim/vibecommerce-backend/pkg/logger"
	"github.com/ikkim/vibecommerce-backend/pkg/util"
	"github.com/shopspring/decimal"
)

const (
	MinCustomerNameLength = 2
	MaxCustomerNameLength = 100
)

// MaxOrderTotal is the largest order total accepted at checkout.
var MaxOrderTotal = decimal.NewFromInt(1_000_000)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CheckoutItemInput is one line as submitted by the client. Price and
// Quantity are pointers so a missing value can be told apart from zero.
type CheckoutItemInput struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
}

type CheckoutInput struct {
	CartItems []CheckoutItemInput `json:"cartItems"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
}

type CheckoutService interface {
	Checkout(input CheckoutInput) (*model.Receipt, error)
}

type checkoutService struct {
	now        func() time.Time
	newOrderID func(time.Time) (string, error)
}

// NewCheckoutService returns a stateless checkout: it computes a receipt from
// the submitted lines and does not touch the stored cart.
func NewCheckoutService() CheckoutService {
	return &checkoutService{
		now:        time.Now,
		newOrderID: util.GenerateOrderID,
	}
}

func (s *checkoutService) Checkout(input CheckoutInput) (*model.Receipt, error) {
	logger.Info("Processing checkout", map[string]interface{}{
		"item_count": len(input.CartItems),
	})

	if input.CartItems == nil {
		err := invalidCheckout("cartItems", "Cart items must be an array")
		logCheckoutRejected(err)
		return nil, err
	}
	if len(input.CartItems) == 0 {
		err := invalidCheckout("cartItems", "Cart is empty. Please add items before checkout.")
		logCheckoutRejected(err)
		return nil, err
	}

	for i, line := range input.CartItems {
		if field := invalidLineField(line); field != "" {
			err := invalidCheckout(fmt.Sprintf("cartItems[%d].%s", i, field), "Invalid cart item at position %d", i+1)
			logCheckoutRejected(err)
			return nil, err
		}
	}

	customer, err := validateCustomer(input.Name, input.Email)
	if err != nil {
		logCheckoutRejected(err)
		return nil, err
	}

	items := make([]model.ReceiptItem, 0, len(input.CartItems))
	total := decimal.Zero
	for _, line := range input.CartItems {
		subtotal := decimal.NewFromFloat(*line.Price).
			Mul(decimal.NewFromInt(int64(*line.Quantity))).
			Round(2)
		total = total.Add(subtotal)

		items = append(items, model.ReceiptItem{
			ProductID: strings.TrimSpace(line.ProductID),
			Name:      strings.TrimSpace(line.Name),
			Price:     *line.Price,
			Quantity:  *line.Quantity,
			Subtotal:  subtotal.InexactFloat64(),
		})
	}

	total = total.Round(2)
	if !total.IsPositive() {
		err := invalidCheckout("total", "Invalid cart total. Please check your items.")
		logCheckoutRejected(err)
		return nil, err
	}
	if total.GreaterThan(MaxOrderTotal) {
		err := invalidCheckout("total", "Order total exceeds maximum allowed amount.")
		logCheckoutRejected(err)
		return nil, err
	}

	now := s.now().UTC()
	orderID, err := s.newOrderID(now)
	if err != nil {
		logger.Error("Failed to generate order id", err)
		return nil, err
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"order_id":   orderID,
		"item_count": len(items),
		"total":      total.String(),
	})

	return &model.Receipt{
		OrderID:   orderID,
		Total:     total.InexactFloat64(),
		Timestamp: now,
		Items:     items,
		Customer:  customer,
	}, nil
}

func validateCustomer(name, email string) (model.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Customer{}, invalidCheckout("name", "Name is required")
	}
	if n := utf8.RuneCountInString(name); n < MinCustomerNameLength || n > MaxCustomerNameLength {
		return model.Customer{}, invalidCheckout("name",
			"Name must be between %d and %d characters", MinCustomerNameLength, MaxCustomerNameLength)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.Customer{}, invalidCheckout("email", "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return model.Customer{}, invalidCheckout("email", "Please enter a valid email address")
	}

	return model.Customer{Name: name, Email: email}, nil
}

// invalidLineField names the first unusable field of line, or returns "".
func invalidLineField(line CheckoutItemInput) string {
	switch {
	case strings.TrimSpace(line.ProductID) == "":
		return "productId"
	case strings.TrimSpace(line.Name) == "":
		return "name"
	case line.Price == nil || *line.Price < 0:
		return "price"
	case line.Quantity == nil || *line.Quantity < 1 || *line.Quantity > MaxCartQuantity:
		return "quantity"
	}
	return ""
}

func logCheckoutRejected(err error) {
	fields := map[string]interface{}{
		"error": err.Error(),
	}
	var validationErr *CheckoutValidationError
	if errors.As(err, &validationErr) {
		fields["field"] = validationErr.Field
	}
	logger.Warn("Checkout rejected", fields)
}
