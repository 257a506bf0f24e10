package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

func line(productID, name string, price float64, quantity int) CheckoutItemInput {
	return CheckoutItemInput{
		ProductID: productID,
		Name:      name,
		Price:     float64Ptr(price),
		Quantity:  intPtr(quantity),
	}
}

type recordingCheckout struct {
	*checkoutService
	generated int
}

func newTestCheckoutService(now time.Time) *recordingCheckout {
	r := &recordingCheckout{}
	r.checkoutService = &checkoutService{
		now: func() time.Time { return now },
		newOrderID: func(time.Time) (string, error) {
			r.generated++
			return "ORD-TEST-0000000" + string(rune('0'+r.generated)), nil
		},
	}
	return r
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	svc := newTestCheckoutService(now)

	receipt, err := svc.Checkout(CheckoutInput{
		CartItems: []CheckoutItemInput{
			line("1", "Classic Wool Sweater", 299.99, 2),
			line("3", "Cotton T-Shirt", 89.99, 1),
		},
		Name:  "  Jane Doe ",
		Email: " Jane@Example.COM ",
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD-TEST-00000001", receipt.OrderID)
	assert.Equal(t, now, receipt.Timestamp)
	assert.InDelta(t, 689.97, receipt.Total, 1e-9)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "1", receipt.Items[0].ProductID)
	assert.InDelta(t, 599.98, receipt.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 89.99, receipt.Items[1].Subtotal, 1e-9)
	assert.Equal(t, "Jane Doe", receipt.Customer.Name)
	assert.Equal(t, "jane@example.com", receipt.Customer.Email)
}

func TestCheckoutService_Checkout_RoundsHalfUp(t *testing.T) {
	svc := newTestCheckoutService(time.Now())

	receipt, err := svc.Checkout(CheckoutInput{
		CartItems: []CheckoutItemInput{line("7", "Knit Beanie", 10.005, 3)},
		Name:      "Jo",
		Email:     "jo@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, 30.02, receipt.Items[0].Subtotal)
	assert.Equal(t, 30.02, receipt.Total)
}

func TestCheckoutService_Checkout_ValidationErrors(t *testing.T) {
	valid := []CheckoutItemInput{line("1", "Classic Wool Sweater", 299.99, 1)}

	tests := []struct {
		name      string
		input     CheckoutInput
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing cart items",
			input:     CheckoutInput{Name: "Jane", Email: "jane@example.com"},
			wantField: "cartItems",
			wantMsg:   "Cart items must be an array",
		},
		{
			name:      "empty cart",
			input:     CheckoutInput{CartItems: []CheckoutItemInput{}, Name: "Jane", Email: "jane@example.com"},
			wantField: "cartItems",
			wantMsg:   "Cart is empty. Please add items before checkout.",
		},
		{
			name: "item without price",
			input: CheckoutInput{
				CartItems: []CheckoutItemInput{valid[0], {ProductID: "2", Name: "Jacket", Quantity: intPtr(1)}},
				Name:      "Jane", Email: "jane@example.com",
			},
			wantField: "cartItems[1].price",
			wantMsg:   "Invalid cart item at position 2",
		},
		{
			name: "item without product id",
			input: CheckoutInput{
				CartItems: []CheckoutItemInput{line("", "Jacket", 10, 1)},
				Name:      "Jane", Email: "jane@example.com",
			},
			wantField: "cartItems[0].productId",
			wantMsg:   "Invalid cart item at position 1",
		},
		{
			name: "item without name",
			input: CheckoutInput{
				CartItems: []CheckoutItemInput{line("2", "  ", 10, 1)},
				Name:      "Jane", Email: "jane@example.com",
			},
			wantField: "cartItems[0].name",
			wantMsg:   "Invalid cart item at position 1",
		},
		{
			name: "negative price",
			input: CheckoutInput{
				CartItems: []CheckoutItemInput{valid[0], line("2", "Jacket", -1, 1)},
				Name:      "Jane", Email: "jane@example.com",
			},
			wantField: "cartItems[1].price",
			wantMsg:   "Invalid cart item at position 2",
		},
		{
			name: "zero quantity",
			input: CheckoutInput{
				CartItems: []CheckoutItemInput{line("2", "Jacket", 10, 0)},
				Name:      "Jane", Email: "jane@example.com",
			},
			wantField: "cartItems[0].quantity",
			wantMsg:   "Invalid cart item at position 1",
		},
		{
			name: "quantity over limit",
			input: CheckoutInput{
				CartItems: []CheckoutItemInput{line("2", "Jacket", 10, 1000)},
				Name:      "Jane", Email: "jane@example.com",
			},
			wantField: "cartItems[0].quantity",
			wantMsg:   "Invalid cart item at position 1",
		},
		{
			name:      "blank name",
			input:     CheckoutInput{CartItems: valid, Name: "   ", Email: "jane@example.com"},
			wantField: "name",
			wantMsg:   "Name is required",
		},
		{
			name:      "name too short",
			input:     CheckoutInput{CartItems: valid, Name: "J", Email: "jane@example.com"},
			wantField: "name",
			wantMsg:   "Name must be between 2 and 100 characters",
		},
		{
			name:      "name too long",
			input:     CheckoutInput{CartItems: valid, Name: strings.Repeat("a", 101), Email: "jane@example.com"},
			wantField: "name",
			wantMsg:   "Name must be between 2 and 100 characters",
		},
		{
			name:      "missing email",
			input:     CheckoutInput{CartItems: valid, Name: "Jane"},
			wantField: "email",
			wantMsg:   "Email is required",
		},
		{
			name:      "malformed email",
			input:     CheckoutInput{CartItems: valid, Name: "Jane", Email: "not-an-email"},
			wantField: "email",
			wantMsg:   "Please enter a valid email address",
		},
		{
			name:      "email with inner space",
			input:     CheckoutInput{CartItems: valid, Name: "Jane", Email: "ja ne@example.com"},
			wantField: "email",
			wantMsg:   "Please enter a valid email address",
		},
		{
			name: "zero total",
			input: CheckoutInput{
				CartItems: []CheckoutItemInput{line("1", "Free Sample", 0, 1)},
				Name:      "Jane", Email: "jane@example.com",
			},
			wantField: "total",
			wantMsg:   "Invalid cart total. Please check your items.",
		},
		{
			name: "total over maximum",
			input: CheckoutInput{
				CartItems: []CheckoutItemInput{line("1", "Gold Bar", 1500.5, 999)},
				Name:      "Jane", Email: "jane@example.com",
			},
			wantField: "total",
			wantMsg:   "Order total exceeds maximum allowed amount.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestCheckoutService(time.Now())

			receipt, err := svc.Checkout(tt.input)
			assert.Nil(t, receipt)
			assert.ErrorIs(t, err, ErrInvalidCheckout)

			var validationErr *CheckoutValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.Equal(t, tt.wantMsg, validationErr.Message)

			assert.Zero(t, svc.generated, "no order id should be generated")
		})
	}
}

func TestCheckoutService_Checkout_DistinctOrderIDs(t *testing.T) {
	svc := NewCheckoutService()
	input := CheckoutInput{
		CartItems: []CheckoutItemInput{line("1", "Classic Wool Sweater", 299.99, 1)},
		Name:      "Jane",
		Email:     "jane@example.com",
	}

	first, err := svc.Checkout(input)
	require.NoError(t, err)
	second, err := svc.Checkout(input)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.True(t, strings.HasPrefix(first.OrderID, "ORD-"))
}
