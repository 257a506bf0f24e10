package controller

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/vibecommerce-backend/internal/app/service"
	apperrors "github.com/ikkim/vibecommerce-backend/internal/errors"
	"github.com/ikkim/vibecommerce-backend/internal/middleware"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// CheckoutRequest keeps cartItems raw so each line can be decoded on its own.
type CheckoutRequest struct {
	CartItems json.RawMessage `json:"cartItems"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
}

// Checkout computes a receipt for the submitted cart lines
// POST /api/checkout
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	input := service.CheckoutInput{
		CartItems: decodeCheckoutItems(req.CartItems),
		Name:      req.Name,
		Email:     req.Email,
	}

	receipt, err := ctrl.checkoutService.Checkout(input)
	if err != nil {
		respondError(c, log, err, "process checkout", map[string]interface{}{
			"item_count": len(input.CartItems),
		})
		return
	}

	log.Info("Checkout successful", map[string]interface{}{
		"order_id":   receipt.OrderID,
		"total":      receipt.Total,
		"item_count": len(receipt.Items),
	})

	c.JSON(http.StatusOK, receipt)
}

// decodeCheckoutItems returns nil unless raw is a JSON array. Elements that
// fail to decode become zero lines, which checkout rejects by position.
func decodeCheckoutItems(raw json.RawMessage) []service.CheckoutItemInput {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	items := make([]service.CheckoutItemInput, len(elements))
	for i, element := range elements {
		var item service.CheckoutItemInput
		if err := json.Unmarshal(element, &item); err != nil {
			continue
		}
		items[i] = item
	}
	return items
}
