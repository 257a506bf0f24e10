package controller

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/vibecommerce-backend/internal/app/service"
	apperrors "github.com/ikkim/vibecommerce-backend/internal/errors"
	"github.com/ikkim/vibecommerce-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// AddToCartRequest either adds productId to the cart or, when id is set,
// replaces the quantity of that cart item.
type AddToCartRequest struct {
	ID        *int64   `json:"id"`
	ProductID *string  `json:"productId"`
	Quantity  *float64 `json:"quantity"`
}

// GetCart returns the shopper's cart
// GET /api/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.InternalError(c, "")
		return
	}

	cartItems, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		respondError(c, log, err, "retrieve cart items", map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	total, err := ctrl.cartService.GetCartTotal(userID)
	if err != nil {
		respondError(c, log, err, "retrieve cart items", map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
		"total":   total,
	})

	c.JSON(http.StatusOK, gin.H{
		"items": cartItems,
		"count": len(cartItems),
		"total": total,
	})
}

// AddToCart adds an item to the cart, or updates a line when id is given
// POST /api/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.InternalError(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	updating := req.ID != nil && *req.ID != 0

	productID := ""
	if req.ProductID != nil {
		productID = strings.TrimSpace(*req.ProductID)
	}
	if !updating && productID == "" {
		respondError(c, log, service.ErrInvalidProductID, "add item to cart", map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		respondError(c, log, err, "add item to cart", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return
	}

	if updating {
		ctrl.updateCartItem(c, userID, *req.ID, quantity)
		return
	}

	cartItem, created, err := ctrl.cartService.AddToCart(c.Request.Context(), userID, productID, quantity)
	if err != nil {
		respondError(c, log, err, "add item to cart", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"quantity":   quantity,
		})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItem.ID,
		"quantity":     cartItem.Quantity,
		"created":      created,
	})

	c.JSON(status, gin.H{
		"cartItem": cartItem,
	})
}

func (ctrl *CartController) updateCartItem(c *gin.Context, userID string, id int64, quantity int) {
	log := middleware.GetLoggerFromContext(c)

	if id < 0 {
		respondError(c, log, service.ErrCartItemNotFound, "update cart item", map[string]interface{}{
			"cart_item_id": id,
		})
		return
	}

	cartItem, err := ctrl.cartService.UpdateCartItem(userID, uint(id), quantity)
	if err != nil {
		respondError(c, log, err, "update cart item", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
			"quantity":     quantity,
		})
		return
	}

	log.Info("Cart item updated", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItem.ID,
		"quantity":     cartItem.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"cartItem": cartItem,
	})
}

// RemoveFromCart removes a line from the cart
// DELETE /api/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.InternalError(c, "")
		return
	}

	cartItemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) || (err == nil && cartItemID > math.MaxInt64) {
		// A positive id no row can carry.
		ctrl.respondRemovedItemMissing(c, userID, c.Param("id"))
		return
	}
	if err != nil || cartItemID == 0 {
		log.Warn("Invalid cart item ID", map[string]interface{}{
			"cart_item_id": c.Param("id"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID. Must be a positive number.")
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, uint(cartItemID)); err != nil {
		if info := apperrors.ParseError(err, ""); info.Status == http.StatusNotFound {
			ctrl.respondRemovedItemMissing(c, userID, cartItemID)
			return
		}
		respondError(c, log, err, "remove cart item", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return
	}

	log.Info("Cart item removed", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed successfully",
	})
}

func (ctrl *CartController) respondRemovedItemMissing(c *gin.Context, userID string, cartItemID interface{}) {
	middleware.GetLoggerFromContext(c).Warn("Cart item not found for removal", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})
	apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found. It may have already been removed.")
}

// ClearCart removes every line from the shopper's cart
// DELETE /api/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.InternalError(c, "")
		return
	}

	deleted, err := ctrl.cartService.ClearCart(userID)
	if err != nil {
		respondError(c, log, err, "clear cart", map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"deleted": deleted,
	})
}

// parseQuantity accepts JSON numbers that hold an integer value.
func parseQuantity(raw *float64) (int, error) {
	if raw == nil {
		return 0, service.ErrQuantityRequired
	}
	q := *raw
	if math.IsNaN(q) || math.IsInf(q, 0) || q != math.Trunc(q) {
		return 0, fmt.Errorf("%w: must be an integer", service.ErrInvalidQuantity)
	}
	if q < 1 {
		return 0, service.ValidateQuantity(0)
	}
	if q > service.MaxCartQuantity {
		return 0, service.ValidateQuantity(service.MaxCartQuantity + 1)
	}
	return int(q), nil
}
