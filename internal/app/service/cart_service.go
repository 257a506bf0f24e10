package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
	"github.com/ikkim/vibecommerce-backend/internal/app/repository"
	"github.com/ikkim/vibecommerce-backend/pkg/logger"
)

// MaxCartQuantity is the largest quantity a single cart line may hold.
const MaxCartQuantity = 999

type CartService interface {
	GetUserCart(userID string) ([]model.CartItem, error)
	GetCartTotal(userID string) (float64, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.CartItem, bool, error)
	UpdateCartItem(userID string, cartItemID uint, quantity int) (*model.CartItem, error)
	RemoveFromCart(userID string, cartItemID uint) error
	ClearCart(userID string) (int64, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	catalog  CatalogService
}

func NewCartService(cartRepo repository.CartRepository, catalog CatalogService) CartService {
	return &cartService{
		cartRepo: cartRepo,
		catalog:  catalog,
	}
}

// ValidateQuantity checks that quantity fits a single cart line.
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: must be at least 1", ErrInvalidQuantity)
	}
	if quantity > MaxCartQuantity {
		return fmt.Errorf("%w: maximum is %d", ErrInvalidQuantity, MaxCartQuantity)
	}
	return nil
}

func (s *cartService) GetUserCart(userID string) ([]model.CartItem, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

func (s *cartService) GetCartTotal(userID string) (float64, error) {
	total, err := s.cartRepo.TotalByUserID(userID)
	if err != nil {
		logger.Error("Failed to compute cart total", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return total, nil
}

// AddToCart merges quantity into an existing line for the product, or
// creates a new line from a catalog snapshot. The bool result reports
// whether a new line was created.
func (s *cartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.CartItem, bool, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, false, ErrInvalidProductID
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, false, err
	}

	existingItem, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, false, err
	}

	if existingItem != nil {
		return s.mergeQuantity(existingItem, quantity)
	}

	resolution := s.catalog.Resolve(ctx, productID)
	if !resolution.Found() {
		if resolution.RemoteUnavailable() {
			logger.Warn("Cannot add to cart: catalog unavailable", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
				"error":      resolution.RemoteErr.Error(),
			})
			return nil, false, ErrCatalogUnavailable
		}
		logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, false, ErrProductNotFound
	}

	product := resolution.Product
	cartItem := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		Image:     product.Image,
	}

	if err := s.cartRepo.Create(cartItem); err != nil {
		if errors.Is(err, repository.ErrDuplicateCartItem) {
			logger.Warn("Concurrent add created the cart item first", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, false, ErrCartItemConflict
		}
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, false, err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"source":       resolution.Source,
	})
	return cartItem, true, nil
}

func (s *cartService) mergeQuantity(existingItem *model.CartItem, quantity int) (*model.CartItem, bool, error) {
	newQuantity := existingItem.Quantity + quantity
	if newQuantity > MaxCartQuantity {
		logger.Warn("Cannot add to cart: quantity limit exceeded", map[string]interface{}{
			"cart_item_id": existingItem.ID,
			"current":      existingItem.Quantity,
			"requested":    quantity,
		})
		return nil, false, ErrQuantityLimitExceeded
	}

	logger.Debug("Updating existing cart item", map[string]interface{}{
		"cart_item_id": existingItem.ID,
		"old_qty":      existingItem.Quantity,
		"new_qty":      newQuantity,
	})

	updated, err := s.cartRepo.UpdateQuantity(existingItem.ID, newQuantity)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, false, ErrCartItemConflict
		}
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": existingItem.ID,
		})
		return nil, false, err
	}
	return updated, false, nil
}

// UpdateCartItem sets the line quantity to exactly quantity.
func (s *cartService) UpdateCartItem(userID string, cartItemID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	if _, err := s.findOwnedItem(userID, cartItemID); err != nil {
		return nil, err
	}

	updated, err := s.cartRepo.UpdateQuantity(cartItemID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	logger.Info("Cart item updated successfully", map[string]interface{}{
		"cart_item_id": cartItemID,
		"quantity":     updated.Quantity,
	})
	return updated, nil
}

func (s *cartService) RemoveFromCart(userID string, cartItemID uint) error {
	logger.Info("Removing item from cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	if _, err := s.findOwnedItem(userID, cartItemID); err != nil {
		return err
	}

	if err := s.cartRepo.Delete(cartItemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return ErrCartItemNotFound
		}
		logger.Error("Failed to remove cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}

	logger.Info("Cart item removed successfully", map[string]interface{}{
		"cart_item_id": cartItemID,
	})
	return nil
}

func (s *cartService) ClearCart(userID string) (int64, error) {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	deleted, err := s.cartRepo.DeleteByUserID(userID)
	if err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}

	logger.Info("Cart cleared successfully", map[string]interface{}{
		"user_id": userID,
		"deleted": deleted,
	})
	return deleted, nil
}

// findOwnedItem hides lines owned by other users behind ErrCartItemNotFound.
func (s *cartService) findOwnedItem(userID string, cartItemID uint) (*model.CartItem, error) {
	cartItem, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			logger.Warn("Cart item not found", map[string]interface{}{
				"cart_item_id": cartItemID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	if cartItem.UserID != userID {
		logger.Warn("Cart item belongs to another user", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return nil, ErrCartItemNotFound
	}
	return cartItem, nil
}
