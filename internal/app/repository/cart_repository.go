package repository

import (
	"errors"
	"strings"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
	"github.com/ikkim/vibecommerce-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrDuplicateCartItem = errors.New("item already exists in cart, use update instead")
	ErrInvalidCartItem   = errors.New("invalid cart item")
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindByUserID(userID string) ([]model.CartItem, error)
	FindByID(id uint) (*model.CartItem, error)
	FindByUserAndProduct(userID, productID string) (*model.CartItem, error)
	UpdateQuantity(id uint, quantity int) (*model.CartItem, error)
	Delete(id uint) error
	DeleteByUserID(userID string) (int64, error)
	TotalByUserID(userID string) (float64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":    cartItem.UserID,
		"product_id": cartItem.ProductID,
		"quantity":   cartItem.Quantity,
	})

	if err := validateNewCartItem(cartItem); err != nil {
		logger.Warn("Rejected invalid cart item", map[string]interface{}{
			"user_id":    cartItem.UserID,
			"product_id": cartItem.ProductID,
			"error":      err.Error(),
		})
		return err
	}

	if err := r.db.Create(cartItem).Error; err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Cart item already exists for user and product", map[string]interface{}{
				"user_id":    cartItem.UserID,
				"product_id": cartItem.ProductID,
			})
			return ErrDuplicateCartItem
		}
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":    cartItem.UserID,
			"product_id": cartItem.ProductID,
			"quantity":   cartItem.Quantity,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"product_id":   cartItem.ProductID,
	})
	return nil
}

// FindByUserID returns the user's cart, newest first.
func (r *cartRepository) FindByUserID(userID string) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	cartItems := []model.CartItem{}
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by ID in database", map[string]interface{}{
		"cart_item_id": id,
	})

	var cartItem model.CartItem
	err := r.db.First(&cartItem, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}

	return &cartItem, nil
}

func (r *cartRepository) FindByUserAndProduct(userID, productID string) (*model.CartItem, error) {
	logger.Debug("Finding cart item by user and product in database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	var cartItem model.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&cartItem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to find cart item by user and product in database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Debug("Cart item found by user and product in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      userID,
		"product_id":   productID,
	})
	return &cartItem, nil
}

// UpdateQuantity replaces the stored quantity; it does not add to it.
func (r *cartRepository) UpdateQuantity(id uint, quantity int) (*model.CartItem, error) {
	logger.Debug("Updating cart item quantity in database", map[string]interface{}{
		"cart_item_id": id,
		"quantity":     quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidCartItem
	}

	result := r.db.Model(&model.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		logger.Error("Failed to update cart item quantity in database", result.Error, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCartItemNotFound
	}

	return r.FindByID(id)
}

func (r *cartRepository) Delete(id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	result := r.db.Delete(&model.CartItem{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete cart item from database", result.Error, map[string]interface{}{
			"cart_item_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_item_id": id,
	})
	return nil
}

func (r *cartRepository) DeleteByUserID(userID string) (int64, error) {
	logger.Debug("Deleting cart items by user ID from database", map[string]interface{}{
		"user_id": userID,
	})

	result := r.db.Where("user_id = ?", userID).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete cart items by user ID from database", result.Error, map[string]interface{}{
			"user_id": userID,
		})
		return 0, result.Error
	}

	logger.Debug("Cart items deleted by user ID from database", map[string]interface{}{
		"user_id": userID,
		"deleted": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *cartRepository) TotalByUserID(userID string) (float64, error) {
	items, err := r.FindByUserID(userID)
	if err != nil {
		return 0, err
	}
	return model.SumSubtotals(items), nil
}

func validateNewCartItem(item *model.CartItem) error {
	if strings.TrimSpace(item.UserID) == "" ||
		strings.TrimSpace(item.ProductID) == "" ||
		strings.TrimSpace(item.Name) == "" {
		return ErrInvalidCartItem
	}
	if item.Quantity < 1 || item.Price < 0 {
		return ErrInvalidCartItem
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
