package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/vibecommerce-backend/internal/errors"
)

// Context keys for shopper information
const (
	UserIDKey = "user_id"
)

// ShopperMiddleware attaches the shopper identity to each request. The
// storefront has no login, so every request acts for one configured shopper.
type ShopperMiddleware struct {
	userID string
}

func NewShopperMiddleware(userID string) *ShopperMiddleware {
	return &ShopperMiddleware{
		userID: strings.TrimSpace(userID),
	}
}

// Identify sets the shopper ID on the context (required).
func (m *ShopperMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.userID == "" {
			log := GetLoggerFromContext(c)
			log.Error("Shopper identity is not configured", nil, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusInternalServerError, errors.InternalServerError,
				"Something went wrong. Please try again.")
			c.Abort()
			return
		}

		c.Set(UserIDKey, m.userID)
		c.Next()
	}
}

// GetUserID retrieves the shopper ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
