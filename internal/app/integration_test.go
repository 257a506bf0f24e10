package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/vibecommerce-backend/config"
	"github.com/ikkim/vibecommerce-backend/internal/app/controller"
	"github.com/ikkim/vibecommerce-backend/internal/app/repository"
	"github.com/ikkim/vibecommerce-backend/internal/app/service"
	"github.com/ikkim/vibecommerce-backend/internal/db"
	"github.com/ikkim/vibecommerce-backend/internal/middleware"
	"github.com/ikkim/vibecommerce-backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const shopperID = "mock-user-001"

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
		Cart:   config.CartConfig{UserID: shopperID},
	}

	// Setup repositories
	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository()

	// Setup services (no remote catalog: the fallback table serves every lookup)
	catalogService := service.NewCatalogService(nil, productRepo, nil, time.Second)
	productService := service.NewProductService(productRepo, catalogService)
	cartService := service.NewCartService(cartRepo, catalogService)
	checkoutService := service.NewCheckoutService()

	r := router.NewRouter(
		controller.NewProductController(productService),
		controller.NewCartController(cartService),
		controller.NewCheckoutController(checkoutService),
		middleware.NewShopperMiddleware(cfg.Cart.UserID),
		cfg,
	)

	return &TestServer{
		Router: r.Setup(),
		DB:     testDB,
	}
}

func (ts *TestServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestCompleteShopperJourney(t *testing.T) {
	ts := setupIntegrationTest(t)

	// 1. Browse products
	t.Log("Step 1: Browse products")
	w, resp := ts.do(t, http.MethodGet, "/api/products?page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := resp["products"].([]interface{})
	require.Len(t, products, 5)
	assert.Equal(t, "6", products[0].(map[string]interface{})["id"])
	pagination := resp["pagination"].(map[string]interface{})
	assert.Equal(t, true, pagination["hasMore"])
	assert.Equal(t, float64(20), pagination["totalProducts"])

	// 2. Add product to cart
	t.Log("Step 2: Add to cart")
	w, resp = ts.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": "1", "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	first := resp["cartItem"].(map[string]interface{})
	firstID := uint(first["id"].(float64))

	// 3. Same product merges into the existing line
	t.Log("Step 3: Merge quantity")
	w, resp = ts.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": "1", "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), resp["cartItem"].(map[string]interface{})["quantity"])

	w, _ = ts.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": "2", "quantity": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	// 4. View cart
	t.Log("Step 4: View cart")
	w, resp = ts.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["items"], 2)
	assert.InDelta(t, 299.99*3+799.99, resp["total"], 1e-6)

	// 5. Remove a line
	t.Log("Step 5: Remove item")
	w, _ = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/cart/%d", firstID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = ts.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := resp["items"].([]interface{})
	require.Len(t, items, 1)
	remaining := items[0].(map[string]interface{})
	assert.InDelta(t, 799.99, resp["total"], 1e-6)

	// 6. Checkout with the cart contents
	t.Log("Step 6: Checkout")
	w, resp = ts.do(t, http.MethodPost, "/api/checkout", map[string]interface{}{
		"cartItems": []map[string]interface{}{{
			"productId": remaining["productId"],
			"name":      remaining["name"],
			"price":     remaining["price"],
			"quantity":  remaining["quantity"],
		}},
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp["orderId"])
	assert.InDelta(t, 799.99, resp["total"], 1e-9)

	// Checkout never touches the stored cart
	w, resp = ts.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["items"], 1)

	// 7. Clear cart
	t.Log("Step 7: Clear cart")
	w, resp = ts.do(t, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["deleted"])
}

func TestProductPagination(t *testing.T) {
	ts := setupIntegrationTest(t)

	w, resp := ts.do(t, http.MethodGet, "/api/products?page=4&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["products"], 5)
	assert.Equal(t, false, resp["pagination"].(map[string]interface{})["hasMore"])

	w, resp = ts.do(t, http.MethodGet, "/api/products?page=abc&limit=xyz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["products"], 12)

	w, resp = ts.do(t, http.MethodGet, "/api/products?page=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid pagination parameters", resp["error"])
}

func TestErrorResponsesCarryRequestID(t *testing.T) {
	ts := setupIntegrationTest(t)

	w, resp := ts.do(t, http.MethodGet, "/api/products/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", resp["error"])
	assert.Equal(t, "CATALOG_PRODUCT_NOT_FOUND", resp["code"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
