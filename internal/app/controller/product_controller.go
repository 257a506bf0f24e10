package controller

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/vibecommerce-backend/internal/app/service"
	"github.com/ikkim/vibecommerce-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ListProducts returns one page of the catalog
// GET /api/products?page=&limit=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	page := parseIntQuery(c, "page", service.DefaultProductPage)
	limit := parseIntQuery(c, "limit", service.DefaultProductLimit)

	result, err := ctrl.productService.ListProducts(page, limit)
	if err != nil {
		respondError(c, log, err, "fetch products", map[string]interface{}{
			"page":  page,
			"limit": limit,
		})
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"page":     page,
		"limit":    limit,
		"count":    len(result.Products),
		"has_more": result.Pagination.HasMore,
	})

	c.JSON(http.StatusOK, result)
}

// GetProduct returns a product by ID
// GET /api/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID := c.Param("id")
	product, err := ctrl.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, log, err, "fetch product", map[string]interface{}{
			"product_id": productID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// ExportProducts downloads the catalog as an xlsx workbook
// GET /api/products/export
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var buf bytes.Buffer
	if err := ctrl.productService.ExportCatalog(&buf); err != nil {
		respondError(c, log, err, "export products", nil)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// parseIntQuery returns the integer value of a query parameter, or fallback
// when the parameter is missing or not a number.
func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
