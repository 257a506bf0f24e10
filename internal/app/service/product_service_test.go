package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
	"github.com/ikkim/vibecommerce-backend/internal/app/repository"
	"github.com/ikkim/vibecommerce-backend/pkg/fakestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupProductServiceTest(remote RemoteCatalog) ProductService {
	productRepo := repository.NewProductRepository()
	catalog := NewCatalogService(remote, productRepo, nil, time.Second)
	return NewProductService(productRepo, catalog)
}

func productIDs(products []model.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestProductService_ListProducts_Defaults(t *testing.T) {
	svc := setupProductServiceTest(nil)

	page, err := svc.ListProducts(DefaultProductPage, DefaultProductLimit)
	require.NoError(t, err)
	assert.Len(t, page.Products, 12)
	assert.Equal(t, model.Pagination{
		CurrentPage:   1,
		TotalPages:    2,
		TotalProducts: 20,
		HasMore:       true,
		Limit:         12,
	}, page.Pagination)
}

func TestProductService_ListProducts_Pages(t *testing.T) {
	svc := setupProductServiceTest(nil)

	page, err := svc.ListProducts(2, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"6", "7", "8", "9", "10"}, productIDs(page.Products))
	assert.True(t, page.Pagination.HasMore)
	assert.Equal(t, 4, page.Pagination.TotalPages)

	page, err = svc.ListProducts(4, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"16", "17", "18", "19", "20"}, productIDs(page.Products))
	assert.False(t, page.Pagination.HasMore)
}

func TestProductService_ListProducts_PastEnd(t *testing.T) {
	svc := setupProductServiceTest(nil)

	page, err := svc.ListProducts(10, 5)
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Len(t, page.Products, 0)
	assert.False(t, page.Pagination.HasMore)
	assert.Equal(t, 10, page.Pagination.CurrentPage)
}

func TestProductService_ListProducts_HugeValues(t *testing.T) {
	svc := setupProductServiceTest(nil)

	page, err := svc.ListProducts(1<<62, 4)
	require.NoError(t, err)
	assert.Len(t, page.Products, 0)
	assert.False(t, page.Pagination.HasMore)
	assert.Equal(t, 5, page.Pagination.TotalPages)

	page, err = svc.ListProducts(1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, page.Products, 20)
	assert.False(t, page.Pagination.HasMore)
	assert.Equal(t, 1, page.Pagination.TotalPages)

	page, err = svc.ListProducts(math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, page.Products, 0)
}

func TestProductService_ListProducts_InvalidPagination(t *testing.T) {
	svc := setupProductServiceTest(nil)

	for _, tc := range [][2]int{{0, 12}, {1, 0}, {-1, 5}, {2, -3}} {
		_, err := svc.ListProducts(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidPagination, "page=%d limit=%d", tc[0], tc[1])
	}
}

func TestProductService_GetProduct(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		svc := setupProductServiceTest(nil)

		product, err := svc.GetProduct(context.Background(), "9")
		require.NoError(t, err)
		assert.Equal(t, "Leather Boots", product.Name)
	})

	t.Run("not found", func(t *testing.T) {
		svc := setupProductServiceTest(nil)

		_, err := svc.GetProduct(context.Background(), "404")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("remote unavailable", func(t *testing.T) {
		svc := setupProductServiceTest(&stubRemoteCatalog{err: fmt.Errorf("%w: reset", fakestore.ErrNetworkError)})

		_, err := svc.GetProduct(context.Background(), "404")
		assert.ErrorIs(t, err, ErrCatalogUnavailable)
	})

	t.Run("blank id", func(t *testing.T) {
		svc := setupProductServiceTest(nil)

		_, err := svc.GetProduct(context.Background(), " ")
		assert.ErrorIs(t, err, ErrInvalidProductID)
	})
}

func TestProductService_ExportCatalog(t *testing.T) {
	svc := setupProductServiceTest(nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCatalog(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(catalogSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 21)
	assert.Equal(t, catalogExportHeaders, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Classic Wool Sweater", rows[1][1])
	assert.Equal(t, "Knitwear", rows[1][2])
	assert.Equal(t, "299.99", rows[1][3])
}
