package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ikkim/vibecommerce-backend/internal/app/model"
	"github.com/ikkim/vibecommerce-backend/internal/app/repository"
	"github.com/ikkim/vibecommerce-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultProductPage  = 1
	DefaultProductLimit = 12

	catalogSheetName = "Products"
)

var catalogExportHeaders = []string{"ID", "Name", "Category", "Price", "Description", "Image"}

type ProductService interface {
	ListProducts(page, limit int) (*model.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ExportCatalog(w io.Writer) error
}

type productService struct {
	productRepo repository.ProductRepository
	catalog     CatalogService
}

func NewProductService(productRepo repository.ProductRepository, catalog CatalogService) ProductService {
	return &productService{
		productRepo: productRepo,
		catalog:     catalog,
	}
}

// ListProducts returns one page of the storefront catalog. A page past the
// end yields an empty product list, not an error.
func (s *productService) ListProducts(page, limit int) (*model.ProductPage, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"page":  page,
		"limit": limit,
	})

	if page < 1 || limit < 1 {
		logger.Warn("Invalid pagination parameters", map[string]interface{}{
			"page":  page,
			"limit": limit,
		})
		return nil, ErrInvalidPagination
	}

	all := s.productRepo.FindAll()
	total := len(all)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	// Bounds are checked before multiplying so huge page or limit values
	// land past the end instead of overflowing.
	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := total
	if limit < total-start {
		end = start + limit
	}

	products := make([]model.Product, end-start)
	copy(products, all[start:end])

	logger.Info("Products listed successfully", map[string]interface{}{
		"page":  page,
		"limit": limit,
		"count": len(products),
	})

	return &model.ProductPage{
		Products: products,
		Pagination: model.Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalProducts: total,
			HasMore:       end < total,
			Limit:         limit,
		},
	}, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidProductID
	}

	resolution := s.catalog.Resolve(ctx, id)
	if resolution.Found() {
		return resolution.Product, nil
	}
	if resolution.RemoteUnavailable() {
		return nil, ErrCatalogUnavailable
	}
	return nil, ErrProductNotFound
}

// ExportCatalog writes the storefront catalog to w as an xlsx workbook.
func (s *productService) ExportCatalog(w io.Writer) error {
	products := s.productRepo.FindAll()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), catalogSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(catalogSheetName, "A1", &catalogExportHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.ID, p.Name, p.Category, p.Price, p.Description, p.Image}
		if err := f.SetSheetRow(catalogSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write product row: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		logger.Error("Failed to write catalog export", err)
		return err
	}

	logger.Info("Catalog exported", map[string]interface{}{
		"count": len(products),
	})
	return nil
}
