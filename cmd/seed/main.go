package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ikkim/vibecommerce-backend/config"
	"github.com/ikkim/vibecommerce-backend/internal/app/repository"
	"github.com/ikkim/vibecommerce-backend/internal/app/service"
	"github.com/ikkim/vibecommerce-backend/internal/db"
	"github.com/ikkim/vibecommerce-backend/pkg/fakestore"
	"github.com/ikkim/vibecommerce-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// cartLine is one row of the import sheet.
type cartLine struct {
	Row       int
	ProductID string
	Quantity  int
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/seed/main.go <xlsx_file_path> [--yes]")
		os.Exit(1)
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && (os.Args[2] == "--yes" || os.Args[2] == "-y")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	lines, skipped, err := readCartLinesFromXLSX(filePath)
	if err != nil {
		logger.Fatal("Failed to read XLSX", err)
	}

	fmt.Printf("Cart lines to import for %s: %d (skipped rows: %d)\n", cfg.Cart.UserID, len(lines), skipped)
	if len(lines) == 0 {
		return
	}

	if !assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	var remote service.RemoteCatalog
	if cfg.Catalog.RemoteEnabled {
		client, err := fakestore.NewClient(fakestore.Config{
			BaseURL: cfg.Catalog.BaseURL,
			Timeout: cfg.Catalog.Timeout,
		})
		if err != nil {
			logger.Fatal("Failed to create remote catalog client", err)
		}
		remote = client
	}

	catalog := service.NewCatalogService(remote, repository.NewProductRepository(), nil, cfg.Catalog.Timeout)
	cartService := service.NewCartService(repository.NewCartRepository(db.GetDB()), catalog)

	imported, failed := importCartLines(context.Background(), cartService, cfg.Cart.UserID, lines)

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Imported lines: %d\n", imported)
	fmt.Printf("  Failed lines: %d\n", failed)
}

func importCartLines(ctx context.Context, cartService service.CartService, userID string, lines []cartLine) (int, int) {
	imported, failed := 0, 0
	for _, line := range lines {
		if _, _, err := cartService.AddToCart(ctx, userID, line.ProductID, line.Quantity); err != nil {
			logger.Warn("Skipping cart line", map[string]interface{}{
				"row":        line.Row,
				"product_id": line.ProductID,
				"quantity":   line.Quantity,
				"error":      err.Error(),
			})
			failed++
			continue
		}
		imported++
	}
	return imported, failed
}

// readCartLinesFromXLSX reads productId and quantity from the first two
// columns of the first sheet. The first row is a header.
func readCartLinesFromXLSX(filePath string) ([]cartLine, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var lines []cartLine
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			skipped++
			continue
		}

		productID := strings.TrimSpace(row[0])
		quantity, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if productID == "" || err != nil || service.ValidateQuantity(quantity) != nil {
			skipped++
			continue
		}

		lines = append(lines, cartLine{Row: i + 1, ProductID: productID, Quantity: quantity})
	}

	return lines, skipped, nil
}
