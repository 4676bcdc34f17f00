// Command import-stock loads a supplier CSV export into one warehouse.
//
// Each matched row increments the warehouse ledger and appends a RESTOCK
// transaction, or an ADJUSTMENT with -as-adjustments when reconciling a
// physical count rather than a delivery. Rows whose SKU cannot be matched
// against the catalog are reported, never guessed.
//
// Usage:
//
//	go run ./cmd/import-stock -file "./purchases.csv" -warehouse 1 -date "January 31, 2026"
//	go run ./cmd/import-stock -file "./counted.csv" -warehouse 1 -as-adjustments
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"stockroom/internal/core"
	"stockroom/internal/db"
	"stockroom/internal/importer"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "", "path to the supplier CSV export (required)")
	warehouse := flag.Int("warehouse", 0, "id of the receiving warehouse (required)")
	date := flag.String("date", time.Now().Format("January 2, 2006"), "date used in the reference note")
	asAdjustments := flag.Bool("as-adjustments", false, "record ADJUSTMENT transactions instead of RESTOCK")
	dryRun := flag.Bool("dry-run", false, "match and report without writing anything")
	flag.Parse()

	if *file == "" || *warehouse <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, url)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	var warehouseName string
	err = pool.QueryRow(ctx, "SELECT name FROM warehouses WHERE id = $1", *warehouse).Scan(&warehouseName)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("Warehouse %d does not exist", *warehouse)
	}
	if err != nil {
		log.Fatalf("Failed to resolve warehouse %d: %v", *warehouse, err)
	}

	catalog := core.NewCatalogService(pool)
	stock := core.NewStockService(pool)

	products, err := catalog.Products(ctx)
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}
	matcher := importer.NewMatcher(products)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	defer f.Close()

	rows, rowErrs, err := importer.ParseStock(f)
	if err != nil {
		log.Fatalf("Failed to parse CSV: %v", err)
	}

	mode := "RESTOCK"
	if *asAdjustments {
		mode = "ADJUSTMENT"
	}

	fmt.Printf("Loaded %d products from the catalog\n", len(products))
	fmt.Printf("CSV file: %s (%d usable rows)\n", *file, len(rows))
	fmt.Printf("Target warehouse: %s (id %d)\n", warehouseName, *warehouse)
	fmt.Printf("Import date: %s\n", *date)
	fmt.Printf("Transaction type: %s\n", mode)
	if *dryRun {
		fmt.Println("Dry run: nothing will be written")
	}
	fmt.Println()

	imported := 0
	var skipped []importer.StockRow
	var failures []string
	for _, e := range rowErrs {
		failures = append(failures, e.Error())
	}

	for _, row := range rows {
		product, ok := matcher.Match(row.SKU)
		if !ok {
			skipped = append(skipped, row)
			continue
		}

		if *dryRun {
			fmt.Printf("  ~ Would import: %s -> %s x %d\n", row.SKU, product.Name, row.Quantity)
			imported++
			continue
		}

		var res *core.MutationResult
		if *asAdjustments {
			res, err = stock.Adjust(ctx, nil, core.AdjustmentInput{
				WarehouseID: *warehouse,
				ProductID:   product.ID,
				Quantity:    row.Quantity,
				Note:        fmt.Sprintf("Reconciliation: %s - %s", *date, row.Description),
			})
		} else {
			res, err = stock.RecordPurchase(ctx, nil, core.PurchaseInput{
				WarehouseID: *warehouse,
				ProductID:   product.ID,
				Quantity:    row.Quantity,
				Note:        fmt.Sprintf("Purchase: %s - %s", *date, row.Description),
			})
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("row %d: failed to import %s: %v", row.Row, row.SKU, err))
			continue
		}

		imported++
		fmt.Printf("  + Imported: %s -> %s x %d (on hand: %d)\n", row.SKU, product.Name, row.Quantity, res.NewQuantity)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("IMPORT COMPLETE")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Successfully imported: %d items\n", imported)
	fmt.Printf("Skipped (product not found): %d items\n", len(skipped))
	fmt.Printf("Errors: %d\n", len(failures))

	if len(skipped) > 0 {
		fmt.Println()
		fmt.Println("SKIPPED ITEMS (not in the catalog):")
		fmt.Println(strings.Repeat("-", 50))
		for _, row := range skipped {
			fmt.Printf("  * %s: %s (qty: %d)\n", row.SKU, row.Description, row.Quantity)
		}
		fmt.Println()
		fmt.Println("Add the missing products to the catalog, then re-run the import.")
	}

	if len(failures) > 0 {
		fmt.Println()
		fmt.Println("ERRORS:")
		fmt.Println(strings.Repeat("-", 50))
		for _, failure := range failures {
			fmt.Printf("  * %s\n", failure)
		}
		os.Exit(1)
	}
}
