// Command verify-stock recomputes on-hand quantities from the transaction
// log and compares them against the stock ledger.
//
// The ledger is only trustworthy if it equals the sum of its history:
// inbound RESTOCK, ADJUSTMENT and TRANSFER_IN minus outbound SALE and
// TRANSFER_OUT. Any difference means a write bypassed the service layer.
// Exits non-zero when a discrepancy is found.
//
// Usage:
//
//	go run ./cmd/verify-stock              # audit every warehouse
//	go run ./cmd/verify-stock -warehouse 1 # audit a single warehouse
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"stockroom/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type productRef struct {
	SKU  string
	Name string
}

type warehouseRef struct {
	ID   int
	Name string
}

// stockCheck accumulates one product's movements within one warehouse.
type stockCheck struct {
	unitsIn  int
	unitsOut int
	onHand   int
}

func main() {
	warehouse := flag.Int("warehouse", 0, "audit a single warehouse id (default: all)")
	flag.Parse()

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

	products := loadProducts(ctx, pool)
	warehouses := loadWarehouses(ctx, pool, *warehouse)

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("STOCK LEDGER AUDIT")
	fmt.Printf("Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println(strings.Repeat("=", 70))

	mismatches := 0
	for _, w := range warehouses {
		mismatches += auditWarehouse(ctx, pool, w, products)
	}

	fmt.Println()
	if mismatches == 0 {
		fmt.Println("No discrepancies found. The ledger matches its transaction history.")
		return
	}
	fmt.Printf("%d products with discrepancies. Inspect the marked rows above.\n", mismatches)
	os.Exit(1)
}

func loadProducts(ctx context.Context, pool *pgxpool.Pool) map[int]productRef {
	rows, err := pool.Query(ctx, "SELECT id, sku, name FROM products")
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}
	defer rows.Close()

	products := make(map[int]productRef)
	for rows.Next() {
		var id int
		var ref productRef
		if err := rows.Scan(&id, &ref.SKU, &ref.Name); err != nil {
			log.Fatalf("Failed to scan product: %v", err)
		}
		products[id] = ref
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to read products: %v", err)
	}
	return products
}

func loadWarehouses(ctx context.Context, pool *pgxpool.Pool, id int) []warehouseRef {
	query := "SELECT id, name FROM warehouses ORDER BY id"
	var args []any
	if id > 0 {
		query = "SELECT id, name FROM warehouses WHERE id = $1"
		args = append(args, id)
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		log.Fatalf("Failed to load warehouses: %v", err)
	}
	defer rows.Close()

	var warehouses []warehouseRef
	for rows.Next() {
		var w warehouseRef
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			log.Fatalf("Failed to scan warehouse: %v", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to read warehouses: %v", err)
	}
	if len(warehouses) == 0 {
		if id > 0 {
			log.Fatalf("Warehouse %d does not exist", id)
		}
		log.Fatal("No warehouses found")
	}
	return warehouses
}

// auditWarehouse prints one warehouse's comparison table and returns the
// number of products whose ledger quantity differs from the transaction net.
func auditWarehouse(ctx context.Context, pool *pgxpool.Pool, w warehouseRef, products map[int]productRef) int {
	checks := make(map[int]*stockCheck)
	check := func(pid int) *stockCheck {
		c, ok := checks[pid]
		if !ok {
			c = &stockCheck{}
			checks[pid] = c
		}
		return c
	}

	rows, err := pool.Query(ctx, `
		SELECT product_id,
		       COALESCE(SUM(quantity) FILTER (WHERE transaction_type IN ('RESTOCK', 'ADJUSTMENT', 'TRANSFER_IN') AND to_warehouse_id = $1), 0),
		       COALESCE(SUM(quantity) FILTER (WHERE transaction_type IN ('SALE', 'TRANSFER_OUT') AND from_warehouse_id = $1), 0)
		FROM transactions
		WHERE to_warehouse_id = $1 OR from_warehouse_id = $1
		GROUP BY product_id
	`, w.ID)
	if err != nil {
		log.Fatalf("Failed to aggregate transactions for warehouse %d: %v", w.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var pid, in, out int
		if err := rows.Scan(&pid, &in, &out); err != nil {
			log.Fatalf("Failed to scan transaction totals: %v", err)
		}
		c := check(pid)
		c.unitsIn = in
		c.unitsOut = out
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to read transaction totals: %v", err)
	}

	invRows, err := pool.Query(ctx,
		"SELECT product_id, quantity_on_hand FROM inventory_items WHERE warehouse_id = $1", w.ID)
	if err != nil {
		log.Fatalf("Failed to load inventory for warehouse %d: %v", w.ID, err)
	}
	defer invRows.Close()

	for invRows.Next() {
		var pid, qty int
		if err := invRows.Scan(&pid, &qty); err != nil {
			log.Fatalf("Failed to scan inventory row: %v", err)
		}
		check(pid).onHand = qty
	}
	if err := invRows.Err(); err != nil {
		log.Fatalf("Failed to read inventory rows: %v", err)
	}

	fmt.Println()
	fmt.Printf("WAREHOUSE: %s (id %d)\n", w.Name, w.ID)

	if len(checks) == 0 {
		fmt.Println("  (no stock movements recorded)")
		return 0
	}

	fmt.Printf("%-14s %-34s %6s %6s %6s %6s %6s\n", "SKU", "Product", "TX+", "TX-", "NET", "DB", "DIFF")
	fmt.Println(strings.Repeat("-", 85))

	pids := make([]int, 0, len(checks))
	for pid := range checks {
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	mismatches := 0
	for _, pid := range pids {
		c := checks[pid]
		net := c.unitsIn - c.unitsOut
		diff := c.onHand - net

		marker := ""
		if diff != 0 {
			marker = " !"
			mismatches++
		}

		ref := products[pid]
		fmt.Printf("%-14.14s %-34.34s %6d %6d %6d %6d %+6d%s\n",
			ref.SKU, ref.Name, c.unitsIn, c.unitsOut, net, c.onHand, diff, marker)
	}

	fmt.Println()
	fmt.Println("Legend: TX+ inbound, TX- outbound, NET = TX+ - TX-, DB = ledger quantity, DIFF = DB - NET")
	return mismatches
}
