package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"apartment-backend/internal/config"
	"apartment-backend/internal/db"
)

// Domain tables in dependency order; users survive unless -users is given.
var domainTables = []string{
	"temporary_absences",
	"temporary_residences",
	"payments",
	"contributions",
	"contribution_types",
	"utility_updates",
	"fee_records",
	"residents",
	"households",
	"login_logs",
}

var sequences = []string{
	"contributions_id_seq",
	"payments_id_seq",
	"login_logs_id_seq",
}

func main() {
	clearUsers := flag.Bool("users", false, "also delete operator accounts")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("   Reset Database")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL BUILDING DATA!")
	fmt.Println()
	fmt.Println("This will clear households, residents, the fee ledger, contributions,")
	fmt.Println("temporary residence/absence records, payments and login logs.")
	if *clearUsers {
		fmt.Println("Operator accounts will be deleted too.")
	}
	fmt.Println()

	if !*yes {
		fmt.Print("Type 'yes' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Reset cancelled.")
			return
		}
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	tables := domainTables
	if *clearUsers {
		tables = append(tables, "users")
	}

	err = db.NewTxManager(pool).WithinTx(ctx, func(ctx context.Context) error {
		conn := db.Conn(ctx, pool)
		for _, table := range tables {
			if _, err := conn.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
				return fmt.Errorf("truncate %s: %w", table, err)
			}
			fmt.Printf("  - Cleared %s\n", table)
		}
		for _, seq := range sequences {
			if _, err := conn.Exec(ctx, fmt.Sprintf("ALTER SEQUENCE %s RESTART WITH 1", seq)); err != nil {
				return fmt.Errorf("reset sequence %s: %w", seq, err)
			}
		}
		fmt.Println("  - Reset ID sequences")
		return nil
	})
	if err != nil {
		log.Fatalf("Reset failed, nothing was changed: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Database reset successful!")
	if *clearUsers {
		fmt.Println("Create an operator with: go run ./cmd/adduser -username admin -password <secret>")
	}
}
