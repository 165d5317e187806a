package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/config"
	"github.com/tacticalshop/storeapi/internal/repository/postgres"
	"github.com/tacticalshop/storeapi/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/import-products/main.go <products.csv>")
		os.Exit(1)
	}

	path := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open CSV file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	repos := postgres.NewRepositories(db, logger)
	importer := service.NewImportService(repos, logger)

	result, err := importer.ImportCSV(context.Background(), file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Import finished: %d rows, %d inserted, %d skipped\n",
		result.TotalRows, result.Inserted, result.Skipped)

	for _, issue := range result.Errors {
		fmt.Printf("  row %d [%s]: %s\n", issue.Row, issue.Field, issue.Message)
	}
	for _, issue := range result.Warnings {
		fmt.Printf("  row %d [%s]: warning: %s\n", issue.Row, issue.Field, issue.Message)
	}

	if result.Skipped > 0 {
		os.Exit(2)
	}
}
