package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/domain"
	"github.com/tacticalshop/storeapi/internal/repository"
	"github.com/tacticalshop/storeapi/pkg/errors"
)

var importColumns = []string{
	"sku", "name_en", "name_ka", "description_en", "description_ka",
	"category_slug", "price", "currency", "stock", "min_order_qty", "sizes",
}

// RowIssue is one per-row error or warning from a CSV import
type RowIssue struct {
	Row     int    `json:"row"` // 1-based, excluding the header
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportResult reports what a CSV import did. Rows with errors are
// skipped; rows with warnings are inserted anyway.
type ImportResult struct {
	TotalRows int        `json:"total_rows"`
	Inserted  int        `json:"inserted"`
	Skipped   int        `json:"skipped"`
	Progress  int        `json:"progress"` // percentage, 100 when done
	Errors    []RowIssue `json:"errors"`
	Warnings  []RowIssue `json:"warnings"`
}

type importService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewImportService creates a new CSV import service
func NewImportService(repos *repository.Repositories, logger *zap.Logger) *importService {
	return &importService{
		repos:  repos,
		logger: logger,
	}
}

// ImportCSV validates each row then inserts sequentially. A row that fails
// validation is skipped and recorded; the import keeps going.
func (s *importService) ImportCSV(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, &errors.ErrValidation{Field: "file", Message: "empty or unreadable CSV"}
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, &errors.ErrValidation{Field: "file", Message: fmt.Sprintf("malformed CSV: %v", err)}
	}

	result := &ImportResult{TotalRows: len(records)}

	for i, record := range records {
		row := i + 1

		product, issues := s.parseRow(record, columns)
		var fatal bool
		for _, issue := range issues {
			issue.Row = row
			if strings.HasPrefix(issue.Message, "warning:") {
				issue.Message = strings.TrimPrefix(issue.Message, "warning: ")
				result.Warnings = append(result.Warnings, issue)
			} else {
				result.Errors = append(result.Errors, issue)
				fatal = true
			}
		}

		if !fatal {
			if _, err := s.repos.Product.GetBySKU(ctx, product.SKU); err == nil {
				result.Errors = append(result.Errors, RowIssue{
					Row: row, Field: "sku", Message: "duplicate SKU, product already exists",
				})
				fatal = true
			}
		}

		if !fatal && product.CategorySlug != "" {
			category, err := s.repos.Category.GetBySlug(ctx, product.CategorySlug)
			if err != nil {
				result.Errors = append(result.Errors, RowIssue{
					Row: row, Field: "category_slug", Message: "unknown category",
				})
				fatal = true
			} else {
				product.Product.CategoryID = &category.ID
			}
		}

		if fatal {
			result.Skipped++
		} else {
			if err := s.repos.Product.Create(ctx, product.Product); err != nil {
				s.logger.Error("Failed to insert imported product",
					zap.Int("row", row),
					zap.String("sku", product.SKU),
					zap.Error(err),
				)
				result.Errors = append(result.Errors, RowIssue{
					Row: row, Field: "sku", Message: "insert failed",
				})
				result.Skipped++
			} else {
				result.Inserted++
			}
		}

		result.Progress = (i + 1) * 100 / len(records)
	}

	if result.TotalRows == 0 {
		result.Progress = 100
	}

	s.logger.Info("CSV import finished",
		zap.Int("total", result.TotalRows),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

type importedProduct struct {
	*domain.Product
	CategorySlug string
}

func (s *importService) parseRow(record []string, columns map[string]int) (*importedProduct, []RowIssue) {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var issues []RowIssue
	product := &importedProduct{Product: &domain.Product{IsActive: true}}

	product.SKU = get("sku")
	if product.SKU == "" {
		issues = append(issues, RowIssue{Field: "sku", Message: "required"})
	}

	product.Name.EN = get("name_en")
	if product.Name.EN == "" {
		issues = append(issues, RowIssue{Field: "name_en", Message: "required"})
	}
	product.Name.KA = get("name_ka")
	if product.Name.KA == "" && product.Name.EN != "" {
		issues = append(issues, RowIssue{Field: "name_ka", Message: "warning: missing Georgian name, falling back to English"})
	}

	product.Description.EN = get("description_en")
	product.Description.KA = get("description_ka")
	product.CategorySlug = get("category_slug")

	price, err := strconv.ParseFloat(get("price"), 64)
	if err != nil || price < 0 {
		issues = append(issues, RowIssue{Field: "price", Message: "must be a non-negative number"})
	}
	product.Price = price

	product.Currency = get("currency")
	if !supportedCurrencies[product.Currency] {
		issues = append(issues, RowIssue{Field: "currency", Message: "unsupported currency code"})
	}

	stock, err := strconv.Atoi(get("stock"))
	if err != nil || stock < 0 {
		issues = append(issues, RowIssue{Field: "stock", Message: "must be a non-negative integer"})
	}
	product.Stock = stock

	minQty := 1
	if raw := get("min_order_qty"); raw != "" {
		minQty, err = strconv.Atoi(raw)
		if err != nil || minQty < 1 {
			issues = append(issues, RowIssue{Field: "min_order_qty", Message: "must be a positive integer"})
			minQty = 1
		}
	}
	product.MinOrderQty = minQty

	if raw := get("sizes"); raw != "" {
		for _, size := range strings.Split(raw, "|") {
			if size = strings.TrimSpace(size); size != "" {
				product.Sizes = append(product.Sizes, size)
			}
		}
	}

	return product, issues
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"sku", "name_en", "price", "currency", "stock"} {
		if _, ok := columns[required]; !ok {
			return nil, &errors.ErrValidation{
				Field:   "file",
				Message: fmt.Sprintf("missing required column %q (expected: %s)", required, strings.Join(importColumns, ", ")),
			}
		}
	}

	return columns, nil
}
