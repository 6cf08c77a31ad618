// Package ingest reads product export files (CSV) into product records.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"taxo/internal/models"
)

// ParsedFile is the outcome of reading one product file.
type ParsedFile struct {
	Products []models.Product
	Skipped  int // rows with a blank name after cleaning
}

// ReadProductsFile reads and parses a CSV product export from path.
func ReadProductsFile(path string) (*ParsedFile, error) {
	binary, err := IsLikelyBinary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect '%s': %w", path, err)
	}
	if binary {
		return nil, fmt.Errorf("'%s' looks like a binary file, expected CSV", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	cleaned, err := CleanFileContent(data, path)
	if err != nil {
		return nil, err
	}
	return ParseProducts(strings.NewReader(cleaned))
}

// ParseProducts parses CSV rows into products. The first row must be a header
// containing a "name" column; "brand", "category" and "subcategory" columns
// are optional and matched case-insensitively. Rows whose name cleans down to
// an empty string are counted as skipped rather than failing the whole file.
func ParseProducts(r io.Reader) (*ParsedFile, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty product file")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	nameIdx, ok := cols["name"]
	if !ok {
		return nil, fmt.Errorf("product file header must contain a 'name' column, got %v", header)
	}

	result := &ParsedFile{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		name := CleanName(field(record, nameIdx))
		if name == "" {
			result.Skipped++
			continue
		}

		product := models.Product{Name: name}
		if idx, ok := cols["brand"]; ok {
			if brand := CleanName(field(record, idx)); brand != "" {
				product.Brand = &brand
			}
		}
		if idx, ok := cols["category"]; ok {
			if category := CleanName(field(record, idx)); category != "" {
				product.Category = &category
			}
		}
		if idx, ok := cols["subcategory"]; ok {
			if subcategory := CleanName(field(record, idx)); subcategory != "" {
				product.Subcategory = &subcategory
			}
		}
		result.Products = append(result.Products, product)
	}
	return result, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
