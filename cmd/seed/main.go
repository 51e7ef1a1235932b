package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/recipehub/recipehub-backend/config"
	"github.com/recipehub/recipehub-backend/internal/app/model"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Fixture importer for the ingredient and tag reference catalogs.
// Supports .csv, .json and .xlsx files; rows are applied with
// get-or-create, so re-running the same file is safe.
//
// Usage:
//   go run cmd/seed/main.go -type ingredients data/ingredients.csv
//   go run cmd/seed/main.go -type tags data/tags.csv

type ingredientRow struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

type tagRow struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func main() {
	fixtureType := flag.String("type", "ingredients", "fixture type: ingredients or tags")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: go run cmd/seed/main.go [-type ingredients|tags] <file>")
	}
	filePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	fmt.Printf("Reading fixture file: %s\n", filePath)

	switch *fixtureType {
	case "ingredients":
		if err := importIngredients(filePath); err != nil {
			log.Fatal("Import failed:", err)
		}
	case "tags":
		if err := importTags(filePath); err != nil {
			log.Fatal("Import failed:", err)
		}
	default:
		log.Fatalf("Unknown fixture type: %s", *fixtureType)
	}

	fmt.Println("Import completed successfully!")
}

// readRows loads raw cell rows from a CSV or XLSX file
func readRows(filePath string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV rows: %w", err)
		}
		return rows, nil

	case ".xlsx":
		f, err := excelize.OpenFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open XLSX file: %w", err)
		}
		defer f.Close()

		sheetName := f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("no sheets found in XLSX file")
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read rows: %w", err)
		}
		return rows, nil
	}

	return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
}

func importIngredients(filePath string) error {
	var items []ingredientRow

	if strings.ToLower(filepath.Ext(filePath)) == ".json" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		rows, err := readRows(filePath)
		if err != nil {
			return err
		}
		for i, row := range rows {
			// Tolerate a header row
			if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
				continue
			}
			if len(row) < 2 {
				continue
			}
			items = append(items, ingredientRow{
				Name:            strings.TrimSpace(row[0]),
				MeasurementUnit: strings.TrimSpace(row[1]),
			})
		}
	}

	fmt.Printf("Total ingredients to import: %d\n", len(items))

	ingredientRepo := repository.NewIngredientRepository(db.GetDB())
	imported := 0
	skipped := 0
	for _, item := range items {
		if item.Name == "" || item.MeasurementUnit == "" {
			skipped++
			continue
		}
		if err := ingredientRepo.GetOrCreate(&model.Ingredient{
			Name:            item.Name,
			MeasurementUnit: item.MeasurementUnit,
		}); err != nil {
			return fmt.Errorf("failed to import ingredient %q: %w", item.Name, err)
		}
		imported++
	}

	fmt.Printf("Ingredients imported: %d, skipped: %d\n", imported, skipped)
	return nil
}

func importTags(filePath string) error {
	var items []tagRow

	if strings.ToLower(filepath.Ext(filePath)) == ".json" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		rows, err := readRows(filePath)
		if err != nil {
			return err
		}
		for i, row := range rows {
			if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
				continue
			}
			if len(row) < 3 {
				continue
			}
			items = append(items, tagRow{
				Name:  strings.TrimSpace(row[0]),
				Color: strings.TrimSpace(row[1]),
				Slug:  strings.TrimSpace(row[2]),
			})
		}
	}

	fmt.Printf("Total tags to import: %d\n", len(items))

	tagRepo := repository.NewTagRepository(db.GetDB())
	imported := 0
	skipped := 0
	for _, item := range items {
		if item.Name == "" || item.Slug == "" {
			skipped++
			continue
		}
		if err := tagRepo.GetOrCreate(&model.Tag{
			Name:  item.Name,
			Color: item.Color,
			Slug:  item.Slug,
		}); err != nil {
			return fmt.Errorf("failed to import tag %q: %w", item.Name, err)
		}
		imported++
	}

	fmt.Printf("Tags imported: %d, skipped: %d\n", imported, skipped)
	return nil
}
