// Package catalog reads word frequency catalogs from spreadsheets and CSV
// files.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vytor/wordflash/internal/models"
	"github.com/xuri/excelize/v2"
)

// Config describes the layout of a catalog file. Columns are zero based; a
// negative RankColumn numbers words by row order instead.
type Config struct {
	SheetName         string
	StartRow          int // 1-based, rows before it are headers
	WordColumn        int
	TranslationColumn int
	RankColumn        int
}

// DefaultConfig reads "word, translation, rank" with one header row.
func DefaultConfig() Config {
	return Config{
		SheetName:         "Sheet1",
		StartRow:          2,
		WordColumn:        0,
		TranslationColumn: 1,
		RankColumn:        2,
	}
}

// ReadFile reads a .xlsx or .csv catalog depending on the file extension.
func ReadFile(path string, cfg Config) ([]models.CatalogRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, cfg)
	case ".xlsx", ".xlsm":
		return ReadExcel(f, cfg)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

// ReadExcel reads catalog rows from the configured sheet of a workbook.
func ReadExcel(r io.Reader, cfg Config) ([]models.CatalogRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return parseRows(rows, cfg)
}

// ReadCSV reads catalog rows from comma separated records.
func ReadCSV(r io.Reader, cfg Config) ([]models.CatalogRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return parseRows(rows, cfg)
}

func parseRows(rows [][]string, cfg Config) ([]models.CatalogRow, error) {
	start := max(cfg.StartRow, 1) - 1
	var out []models.CatalogRow
	for i := start; i < len(rows); i++ {
		row := rows[i]
		word := cell(row, cfg.WordColumn)
		if word == "" {
			continue
		}
		entry := models.CatalogRow{
			Lemma:        word,
			Translations: splitTranslations(cell(row, cfg.TranslationColumn)),
		}
		if cfg.RankColumn >= 0 {
			if raw := cell(row, cfg.RankColumn); raw != "" {
				rank, err := strconv.Atoi(raw)
				if err != nil {
					return nil, fmt.Errorf("row %d: invalid rank %q", i+1, raw)
				}
				entry.Rank = &rank
			}
		} else {
			rank := len(out) + 1
			entry.Rank = &rank
		}
		out = append(out, entry)
	}
	return out, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func splitTranslations(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
