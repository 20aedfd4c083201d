// Package export writes a built leaderboard as tabular data.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brain-score/scoreboard/internal/display"
	"github.com/brain-score/scoreboard/internal/leaderboard"
	"github.com/brain-score/scoreboard/internal/models"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatJSON, FormatXLSX}

// SheetName is the worksheet that holds the table in xlsx exports.
const SheetName = "Leaderboard"

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (want csv, json or xlsx)", s)
}

// Write encodes page to w in the given format. Rows are written in rank
// order.
func Write(w io.Writer, page *models.Page, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, page)
	case FormatJSON:
		return writeJSON(w, page)
	case FormatXLSX:
		return writeXLSX(w, page)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// Header returns the column titles shared by the tabular formats.
func Header(page *models.Page) []string {
	header := []string{"rank", "model", "reference", "link"}
	for _, b := range page.Benchmarks {
		header = append(header, b.Name)
	}
	return header
}

// Records returns one string record per model in rank order. Unscored
// cells are empty.
func Records(page *models.Page) [][]string {
	return records(leaderboard.SortByRank(page.Models))
}

func records(rows []models.ModelRow) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		rec := []string{strconv.Itoa(row.Rank), row.Name, row.ReferenceIdentifier, row.ReferenceLink}
		for _, cell := range row.Scores {
			rec = append(rec, cell.ScoreCeiled)
		}
		out[i] = rec
	}
	return out
}

func writeCSV(w io.Writer, page *models.Page) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(page)); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(Records(page)); err != nil {
		return fmt.Errorf("writing csv records: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, page *models.Page) error {
	sorted := models.Page{
		Models:     leaderboard.SortByRank(page.Models),
		Benchmarks: page.Benchmarks,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sorted); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, page *models.Page) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := Header(page)
	if err := setRow(f, 1, toCells(header)); err != nil {
		return err
	}

	rows := leaderboard.SortByRank(page.Models)
	styles := make(map[int]int)
	for i, rec := range records(rows) {
		rowNum := i + 2
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
			if j >= 4 {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					cells[j] = n
				}
			}
		}
		cells[0] = rows[i].Rank
		if err := setRow(f, rowNum, cells); err != nil {
			return err
		}

		// Shade the rank cell with the model's average score color.
		row := rows[i]
		step := display.Step(row.Average)
		style, ok := styles[step]
		if !ok {
			var err error
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{
					Type:    "pattern",
					Pattern: 1,
					Color:   []string{display.PaletteColor(row.Average).Hex()},
				},
			})
			if err != nil {
				return fmt.Errorf("creating cell style: %w", err)
			}
			styles[step] = style
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			return fmt.Errorf("styling %s: %w", cell, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, cells []any) error {
	axis, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, axis, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
