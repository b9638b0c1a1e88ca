// Package report renders check records to the report sinks: a styled
// XLSX workbook, a JSON dump, and a terminal summary.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JinojiLock/Airlines/internal/model"
)

const (
	statusSheet = "Airline Status"
	infoSheet   = "Info"
)

// Confidence fills follow the usual traffic-light convention.
var confidenceFills = map[model.Confidence]string{
	model.ConfidenceHigh:   "C6EFCE",
	model.ConfidenceMedium: "FFEB9C",
	model.ConfidenceLow:    "FFC7CE",
}

// WriteExcel writes the records to an XLSX workbook at path.
func WriteExcel(records []*model.CheckRecord, path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName("Sheet1", statusSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		return err
	}
	if err := writeRows(f, records); err != nil {
		return err
	}
	if err := writeInfoSheet(f, len(records)); err != nil {
		return err
	}

	// Keep the header visible while scrolling.
	if err := f.SetPanes(statusSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze panes: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File) error {
	headers := []string{"#", "Airline", "Status", "New name (if renamed)", "Confidence", "Source"}
	widths := []float64{5, 35, 30, 35, 18, 50}

	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(statusSheet, cell, header); err != nil {
			return err
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(statusSheet, col, col, widths[i]); err != nil {
			return err
		}
	}

	return f.SetCellStyle(statusSheet, "A1", "F1", style)
}

func writeRows(f *excelize.File, records []*model.CheckRecord) error {
	fillStyles := make(map[model.Confidence]int, len(confidenceFills))
	for conf, color := range confidenceFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		})
		if err != nil {
			return fmt.Errorf("confidence style: %w", err)
		}
		fillStyles[conf] = style
	}

	for i, record := range records {
		row := i + 2

		successor := record.SuccessorName
		if successor == "" {
			successor = "N/A"
		}

		values := []interface{}{
			i + 1,
			record.Airline,
			StatusLabel(record),
			successor,
			string(record.Confidence),
			record.Source,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(statusSheet, cell, v); err != nil {
				return err
			}
		}

		if style, ok := fillStyles[record.Confidence]; ok {
			cell, err := excelize.CoordinatesToCellName(5, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(statusSheet, cell, cell, style); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeInfoSheet(f *excelize.File, total int) error {
	if _, err := f.NewSheet(infoSheet); err != nil {
		return fmt.Errorf("create info sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Airline status report"},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Total checked:", total},
		{},
		{"Confidence legend:"},
		{"high", "Specific facts found (ceased year, or explicit current operation)"},
		{"medium", "A status keyword matched but needs verification"},
		{"low", "No usable signal, or only a rename hint"},
		{},
		{"Statuses:"},
		{"operating", "Airline appears to run scheduled service"},
		{"defunct", "Airline has ceased operations"},
		{"renamed", "Airline continues under a different name"},
		{"unknown", "No information found, or text gave no signal"},
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(infoSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(infoSheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(infoSheet, "B", "B", 80)
}

// StatusLabel renders a record's status for display, folding in the
// ceased year and the not-found case.
func StatusLabel(record *model.CheckRecord) string {
	if !record.Found {
		return "NOT FOUND"
	}
	switch record.Status {
	case model.StatusDefunct:
		if record.CeasedYear != "" {
			return fmt.Sprintf("DEFUNCT (ceased %s)", record.CeasedYear)
		}
		return "DEFUNCT (date unknown)"
	case model.StatusOperating:
		return "OPERATING"
	case model.StatusRenamed:
		return "RENAMED"
	default:
		return "UNKNOWN"
	}
}
