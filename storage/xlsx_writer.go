package storage

import (
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"passenger-stats/models"
)

const resultsSheet = "Results"

// XLSXWriter collects analysis results in a spreadsheet. The workbook is
// saved after every write so an interrupted session keeps its rows.
type XLSXWriter struct {
	mu      sync.Mutex
	path    string
	file    *excelize.File
	nextRow int
}

// NewXLSXWriter creates a workbook with a header row that will be saved at path.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := ensureParentDir("xlsx", path); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := make([]interface{}, len(resultHeader))
	for i, h := range resultHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: write header: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: save %q: %w", path, err)
	}

	return &XLSXWriter{path: path, file: f, nextRow: 2}, nil
}

// WriteResults appends one row per result and saves the workbook.
func (x *XLSXWriter) WriteResults(results []*models.AnalysisResult) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, x.nextRow)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		row := resultCells(r)
		if err := x.file.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: write row: %w", err)
		}
		x.nextRow++
	}

	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

// Close releases the workbook.
func (x *XLSXWriter) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.file.Close()
}
