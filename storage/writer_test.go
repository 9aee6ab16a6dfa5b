package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"passenger-stats/models"
)

func sampleResults() []*models.AnalysisResult {
	return []*models.AnalysisResult{
		{Period: "2020", MinPassengers: 100, MaxPassengers: 300, AvgPassengers: 200, Matched: 2},
		{Period: "1999"},
	}
}

func TestCSVWriterWritesResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.WriteResults(sampleResults()); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	want := []string{"2020", "100", "300", "200.00", "2"}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("row 1 col %d: got %q, want %q", i, rows[1][i], v)
		}
	}
	if rows[2][0] != "1999" || rows[2][3] != "0.00" {
		t.Errorf("unexpected sentinel row: %v", rows[2])
	}
}

func TestXLSXWriterWritesResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	w, err := NewXLSXWriter(path)
	if err != nil {
		t.Fatalf("NewXLSXWriter: %v", err)
	}
	if err := w.WriteResults(sampleResults()[:1]); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	if err := w.WriteResults(sampleResults()[1:]); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(resultsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "period" || rows[1][0] != "2020" || rows[1][1] != "100" || rows[2][0] != "1999" {
		t.Errorf("unexpected rows: %v", rows)
	}
}
