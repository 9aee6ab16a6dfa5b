package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"passenger-stats/models"
)

var resultHeader = []string{"period", "min_passengers", "max_passengers", "avg_passengers", "matched_records"}

// resultRecord renders r in resultHeader column order.
func resultRecord(r *models.AnalysisResult) []string {
	return []string{
		r.Period,
		strconv.Itoa(r.MinPassengers),
		strconv.Itoa(r.MaxPassengers),
		strconv.FormatFloat(r.AvgPassengers, 'f', 2, 64),
		strconv.Itoa(r.Matched),
	}
}

// resultCells is resultRecord with numeric columns kept as numbers, for
// sinks that store typed cells.
func resultCells(r *models.AnalysisResult) []interface{} {
	return []interface{}{r.Period, r.MinPassengers, r.MaxPassengers, r.AvgPassengers, r.Matched}
}

func ensureParentDir(kind, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%s: create output dir: %w", kind, err)
	}
	return nil
}
