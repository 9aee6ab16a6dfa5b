package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"passenger-stats/models"
)

// CSVWriter exports analysis results as CSV rows, one per answered query.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
	rows   int
}

// NewCSVWriter truncates path and writes the header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := ensureParentDir("csv", path); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	c := &CSVWriter{file: f, writer: csv.NewWriter(f)}
	if err := c.flush(resultHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return c, nil
}

// WriteResults appends results and flushes, so rows survive an abrupt exit.
func (c *CSVWriter) WriteResults(results []*models.AnalysisResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range results {
		if err := c.writer.Write(resultRecord(r)); err != nil {
			return fmt.Errorf("csv: write row %d: %w", c.rows+1, err)
		}
		c.rows++
	}
	c.writer.Flush()
	return c.writer.Error()
}

func (c *CSVWriter) flush(record []string) error {
	if err := c.writer.Write(record); err != nil {
		return err
	}
	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes pending rows and closes the file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}
