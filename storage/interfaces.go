package storage

import (
	"context"

	"passenger-stats/models"
)

// Source supplies the raw JSON array text of a passenger-count data set.
type Source interface {
	Read(ctx context.Context) (string, error)
	Close() error
}

// ResultWriter is the interface any result export backend must satisfy.
type ResultWriter interface {
	WriteResults(results []*models.AnalysisResult) error
	Close() error
}
