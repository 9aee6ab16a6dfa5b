package services

import (
	"time"

	"passenger-stats/metrics"
	"passenger-stats/models"
	"passenger-stats/utils"
)

// Analyzer answers period queries over a fixed record set. The records are
// never modified, so one Analyzer may serve concurrent queries.
type Analyzer struct {
	records []*models.Record
	matcher *Matcher
	logger  *utils.Logger
}

// NewAnalyzer creates an Analyzer over records.
func NewAnalyzer(records []*models.Record, logger *utils.Logger) *Analyzer {
	return &Analyzer{
		records: records,
		matcher: NewMatcher(logger),
		logger:  logger,
	}
}

// Coverage describes the loaded data set.
func (a *Analyzer) Coverage() models.Coverage {
	return Coverage(a.records)
}

// Analyze computes min, max and average passengers for period. When nothing
// matches, the all-zero result is returned with Period still echoed.
func (a *Analyzer) Analyze(period string) *models.AnalysisResult {
	start := time.Now()
	p := ParsePeriod(period)
	result := &models.AnalysisResult{Period: period}

	var total int64
	for _, r := range a.records {
		if !a.matcher.Matches(r, p) {
			continue
		}
		if result.Matched == 0 || r.Passengers < result.MinPassengers {
			result.MinPassengers = r.Passengers
		}
		if result.Matched == 0 || r.Passengers > result.MaxPassengers {
			result.MaxPassengers = r.Passengers
		}
		total += int64(r.Passengers)
		result.Matched++
	}

	if result.Matched > 0 {
		result.AvgPassengers = float64(total) / float64(result.Matched)
	}

	metrics.ObserveQuery(p.Kind.String(), result.Matched, time.Since(start))
	a.logger.Debug("[analyzer] %s (%s): %d records matched", period, p.Kind, result.Matched)
	return result
}

// AnalyzeAll answers several periods concurrently with at most maxWorkers
// queries in flight. Repeated periods are answered once; results follow the
// order in which each period first appears.
func (a *Analyzer) AnalyzeAll(periods []string, maxWorkers int) []*models.AnalysisResult {
	seen := utils.NewKeySet()
	unique := make([]string, 0, len(periods))
	for _, p := range periods {
		if seen.Add(p) {
			unique = append(unique, p)
		}
	}

	results := make([]*models.AnalysisResult, len(unique))
	pool := utils.NewWorkerPool(maxWorkers, 0)
	for i, p := range unique {
		pool.Submit(func() {
			results[i] = a.Analyze(p)
		})
	}
	pool.Wait()

	a.logger.Info("[analyzer] Batch complete: %d periods (%d duplicates skipped)",
		len(unique), len(periods)-len(unique))
	return results
}
