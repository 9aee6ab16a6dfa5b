package services

import (
	"strings"
	"time"

	"passenger-stats/metrics"
	"passenger-stats/models"
	"passenger-stats/utils"
)

const dateLayout = "2006-01-02"

// Matcher decides whether a record falls inside a period.
type Matcher struct {
	logger *utils.Logger
}

// NewMatcher creates a Matcher with the given logger.
func NewMatcher(logger *utils.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// Matches reports whether r belongs to p. A record whose start date is not a
// calendar date never matches; the failure is logged and the query goes on.
func (m *Matcher) Matches(r *models.Record, p Period) bool {
	date, err := parseDate(r.StartDate)
	if err != nil {
		metrics.ObserveDateParseError()
		m.logger.WithError(err).Warn("[matcher] Skipping record for period %s", p.Raw)
		return false
	}

	switch p.Kind {
	case PeriodYear:
		return date.Year() == p.Year
	case PeriodQuarter:
		return date.Year() == p.Year && quarterOf(date.Month()) == p.Quarter
	case PeriodMonth:
		// Either source agreeing is enough.
		return strings.HasPrefix(r.StartDate, p.Raw) ||
			(r.MonthlyDate != nil && strings.HasPrefix(*r.MonthlyDate, p.Raw))
	case PeriodWeek:
		return strings.HasPrefix(r.StartDate, p.YearPrefix()) &&
			r.CalendarWeek != nil && *r.CalendarWeek == p.Week
	default:
		return false
	}
}

func quarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, &DateParseError{Value: s, Err: errMissing}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &DateParseError{Value: s, Err: err}
	}
	return t, nil
}
