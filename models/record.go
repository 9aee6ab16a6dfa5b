package models

import (
	"encoding/json"
	"fmt"
)

// RawRecord holds one decoded JSON object before any coercion.
// Values are kept as raw JSON so the cleaner can accept numbers and
// numeric-looking strings alike.
type RawRecord map[string]json.RawMessage

// Record is a single passenger-count observation for one time bucket.
// Optional fields are nil when the source omitted them or sent null.
type Record struct {
	StartDate    string
	Passengers   int
	CalendarWeek *int
	Granularity  string
	MonthlyDate  *string
}

func (r *Record) String() string {
	week := "-"
	if r.CalendarWeek != nil {
		week = fmt.Sprintf("%d", *r.CalendarWeek)
	}
	monthly := "-"
	if r.MonthlyDate != nil {
		monthly = *r.MonthlyDate
	}
	return fmt.Sprintf("Record{start=%s passengers=%d week=%s granularity=%q monthly=%s}",
		r.StartDate, r.Passengers, week, r.Granularity, monthly)
}

// AnalysisResult holds the aggregate figures for one queried period.
// A result with Matched == 0 is the "no data" sentinel: all figures are zero.
type AnalysisResult struct {
	Period        string
	MinPassengers int
	MaxPassengers int
	AvgPassengers float64
	Matched       int
}

// IsEmpty reports whether no record fell inside the period.
func (r *AnalysisResult) IsEmpty() bool {
	return r.Matched == 0
}

// Coverage describes the date range spanned by a loaded data set.
type Coverage struct {
	Records int
	First   string
	Last    string
}
