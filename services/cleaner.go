package services

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"passenger-stats/models"
	"passenger-stats/utils"
)

// Source keys of the Basel passenger-count export.
const (
	KeyStartDate    = "startdatum_kalenderwoche_monat"
	KeyPassengers   = "fahrgaeste_einsteiger"
	KeyCalendarWeek = "kalenderwoche"
	KeyGranularity  = "granularitat"
	KeyMonthlyDate  = "datum_der_monatswerte"
)

const (
	minCalendarWeek = 1
	maxCalendarWeek = 53
)

// Cleaner coerces RawRecords into validated Records.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean converts one raw object. index is the element's position in the
// source array and only feeds the returned error.
func (c *Cleaner) Clean(index int, raw models.RawRecord) (*models.Record, error) {
	startDate, err := toString(raw[KeyStartDate])
	if err != nil {
		return nil, &RecordParseError{Index: index, Field: KeyStartDate, Err: err}
	}
	if startDate == nil || strings.TrimSpace(*startDate) == "" {
		return nil, &RecordParseError{Index: index, Field: KeyStartDate, Err: errMissing}
	}

	passengers, err := toInt(raw[KeyPassengers])
	if err != nil {
		return nil, &RecordParseError{Index: index, Field: KeyPassengers, Err: err}
	}
	if passengers == nil {
		return nil, &RecordParseError{Index: index, Field: KeyPassengers, Err: errMissing}
	}
	if *passengers < 0 {
		return nil, &RecordParseError{Index: index, Field: KeyPassengers, Err: errOutOfRange}
	}

	week, err := toInt(raw[KeyCalendarWeek])
	if err != nil {
		return nil, &RecordParseError{Index: index, Field: KeyCalendarWeek, Err: err}
	}
	if week != nil && (*week < minCalendarWeek || *week > maxCalendarWeek) {
		return nil, &RecordParseError{Index: index, Field: KeyCalendarWeek, Err: errOutOfRange}
	}

	granularity, err := toString(raw[KeyGranularity])
	if err != nil {
		return nil, &RecordParseError{Index: index, Field: KeyGranularity, Err: err}
	}

	monthly, err := toString(raw[KeyMonthlyDate])
	if err != nil {
		return nil, &RecordParseError{Index: index, Field: KeyMonthlyDate, Err: err}
	}

	rec := &models.Record{
		StartDate:    strings.TrimSpace(*startDate),
		Passengers:   *passengers,
		CalendarWeek: week,
		MonthlyDate:  monthly,
	}
	if granularity != nil {
		rec.Granularity = normaliseText(*granularity)
	}
	c.logger.Debug("[cleaner] accepted %s", rec)
	return rec, nil
}

// isNull reports whether a raw value is absent or the JSON literal null.
func isNull(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) == 0 || bytes.Equal(v, []byte("null"))
}

// toString returns the string form of a raw value. Quoted strings are
// unescaped; bare tokens such as numbers are returned verbatim. Exports
// sometimes quote "null", which counts as absent too.
func toString(v json.RawMessage) (*string, error) {
	if isNull(v) {
		return nil, nil
	}
	v = bytes.TrimSpace(v)
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return nil, err
		}
		if s == "null" {
			return nil, nil
		}
		return &s, nil
	}
	s := string(v)
	return &s, nil
}

// toInt accepts a JSON integer or a string holding one, e.g. 1000 or "1000".
func toInt(v json.RawMessage) (*int, error) {
	s, err := toString(v)
	if err != nil || s == nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, errNotInteger
	}
	return &n, nil
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
