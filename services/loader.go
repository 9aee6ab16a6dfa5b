package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"passenger-stats/metrics"
	"passenger-stats/models"
	"passenger-stats/utils"
)

// Loader turns a JSON array of flat objects into Records.
type Loader struct {
	logger  *utils.Logger
	cleaner *Cleaner
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger *utils.Logger) *Loader {
	return &Loader{logger: logger, cleaner: NewCleaner(logger)}
}

// Load parses text and returns the records that passed validation, in input
// order. Invalid elements are logged and skipped. A *FormatError is returned
// only when text is not a JSON array; an empty result is not an error.
func (l *Loader) Load(text string) ([]*models.Record, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, &FormatError{Reason: "expected a JSON array"}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &elems); err != nil {
		return nil, &FormatError{Reason: "malformed JSON array", Err: err}
	}

	records := make([]*models.Record, 0, len(elems))
	dropped := 0
	for i, elem := range elems {
		rec, err := l.parseElement(i, elem)
		if err != nil {
			dropped++
			l.logger.WithError(err).Warn("[loader] Dropping element %d", i)
			continue
		}
		records = append(records, rec)
	}

	metrics.ObserveIngestion(len(records), dropped)
	l.logger.Info("[loader] Parsed %d → %d records (dropped %d)", len(elems), len(records), dropped)
	if len(records) == 0 {
		l.logger.Warn("[loader] No records loaded")
	}
	return records, nil
}

func (l *Loader) parseElement(index int, elem json.RawMessage) (*models.Record, error) {
	if b := bytes.TrimSpace(elem); len(b) == 0 || b[0] != '{' {
		return nil, &RecordParseError{Index: index, Err: errNotAnObject}
	}
	var raw models.RawRecord
	if err := json.Unmarshal(elem, &raw); err != nil {
		return nil, &RecordParseError{Index: index, Err: err}
	}
	return l.cleaner.Clean(index, raw)
}

// Coverage reports the earliest and latest start dates among records whose
// start date parses as a calendar date.
func Coverage(records []*models.Record) models.Coverage {
	cov := models.Coverage{Records: len(records)}
	for _, r := range records {
		if _, err := parseDate(r.StartDate); err != nil {
			continue
		}
		if cov.First == "" || r.StartDate < cov.First {
			cov.First = r.StartDate
		}
		if cov.Last == "" || r.StartDate > cov.Last {
			cov.Last = r.StartDate
		}
	}
	return cov
}
