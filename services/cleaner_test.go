package services

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"passenger-stats/models"
	"passenger-stats/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerWithOutput(io.Discard) }

func rawRecord(t *testing.T, text string) models.RawRecord {
	t.Helper()
	var raw models.RawRecord
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		t.Fatalf("bad fixture %s: %v", text, err)
	}
	return raw
}

func TestCleanerFullRecord(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := rawRecord(t, `{"startdatum_kalenderwoche_monat":"2020-02-03","fahrgaeste_einsteiger":"1000",`+
		`"kalenderwoche":"6","granularitat":"Woche","datum_der_monatswerte":null}`)

	rec, err := c.Clean(0, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.StartDate != "2020-02-03" {
		t.Errorf("StartDate: got %q", rec.StartDate)
	}
	if rec.Passengers != 1000 {
		t.Errorf("Passengers: got %d, want 1000", rec.Passengers)
	}
	if rec.CalendarWeek == nil || *rec.CalendarWeek != 6 {
		t.Errorf("CalendarWeek: got %v, want 6", rec.CalendarWeek)
	}
	if rec.Granularity != "Woche" {
		t.Errorf("Granularity: got %q", rec.Granularity)
	}
	if rec.MonthlyDate != nil {
		t.Errorf("MonthlyDate: got %q, want absent", *rec.MonthlyDate)
	}
}

func TestCleanerNumericValues(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := rawRecord(t, `{"startdatum_kalenderwoche_monat":"2021-03-01","fahrgaeste_einsteiger":2500,`+
		`"kalenderwoche":null,"granularitat":"Monat","datum_der_monatswerte":"2021-03"}`)

	rec, err := c.Clean(0, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Passengers != 2500 {
		t.Errorf("Passengers: got %d, want 2500", rec.Passengers)
	}
	if rec.CalendarWeek != nil {
		t.Errorf("CalendarWeek: got %d, want absent", *rec.CalendarWeek)
	}
	if rec.MonthlyDate == nil || *rec.MonthlyDate != "2021-03" {
		t.Errorf("MonthlyDate: got %v, want 2021-03", rec.MonthlyDate)
	}
}

func TestCleanerRejects(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		name  string
		raw   string
		field string
		want  error
	}{
		{"missing date", `{"fahrgaeste_einsteiger":"10"}`, KeyStartDate, errMissing},
		{"null date", `{"startdatum_kalenderwoche_monat":null,"fahrgaeste_einsteiger":"10"}`, KeyStartDate, errMissing},
		{"blank date", `{"startdatum_kalenderwoche_monat":"  ","fahrgaeste_einsteiger":"10"}`, KeyStartDate, errMissing},
		{"missing count", `{"startdatum_kalenderwoche_monat":"2020-01-01"}`, KeyPassengers, errMissing},
		{"quoted null count", `{"startdatum_kalenderwoche_monat":"2020-01-01","fahrgaeste_einsteiger":"null"}`, KeyPassengers, errMissing},
		{"text count", `{"startdatum_kalenderwoche_monat":"2020-01-01","fahrgaeste_einsteiger":"abc"}`, KeyPassengers, errNotInteger},
		{"fractional count", `{"startdatum_kalenderwoche_monat":"2020-01-01","fahrgaeste_einsteiger":12.5}`, KeyPassengers, errNotInteger},
		{"negative count", `{"startdatum_kalenderwoche_monat":"2020-01-01","fahrgaeste_einsteiger":-4}`, KeyPassengers, errOutOfRange},
		{"text week", `{"startdatum_kalenderwoche_monat":"2020-01-01","fahrgaeste_einsteiger":1,"kalenderwoche":"x"}`, KeyCalendarWeek, errNotInteger},
		{"week zero", `{"startdatum_kalenderwoche_monat":"2020-01-01","fahrgaeste_einsteiger":1,"kalenderwoche":0}`, KeyCalendarWeek, errOutOfRange},
		{"week 54", `{"startdatum_kalenderwoche_monat":"2020-01-01","fahrgaeste_einsteiger":1,"kalenderwoche":54}`, KeyCalendarWeek, errOutOfRange},
	}

	for _, tt := range tests {
		_, err := c.Clean(7, rawRecord(t, tt.raw))
		var perr *RecordParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected RecordParseError, got %v", tt.name, err)
			continue
		}
		if perr.Field != tt.field || perr.Index != 7 {
			t.Errorf("%s: got field %q index %d, want %q index 7", tt.name, perr.Field, perr.Index, tt.field)
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestCleanerNormalisesGranularity(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := rawRecord(t, `{"startdatum_kalenderwoche_monat":" 2020-01-06 ","fahrgaeste_einsteiger":" 42 ","granularitat":"  Woche   neu "}`)

	rec, err := c.Clean(0, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.StartDate != "2020-01-06" || rec.Passengers != 42 || rec.Granularity != "Woche neu" {
		t.Errorf("unexpected record: %s", rec)
	}
}
