package services

import (
	"regexp"
	"strconv"
)

// PeriodKind identifies the granularity of a period query.
type PeriodKind int

const (
	PeriodInvalid PeriodKind = iota
	PeriodYear
	PeriodQuarter
	PeriodMonth
	PeriodWeek
)

func (k PeriodKind) String() string {
	switch k {
	case PeriodYear:
		return "year"
	case PeriodQuarter:
		return "quarter"
	case PeriodMonth:
		return "month"
	case PeriodWeek:
		return "week"
	default:
		return "invalid"
	}
}

var (
	yearRegexp    = regexp.MustCompile(`^\d{4}$`)
	quarterRegexp = regexp.MustCompile(`^\d{4}-Q[1-4]$`)
	monthRegexp   = regexp.MustCompile(`^\d{4}-\d{2}$`)
	weekRegexp    = regexp.MustCompile(`^\d{4}-W\d{2}$`)
)

// Period is a classified query string. Only the fields belonging to Kind are
// set; Raw always holds the original text.
type Period struct {
	Kind    PeriodKind
	Raw     string
	Year    int
	Quarter int
	Month   int
	Week    int
}

// YearPrefix returns the four-digit year text of a valid period.
func (p Period) YearPrefix() string {
	if p.Kind == PeriodInvalid {
		return ""
	}
	return p.Raw[:4]
}

// ParsePeriod classifies s by shape, checking year, quarter, month and week
// in that order. Month and week numbers are not range checked here.
func ParsePeriod(s string) Period {
	p := Period{Raw: s}
	switch {
	case yearRegexp.MatchString(s):
		p.Kind = PeriodYear
	case quarterRegexp.MatchString(s):
		p.Kind = PeriodQuarter
		p.Quarter = atoi(s[6:])
	case monthRegexp.MatchString(s):
		p.Kind = PeriodMonth
		p.Month = atoi(s[5:])
	case weekRegexp.MatchString(s):
		p.Kind = PeriodWeek
		p.Week = atoi(s[6:])
	default:
		return p
	}
	p.Year = atoi(s[:4])
	return p
}

// atoi is only called on text the shape regexps proved to be digits.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
