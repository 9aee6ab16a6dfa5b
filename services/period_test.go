package services

import "testing"

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"2020", Period{Kind: PeriodYear, Raw: "2020", Year: 2020}},
		{"2020-Q1", Period{Kind: PeriodQuarter, Raw: "2020-Q1", Year: 2020, Quarter: 1}},
		{"2023-Q4", Period{Kind: PeriodQuarter, Raw: "2023-Q4", Year: 2023, Quarter: 4}},
		{"2020-02", Period{Kind: PeriodMonth, Raw: "2020-02", Year: 2020, Month: 2}},
		{"2020-99", Period{Kind: PeriodMonth, Raw: "2020-99", Year: 2020, Month: 99}},
		{"2020-W06", Period{Kind: PeriodWeek, Raw: "2020-W06", Year: 2020, Week: 6}},
		{"2020-W99", Period{Kind: PeriodWeek, Raw: "2020-W99", Year: 2020, Week: 99}},
		{"2020-Q5", Period{Kind: PeriodInvalid, Raw: "2020-Q5"}},
		{"2020-W6", Period{Kind: PeriodInvalid, Raw: "2020-W6"}},
		{"20", Period{Kind: PeriodInvalid, Raw: "20"}},
		{" 2020", Period{Kind: PeriodInvalid, Raw: " 2020"}},
		{"2020-2", Period{Kind: PeriodInvalid, Raw: "2020-2"}},
		{"", Period{Kind: PeriodInvalid, Raw: ""}},
	}

	for _, tt := range tests {
		if got := ParsePeriod(tt.in); got != tt.want {
			t.Errorf("ParsePeriod(%q) = %+v; want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPeriodKindString(t *testing.T) {
	kinds := map[PeriodKind]string{
		PeriodYear:    "year",
		PeriodQuarter: "quarter",
		PeriodMonth:   "month",
		PeriodWeek:    "week",
		PeriodInvalid: "invalid",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("%d.String() = %q; want %q", k, k.String(), want)
		}
	}
}

func TestPeriodYearPrefix(t *testing.T) {
	if got := ParsePeriod("2021-W10").YearPrefix(); got != "2021" {
		t.Errorf("YearPrefix: got %q, want 2021", got)
	}
	if got := ParsePeriod("nope").YearPrefix(); got != "" {
		t.Errorf("YearPrefix of invalid period: got %q, want empty", got)
	}
}
