package services

import (
	"fmt"
	"strings"

	"passenger-stats/models"
)

// Format renders a result as the multi-line block shown to users.
func Format(r *models.AnalysisResult) string {
	thin := strings.Repeat("─", 44)

	var b strings.Builder
	fmt.Fprintf(&b, "  Period              : %s\n", r.Period)
	fmt.Fprintf(&b, "  %s\n", thin)
	fmt.Fprintf(&b, "  Minimum passengers  : %d\n", r.MinPassengers)
	fmt.Fprintf(&b, "  Maximum passengers  : %d\n", r.MaxPassengers)
	fmt.Fprintf(&b, "  Average passengers  : %.2f\n", r.AvgPassengers)
	if r.IsEmpty() {
		fmt.Fprintf(&b, "  No records found for this period\n")
	} else {
		fmt.Fprintf(&b, "  Records in period   : %d\n", r.Matched)
	}
	return b.String()
}

// FormatCoverage renders the data set range for the menu header.
func FormatCoverage(c models.Coverage) string {
	if c.First == "" {
		return fmt.Sprintf("%d records loaded, no valid dates", c.Records)
	}
	return fmt.Sprintf("%d records from %s to %s", c.Records, c.First, c.Last)
}
