package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

// Render prints a report the way a human wants to read it in a terminal.
func Render(w io.Writer, report *models.SearchReport) {
	if report.Status == models.StatusCancelled {
		fmt.Fprintln(w, "Search cancelled.")
		return
	}
	if len(report.Offers) == 0 {
		fmt.Fprintln(w, "No flights found.")
		renderOutcomes(w, report)
		return
	}

	line := strings.Repeat("=", 80)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "FLIGHT SEARCH RESULTS")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Route: %s -> %s\n", report.Request.Origin, report.Request.Destination)
	fmt.Fprintf(w, "Date: %s\n", report.Request.TravelDate)
	fmt.Fprintf(w, "Found %d flights via %s\n", len(report.Offers), report.WinningSource)
	fmt.Fprintln(w, line)

	for i, offer := range report.Offers {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, offer.Airline)
		fmt.Fprintf(w, "   Departure: %s from %s\n", offer.Departure.Format("15:04"), offer.Origin)
		fmt.Fprintf(w, "   Arrival: %s at %s\n", formatArrival(offer), offer.Destination)
		fmt.Fprintf(w, "   Duration: %dh %dm\n", offer.DurationMinutes/60, offer.DurationMinutes%60)
		fmt.Fprintf(w, "   Price: %s\n", offer.Price.Formatted)
		fmt.Fprintf(w, "   Stops: %s\n", formatStops(offer.Stops))
		fmt.Fprintf(w, "   Source: %s\n", offer.Source)
	}

	renderOutcomes(w, report)
}

func renderOutcomes(w io.Writer, report *models.SearchReport) {
	if len(report.Outcomes) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, outcome := range report.Outcomes {
		detail := ""
		if outcome.FailureKind != "" {
			detail = " (" + outcome.FailureKind + ")"
		}
		fmt.Fprintf(w, "  %s: %s after %d attempt(s)%s\n",
			outcome.Source, outcome.State, len(outcome.Attempts), detail)
	}
}

func formatArrival(offer models.Offer) string {
	s := offer.Arrival.Format("15:04")
	depDay := offer.Departure.Truncate(24 * time.Hour)
	arrDay := offer.Arrival.Truncate(24 * time.Hour)
	if days := int(arrDay.Sub(depDay).Hours() / 24); days > 0 {
		s += fmt.Sprintf(" +%d", days)
	}
	return s
}

func formatStops(n int) string {
	switch n {
	case 0:
		return "Nonstop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", n)
	}
}

// DefaultFilename mirrors flight_results_20060102_150405.json.
func DefaultFilename(t time.Time) string {
	return fmt.Sprintf("flight_results_%s.json", t.Format("20060102_150405"))
}

// SaveJSON writes the report to path, or to a timestamped file in the
// working directory when path is empty. Returns the filename written.
func SaveJSON(report *models.SearchReport, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(report.SearchedAt)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
