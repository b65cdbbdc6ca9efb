package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/flightscanner/internal/models"
	"github.com/dharmasatrya/flightscanner/pkg/currency"
)

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingAirline ValidationError = "offer has no airline"
	ErrMissingTimes   ValidationError = "offer has no departure or arrival time"
	ErrBadTime        ValidationError = "unparsable departure or arrival time"
	ErrBadPrice       ValidationError = "unparsable price"
)

var (
	priceRe    = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	hoursRe    = regexp.MustCompile(`(\d+)\s*h`)
	minutesRe  = regexp.MustCompile(`(\d+)\s*m`)
	stopsNumRe = regexp.MustCompile(`\d+`)
)

// Offer converts one raw source row into the canonical form. Clock times
// are anchored to the travel date; a trailing "+1" on the arrival marks a
// next-day landing. A returned ValidationError means the row is dropped,
// never that the source failed.
func Offer(raw models.RawOffer, sourceID string, travelDate string) (models.Offer, error) {
	if strings.TrimSpace(raw.Airline) == "" {
		return models.Offer{}, ErrMissingAirline
	}
	if strings.TrimSpace(raw.DepartureTime) == "" || strings.TrimSpace(raw.ArrivalTime) == "" {
		return models.Offer{}, ErrMissingTimes
	}

	day, err := time.Parse(models.DateLayout, travelDate)
	if err != nil {
		day = time.Time{}
	}

	departure, err := parseClock(raw.DepartureTime, day)
	if err != nil {
		return models.Offer{}, ErrBadTime
	}
	arrival, err := parseClock(raw.ArrivalTime, day)
	if err != nil {
		return models.Offer{}, ErrBadTime
	}
	// An arrival clock earlier than departure without an explicit day
	// marker means the flight lands the next day.
	if !arrival.After(departure) {
		arrival = arrival.Add(24 * time.Hour)
	}

	amount, curr, err := parsePrice(raw.Price)
	if err != nil {
		return models.Offer{}, err
	}

	minutes := parseDuration(raw.Duration)
	if minutes <= 0 {
		minutes = raw.DurationMinutes
	}
	if minutes <= 0 {
		minutes = int(arrival.Sub(departure).Minutes()) % (24 * 60)
		if minutes < 0 {
			minutes += 24 * 60
		}
	}

	return models.Offer{
		ID:              uuid.NewString(),
		Source:          sourceID,
		Airline:         strings.TrimSpace(raw.Airline),
		Departure:       departure,
		Arrival:         arrival,
		DurationMinutes: minutes,
		Price: models.Price{
			Amount:    amount,
			Currency:  curr,
			Formatted: currency.Format(amount, curr),
		},
		Stops:       parseStops(raw.Stops),
		Origin:      strings.ToUpper(strings.TrimSpace(raw.DepartureAirport)),
		Destination: strings.ToUpper(strings.TrimSpace(raw.ArrivalAirport)),
	}, nil
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04 pm",
	"3:04pm",
}

func parseClock(s string, day time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	extraDays := 0
	if i := strings.Index(s, "+"); i >= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(s[i+1:])); err == nil {
			extraDays = n
		}
		s = strings.TrimSpace(s[:i])
	}

	var lastErr error
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			lastErr = err
			continue
		}
		anchored := time.Date(day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0, time.UTC)
		return anchored.AddDate(0, 0, extraDays), nil
	}
	return time.Time{}, lastErr
}

func parsePrice(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", ErrBadPrice
	}

	curr := "USD"
	switch {
	case strings.Contains(s, "€") || strings.Contains(s, "EUR"):
		curr = "EUR"
	case strings.Contains(s, "£") || strings.Contains(s, "GBP"):
		curr = "GBP"
	case strings.Contains(s, "IDR") || strings.Contains(s, "Rp"):
		curr = "IDR"
	}

	m := priceRe.FindString(s)
	if m == "" {
		return 0, "", ErrBadPrice
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil || amount < 0 {
		return 0, "", ErrBadPrice
	}
	return amount, curr, nil
}

// parseDuration reads "5h 15m" style text; 0 means unparsable and the
// caller falls back to the timestamp difference.
func parseDuration(s string) int {
	total := 0
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		total += h * 60
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		min, _ := strconv.Atoi(m[1])
		total += min
	}
	return total
}

func parseStops(s string) int {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || strings.HasPrefix(s, "nonstop") || strings.HasPrefix(s, "direct") {
		return 0
	}
	if m := stopsNumRe.FindString(s); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return 0
}
