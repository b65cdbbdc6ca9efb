package ranker

import (
	"sort"
	"time"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

const (
	SortPrice     = "price"
	SortDuration  = "duration"
	SortDeparture = "departure_time"
	SortBestValue = "best_value"
)

// Rank deduplicates and stably sorts offers by the requested key. The input
// order carries source priority, so on duplicate tuples the earlier offer
// survives. Re-ranking an already ranked list with the same key is a no-op.
func Rank(offers []models.Offer, sortBy string) []models.Offer {
	deduped := Dedupe(offers)

	if sortBy == SortBestValue {
		deduped = CalculateScores(deduped)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return less(deduped[i], deduped[j], sortBy)
	})
	return deduped
}

type dedupeKey struct {
	airline   string
	departure time.Time
	arrival   time.Time
	amount    float64
}

// Dedupe drops offers whose (airline, departure, arrival, price) tuple was
// already seen, keeping the first occurrence.
func Dedupe(offers []models.Offer) []models.Offer {
	seen := make(map[dedupeKey]bool, len(offers))
	result := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		key := dedupeKey{
			airline:   o.Airline,
			departure: o.Departure,
			arrival:   o.Arrival,
			amount:    o.Price.Amount,
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, o)
	}
	return result
}

func less(a, b models.Offer, sortBy string) bool {
	switch sortBy {
	case SortDuration:
		if a.DurationMinutes != b.DurationMinutes {
			return a.DurationMinutes < b.DurationMinutes
		}
		return a.Price.Amount < b.Price.Amount

	case SortDeparture:
		if !a.Departure.Equal(b.Departure) {
			return a.Departure.Before(b.Departure)
		}
		return a.Price.Amount < b.Price.Amount

	case SortBestValue:
		if a.BestValueScore != b.BestValueScore {
			return a.BestValueScore < b.BestValueScore
		}
		return a.Price.Amount < b.Price.Amount

	default: // price
		if a.Price.Amount != b.Price.Amount {
			return a.Price.Amount < b.Price.Amount
		}
		if a.DurationMinutes != b.DurationMinutes {
			return a.DurationMinutes < b.DurationMinutes
		}
		return a.Departure.Before(b.Departure)
	}
}
