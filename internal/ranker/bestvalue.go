package ranker

import (
	"math"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

const (
	priceWeight    = 0.5
	durationWeight = 0.3
	stopsWeight    = 0.2
)

func CalculateScores(offers []models.Offer) []models.Offer {
	if len(offers) == 0 {
		return offers
	}

	maxPrice := 0.0
	maxDuration := 0.0
	for _, o := range offers {
		if o.Price.Amount > maxPrice {
			maxPrice = o.Price.Amount
		}
		if d := float64(o.DurationMinutes); d > maxDuration {
			maxDuration = d
		}
	}

	result := make([]models.Offer, len(offers))
	for i, o := range offers {
		result[i] = o
		result[i].BestValueScore = bestValue(o, maxPrice, maxDuration)
	}
	return result
}

// Lower score = better value
func bestValue(o models.Offer, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (o.Price.Amount / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (float64(o.DurationMinutes) / maxDuration) * 100
	}

	stopsScore := float64(o.Stops) * 15
	score := (priceScore * priceWeight) + (durationScore * durationWeight) + (stopsScore * stopsWeight)

	return math.Round(score*100) / 100
}
