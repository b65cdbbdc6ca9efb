package sources

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

type priceRange struct {
	min, max int
}

var demoAirlines = map[string]priceRange{
	"American Airlines":  {200, 800},
	"Delta Air Lines":    {220, 850},
	"United Airlines":    {210, 820},
	"Southwest Airlines": {150, 600},
	"JetBlue Airways":    {180, 700},
	"Alaska Airlines":    {190, 750},
	"Spirit Airlines":    {100, 400},
	"Frontier Airlines":  {120, 450},
}

type durationRange struct {
	min, max int
}

// Typical block times between major US cities, in minutes.
var demoRoutes = map[[2]string]durationRange{
	{"NYC", "LAX"}: {330, 390},
	{"NYC", "CHI"}: {150, 180},
	{"LAX", "CHI"}: {240, 280},
	{"NYC", "MIA"}: {180, 220},
	{"LAX", "SEA"}: {150, 180},
}

// DemoSource generates plausible offers without touching the network.
// It stands in for any real scraper in demo mode.
type DemoSource struct {
	maxResults int
	rng        *rand.Rand
}

func NewDemoSource(cfg Config) *DemoSource {
	n := cfg.MaxResults
	if n <= 0 || n > 8 {
		n = 8
	}
	return &DemoSource{
		maxResults: n,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *DemoSource) Name() string {
	return "demo"
}

func (s *DemoSource) Fetch(ctx context.Context, req models.SearchRequest) ([]models.RawOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	offers := make([]models.RawOffer, 0, s.maxResults)
	for i := 0; i < s.maxResults; i++ {
		offers = append(offers, s.generate(req))
	}

	sort.Slice(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	})
	return offers, nil
}

func (s *DemoSource) generate(req models.SearchRequest) models.RawOffer {
	names := make([]string, 0, len(demoAirlines))
	for name := range demoAirlines {
		names = append(names, name)
	}
	sort.Strings(names)
	airline := names[s.rng.Intn(len(names))]
	pr := demoAirlines[airline]
	price := pr.min + s.rng.Intn(pr.max-pr.min+1) + s.rng.Intn(151) - 50

	dr, ok := demoRoutes[[2]string{req.Origin, req.Destination}]
	if !ok {
		dr, ok = demoRoutes[[2]string{req.Destination, req.Origin}]
	}
	if !ok {
		dr = durationRange{120, 480}
	}
	minutes := dr.min + s.rng.Intn(dr.max-dr.min+1)

	depHour := 6 + s.rng.Intn(17)
	depMinute := []int{0, 15, 30, 45}[s.rng.Intn(4)]
	departure := fmt.Sprintf("%02d:%02d", depHour, depMinute)

	arrTotal := depHour*60 + depMinute + minutes
	arrival := fmt.Sprintf("%02d:%02d", (arrTotal/60)%24, arrTotal%60)
	if arrTotal >= 24*60 {
		arrival += " +1"
	}

	stops := "1 stop"
	switch roll := s.rng.Float64(); {
	case roll < 0.4:
		stops = "Nonstop"
		price += 50 + s.rng.Intn(101)
	case roll >= 0.9:
		stops = "2 stops"
		price -= 30 + s.rng.Intn(71)
	}
	if price < 40 {
		price = 40 + s.rng.Intn(60)
	}

	return models.RawOffer{
		Airline:          airline,
		DepartureTime:    departure,
		ArrivalTime:      arrival,
		Duration:         fmt.Sprintf("%dh %dm", minutes/60, minutes%60),
		Price:            fmt.Sprintf("$%d", price),
		Stops:            stops,
		DepartureAirport: req.Origin,
		ArrivalAirport:   req.Destination,
	}
}
