package sources

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

var (
	clockRe = regexp.MustCompile(`^\d{2}:\d{2}( \+1)?$`)
	priceRe = regexp.MustCompile(`^\$\d+$`)
	durRe   = regexp.MustCompile(`^\d+h \d+m$`)
)

func demoRequest() models.SearchRequest {
	return models.SearchRequest{
		Origin:      "NYC",
		Destination: "LAX",
		TravelDate:  "2025-09-15",
	}
}

func TestDemoSourceFetch(t *testing.T) {
	src := NewDemoSource(Config{MaxResults: 8})
	offers, err := src.Fetch(context.Background(), demoRequest())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(offers) != 8 {
		t.Fatalf("got %d offers, want 8", len(offers))
	}

	prev := 0
	for i, offer := range offers {
		if _, ok := demoAirlines[offer.Airline]; !ok {
			t.Errorf("offer %d: unknown airline %q", i, offer.Airline)
		}
		if !clockRe.MatchString(offer.DepartureTime) {
			t.Errorf("offer %d: bad departure time %q", i, offer.DepartureTime)
		}
		if !clockRe.MatchString(offer.ArrivalTime) {
			t.Errorf("offer %d: bad arrival time %q", i, offer.ArrivalTime)
		}
		if !priceRe.MatchString(offer.Price) {
			t.Errorf("offer %d: bad price %q", i, offer.Price)
		}
		if !durRe.MatchString(offer.Duration) {
			t.Errorf("offer %d: bad duration %q", i, offer.Duration)
		}
		if offer.DepartureAirport != "NYC" || offer.ArrivalAirport != "LAX" {
			t.Errorf("offer %d: route %s-%s, want NYC-LAX", i, offer.DepartureAirport, offer.ArrivalAirport)
		}

		amount, _ := strconv.Atoi(strings.TrimPrefix(offer.Price, "$"))
		if amount < prev {
			t.Errorf("offers not sorted by price: %d after %d", amount, prev)
		}
		prev = amount
	}
}

func TestDemoSourceRouteDuration(t *testing.T) {
	src := NewDemoSource(Config{MaxResults: 8})
	offers, err := src.Fetch(context.Background(), demoRequest())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// NYC-LAX block time is bounded by the route table.
	for _, offer := range offers {
		parts := strings.SplitN(strings.TrimSuffix(offer.Duration, "m"), "h ", 2)
		hours, _ := strconv.Atoi(parts[0])
		mins, _ := strconv.Atoi(parts[1])
		total := hours*60 + mins
		if total < 330 || total > 390 {
			t.Errorf("duration %dm outside NYC-LAX range [330, 390]", total)
		}
	}
}

func TestDemoSourceMaxResults(t *testing.T) {
	src := NewDemoSource(Config{MaxResults: 3})
	offers, err := src.Fetch(context.Background(), demoRequest())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(offers) != 3 {
		t.Errorf("got %d offers, want 3", len(offers))
	}
}

func TestDemoSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewDemoSource(Config{})
	if _, err := src.Fetch(ctx, demoRequest()); err == nil {
		t.Error("Fetch should fail on a cancelled context")
	}
}

func TestRegistry(t *testing.T) {
	reg := DefaultRegistry()
	for _, name := range []string{"kayak", "expedia", "booking", "demo"} {
		if !reg.Has(name) {
			t.Errorf("default registry missing %q", name)
		}
	}

	src, err := reg.New("demo", Config{})
	if err != nil {
		t.Fatalf("New(demo): %v", err)
	}
	if src.Name() != "demo" {
		t.Errorf("Name() = %q, want demo", src.Name())
	}

	if _, err := reg.New("ryanair", Config{}); err == nil {
		t.Error("New should fail for an unregistered source")
	}
}

func TestDemoRegistry(t *testing.T) {
	reg := DemoRegistry()
	src, err := reg.New("kayak", Config{})
	if err != nil {
		t.Fatalf("New(kayak): %v", err)
	}
	if _, ok := src.(*DemoSource); !ok {
		t.Errorf("demo registry returned %T, want *DemoSource", src)
	}
}
