package cache

import (
	"context"
	"testing"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

func TestKeyStability(t *testing.T) {
	a := models.SearchRequest{Origin: "NYC", Destination: "LAX", TravelDate: "2025-09-15", Passengers: 1, CabinClass: "economy"}
	b := a
	b.SortBy = "duration" // presentation settings do not change the key

	if Key(a) != Key(b) {
		t.Error("sort key changed the cache key")
	}

	c := a
	c.Destination = "SFO"
	if Key(a) == Key(c) {
		t.Error("different routes share a cache key")
	}

	ret := "2025-09-20"
	d := a
	d.ReturnDate = &ret
	if Key(a) == Key(d) {
		t.Error("round trip shares a key with one-way")
	}
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	req := models.SearchRequest{Origin: "NYC", Destination: "LAX", TravelDate: "2025-09-15"}

	if err := c.Set(context.Background(), req, &models.SearchReport{ID: "x"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get(context.Background(), req); found {
		t.Error("NoOpCache should never hit")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
