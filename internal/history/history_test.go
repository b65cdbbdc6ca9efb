package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

func testReport(id string, at time.Time) *models.SearchReport {
	return &models.SearchReport{
		ID: id,
		Request: models.SearchRequest{
			Origin:      "NYC",
			Destination: "LAX",
			TravelDate:  "2025-09-15",
		},
		Status:        models.StatusCompleted,
		WinningSource: "demo",
		Offers:        []models.Offer{},
		Outcomes:      []models.SourceOutcome{},
		SearchedAt:    at,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	base := time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		if err := store.Put(testReport(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Put(%s): %v", id, err)
		}
	}

	reports, err := store.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("len = %d, want 3", len(reports))
	}
	// Most recent first.
	if reports[0].ID != "third" || reports[2].ID != "first" {
		t.Errorf("order = %s, %s, %s, want third..first",
			reports[0].ID, reports[1].ID, reports[2].ID)
	}

	got, err := store.Get("second")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.WinningSource != "demo" {
		t.Errorf("WinningSource = %q, want demo", got.WinningSource)
	}
}

func TestStoreListLimit(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		report := testReport(time.Duration(i).String(), base.Add(time.Duration(i)*time.Second))
		if err := store.Put(report); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	reports, err := store.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("len = %d, want 2", len(reports))
	}
}

func TestStoreGetMissing(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("nope"); err == nil {
		t.Error("Get on missing id should fail")
	}
}
