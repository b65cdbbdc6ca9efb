package models

import (
	"time"

	"github.com/dharmasatrya/flightscanner/internal/airports"
)

const DateLayout = "2006-01-02"

var CabinClasses = []string{"economy", "premium", "business", "first"}

var SortKeys = []string{"price", "duration", "departure_time", "best_value"}

type SearchRequest struct {
	Origin      string  `json:"origin" yaml:"origin"`
	Destination string  `json:"destination" yaml:"destination"`
	TravelDate  string  `json:"travel_date" yaml:"travel_date"`
	ReturnDate  *string `json:"return_date,omitempty" yaml:"return_date,omitempty"`
	Passengers  int     `json:"passengers" yaml:"passengers"`
	CabinClass  string  `json:"cabin_class" yaml:"cabin_class"`
	SortBy      string  `json:"sort_by,omitempty" yaml:"sort_by,omitempty"`
	MaxResults  int     `json:"max_results,omitempty" yaml:"max_results,omitempty"`
}

// Validate applies defaults, resolves city names to airport codes and
// checks the request invariants. No source is contacted on failure.
func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.TravelDate == "" {
		return ErrMissingTravelDate
	}

	r.Origin = airports.Resolve(r.Origin)
	r.Destination = airports.Resolve(r.Destination)
	if r.Origin == r.Destination {
		return ErrSameRoute
	}

	travel, err := time.Parse(DateLayout, r.TravelDate)
	if err != nil {
		return ErrInvalidTravelDate
	}
	if r.ReturnDate != nil && *r.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, *r.ReturnDate)
		if err != nil {
			return ErrInvalidReturnDate
		}
		if ret.Before(travel) {
			return ErrReturnBeforeTravel
		}
	}

	if r.Passengers < 0 {
		return ErrInvalidPassengers
	}
	if r.Passengers == 0 {
		r.Passengers = 1
	}
	if r.CabinClass == "" {
		r.CabinClass = "economy"
	}
	if !contains(CabinClasses, r.CabinClass) {
		return ErrInvalidCabinClass
	}
	if r.SortBy == "" {
		r.SortBy = "price"
	}
	if !contains(SortKeys, r.SortBy) {
		return ErrInvalidSortKey
	}
	if r.MaxResults <= 0 {
		r.MaxResults = 10
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin      ValidationError = "origin is required"
	ErrMissingDestination ValidationError = "destination is required"
	ErrMissingTravelDate  ValidationError = "travel_date is required"
	ErrSameRoute          ValidationError = "origin and destination must differ"
	ErrInvalidTravelDate  ValidationError = "travel_date must be YYYY-MM-DD"
	ErrInvalidReturnDate  ValidationError = "return_date must be YYYY-MM-DD"
	ErrReturnBeforeTravel ValidationError = "return_date must not be before travel_date"
	ErrInvalidPassengers  ValidationError = "passengers must be at least 1"
	ErrInvalidCabinClass  ValidationError = "unknown cabin_class"
	ErrInvalidSortKey     ValidationError = "unknown sort_by key"
)
