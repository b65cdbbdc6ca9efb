package models

import "time"

// RawOffer is a single result row as a source produced it. Text fields
// carry whatever the site rendered ("$245", "5h 15m", "1 stop", "18:30 +1");
// the normalizer turns them into an Offer.
type RawOffer struct {
	Airline          string `json:"airline"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	Duration         string `json:"duration,omitempty"`
	DurationMinutes  int    `json:"duration_minutes,omitempty"`
	Price            string `json:"price"`
	Stops            string `json:"stops"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

type Offer struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	Airline         string    `json:"airline"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           Price     `json:"price"`
	Stops           int       `json:"stops"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	BestValueScore  float64   `json:"best_value_score,omitempty"`
}
