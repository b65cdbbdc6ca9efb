package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

// BookingSource scrapes booking.com flight results over plain HTTP; the
// listing pages render server-side, so no browser is needed.
type BookingSource struct {
	logger    *zap.Logger
	userAgent string
}

func NewBookingSource(cfg Config) *BookingSource {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &BookingSource{
		logger:    namedLogger(cfg.Logger, "booking"),
		userAgent: ua,
	}
}

func (s *BookingSource) Name() string {
	return "booking"
}

func (s *BookingSource) Fetch(ctx context.Context, req models.SearchRequest) ([]models.RawOffer, error) {
	url := fmt.Sprintf(
		"https://flights.booking.com/flights/%s-%s/?depart=%s&adults=%d&cabinClass=%s",
		req.Origin, req.Destination, req.TravelDate, req.Passengers, req.CabinClass)

	c := colly.NewCollector(colly.UserAgent(s.userAgent))
	if deadline, ok := ctx.Deadline(); ok {
		c.SetRequestTimeout(time.Until(deadline))
	}

	var rows []models.RawOffer
	var fetchErr error

	c.OnHTML(`[data-testid="searchresults_card"]`, func(e *colly.HTMLElement) {
		row := models.RawOffer{
			Airline:          e.ChildText(`[data-testid="flight_card_carrier"]`),
			DepartureTime:    e.ChildText(`[data-testid="flight_card_segment_departure_time"]`),
			ArrivalTime:      e.ChildText(`[data-testid="flight_card_segment_destination_time"]`),
			Duration:         e.ChildText(`[data-testid="flight_card_segment_duration"]`),
			Price:            e.ChildText(`[data-testid="flight_card_price_main_price"]`),
			Stops:            e.ChildText(`[data-testid="flight_card_segment_stops"]`),
			DepartureAirport: req.Origin,
			ArrivalAirport:   req.Destination,
		}
		if row.Airline == "" || row.Price == "" {
			return
		}
		rows = append(rows, row)
	})

	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	s.logger.Info("fetching", zap.String("url", url))
	if err := c.Visit(url); err != nil {
		fetchErr = err
	}
	c.Wait()

	if fetchErr != nil {
		kind := KindConnectionFailed
		if errors.Is(fetchErr, context.DeadlineExceeded) || ctx.Err() != nil {
			kind = KindTimeout
		}
		return nil, NewSourceError("booking", kind, fetchErr)
	}

	s.logger.Info("extracted results", zap.Int("count", len(rows)))
	return rows, nil
}
