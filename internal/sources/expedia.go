package sources

import (
	"context"
	"errors"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

// ExpediaSource fills the expedia.com search form in a headless browser and
// scrapes the offer listing.
type ExpediaSource struct {
	logger  *zap.Logger
	options []chromedp.ExecAllocatorOption
}

func NewExpediaSource(cfg Config) *ExpediaSource {
	return &ExpediaSource{
		logger:  namedLogger(cfg.Logger, "expedia"),
		options: browserOptions(cfg),
	}
}

func (s *ExpediaSource) Name() string {
	return "expedia"
}

func (s *ExpediaSource) Fetch(ctx context.Context, req models.SearchRequest) ([]models.RawOffer, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, s.options...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	s.logger.Info("filling search form",
		zap.String("origin", req.Origin),
		zap.String("destination", req.Destination))

	err := chromedp.Run(taskCtx,
		chromedp.Navigate("https://www.expedia.com/Flights"),
		chromedp.WaitVisible(`#location-field-leg1-origin`),
		chromedp.SendKeys(`#location-field-leg1-origin`, req.Origin),
		chromedp.SendKeys(`#location-field-leg1-destination`, req.Destination),
		chromedp.SendKeys(`#d1`, req.TravelDate),
		chromedp.Click(`#search-button`),
	)
	if err != nil {
		return nil, s.wrap(ctx, KindConnectionFailed, err)
	}

	if err := chromedp.Run(taskCtx, chromedp.WaitVisible(`[data-test-id="offer-listing"]`)); err != nil {
		return nil, s.wrap(ctx, KindTimeout, err)
	}

	var rows []models.RawOffer
	err = chromedp.Run(taskCtx, chromedp.Evaluate(expediaExtractScript, &rows))
	if err != nil {
		return nil, s.wrap(ctx, KindParseFailed, err)
	}

	for i := range rows {
		rows[i].DepartureAirport = req.Origin
		rows[i].ArrivalAirport = req.Destination
	}
	s.logger.Info("extracted results", zap.Int("count", len(rows)))
	return rows, nil
}

func (s *ExpediaSource) wrap(ctx context.Context, kind ErrorKind, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return NewSourceError("expedia", KindTimeout, err)
	}
	return NewSourceError("expedia", kind, err)
}

const expediaExtractScript = `
	Array.from(document.querySelectorAll('[data-test-id="offer-listing"]')).slice(0, 20).map(el => {
		const text = sel => { const n = el.querySelector(sel); return n ? n.textContent.trim() : ''; };
		return {
			airline: text('[data-test-id="airline-name"]'),
			departure_time: text('[data-test-id="departure-time"]'),
			arrival_time: text('[data-test-id="arrival-time"]'),
			duration: text('[data-test-id="journey-duration"]'),
			price: text('[data-test-id="listing-price-dollars"]'),
			stops: text('[data-test-id="flight-stops"]'),
			departure_airport: '',
			arrival_airport: ''
		};
	}).filter(r => r.airline && r.price)
`
