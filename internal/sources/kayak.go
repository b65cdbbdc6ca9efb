package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// KayakSource drives a headless browser against kayak.com result pages.
type KayakSource struct {
	logger  *zap.Logger
	options []chromedp.ExecAllocatorOption
}

func NewKayakSource(cfg Config) *KayakSource {
	return &KayakSource{
		logger:  namedLogger(cfg.Logger, "kayak"),
		options: browserOptions(cfg),
	}
}

func (s *KayakSource) Name() string {
	return "kayak"
}

func (s *KayakSource) Fetch(ctx context.Context, req models.SearchRequest) ([]models.RawOffer, error) {
	url := fmt.Sprintf("https://www.kayak.com/flights/%s-%s/%s", req.Origin, req.Destination, req.TravelDate)
	if req.ReturnDate != nil && *req.ReturnDate != "" {
		url += "/" + *req.ReturnDate
	}
	url += "?sort=price_a"

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, s.options...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	s.logger.Info("navigating", zap.String("url", url))

	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body"),
		chromedp.Evaluate(stealthScript, nil),
	)
	if err != nil {
		return nil, s.wrap(ctx, KindConnectionFailed, err)
	}

	if err := chromedp.Run(taskCtx, chromedp.WaitVisible(`[data-resultid]`)); err != nil {
		// Results never rendered: either the page is still loading or we
		// were served an interstitial.
		return nil, s.wrap(ctx, KindTimeout, err)
	}

	var rows []models.RawOffer
	err = chromedp.Run(taskCtx, chromedp.Evaluate(kayakExtractScript, &rows))
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

func (s *KayakSource) wrap(ctx context.Context, kind ErrorKind, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return NewSourceError("kayak", KindTimeout, err)
	}
	return NewSourceError("kayak", kind, err)
}

const stealthScript = `
	Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
	window.chrome = { runtime: {} };
`

const kayakExtractScript = `
	Array.from(document.querySelectorAll('[data-resultid]')).slice(0, 20).map(el => {
		const text = sel => { const n = el.querySelector(sel); return n ? n.textContent.trim() : ''; };
		const times = Array.from(el.querySelectorAll('.vmXl-mod-variant-large')).map(n => n.textContent.trim());
		const airlineEl = el.querySelector('[data-code]');
		return {
			airline: airlineEl ? (airlineEl.getAttribute('title') || airlineEl.textContent.trim()) : '',
			departure_time: times[0] || '',
			arrival_time: times[1] || '',
			duration: text('.vmXl-mod-variant-default'),
			price: text('.f8F1-price-text'),
			stops: text('.JWEO'),
			departure_airport: '',
			arrival_airport: ''
		};
	}).filter(r => r.airline && r.price)
`

func browserOptions(cfg Config) []chromedp.ExecAllocatorOption {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.UserAgent(ua),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
	)
	if cfg.Headless {
		opts = append(opts, chromedp.Headless)
	}
	return opts
}

func namedLogger(logger *zap.Logger, name string) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(name)
}
