package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightscanner/internal/fallback"
	"github.com/dharmasatrya/flightscanner/internal/models"
	"github.com/dharmasatrya/flightscanner/internal/normalize"
	"github.com/dharmasatrya/flightscanner/internal/ranker"
	"github.com/dharmasatrya/flightscanner/internal/sources"
)

// FallbackPolicy decides when the chain stops advancing.
type FallbackPolicy string

const (
	// PolicyFirstReachable stops at the first source that answers, even
	// with zero offers: a reachable source's zero is authoritative.
	PolicyFirstReachable FallbackPolicy = "first_reachable"
	// PolicyFirstNonEmpty keeps falling back until some source yields at
	// least one offer.
	PolicyFirstNonEmpty FallbackPolicy = "first_non_empty"
)

type Config struct {
	Chain      []sources.Source
	Controller fallback.Config
	Policy     FallbackPolicy
}

// Orchestrator coordinates one search: validate the request, walk the source
// chain through the retry controller, normalize and rank the winner's offers
// and assemble the report.
type Orchestrator struct {
	cfg        Config
	controller *fallback.Controller
	logger     *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Orchestrator {
	if cfg.Policy == "" {
		cfg.Policy = PolicyFirstReachable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		cfg:        cfg,
		controller: fallback.New(cfg.Controller, logger),
		logger:     logger,
	}
}

// Search runs the full chain. It returns an error only for an invalid
// request; an exhausted chain or an external cancellation still produces a
// report, and the caller decides what zero offers mean.
func (o *Orchestrator) Search(ctx context.Context, req models.SearchRequest) (*models.SearchReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	report := &models.SearchReport{
		ID:         uuid.NewString(),
		Request:    req,
		Status:     models.StatusCompleted,
		Offers:     []models.Offer{},
		Outcomes:   []models.SourceOutcome{},
		SearchedAt: start,
	}

	o.logger.Info("starting search",
		zap.String("origin", req.Origin),
		zap.String("destination", req.Destination),
		zap.String("travel_date", req.TravelDate),
		zap.Int("chain_length", len(o.cfg.Chain)))

	var winner []models.Offer
	for _, src := range o.cfg.Chain {
		res := o.controller.Run(ctx, src, req)

		if res.State == fallback.StateCancelled {
			report.Outcomes = append(report.Outcomes, res.Outcome)
			report.Status = models.StatusCancelled
			report.ElapsedMs = time.Since(start).Milliseconds()
			o.logger.Warn("search cancelled", zap.String("source", src.Name()))
			return report, nil
		}

		if res.State == fallback.StateExhausted {
			report.Outcomes = append(report.Outcomes, res.Outcome)
			o.logger.Warn("source exhausted, falling back",
				zap.String("source", src.Name()),
				zap.String("kind", res.Outcome.FailureKind))
			continue
		}

		offers, dropped := o.normalizeAll(res.Offers, src.Name(), req.TravelDate)
		res.Outcome.Offers = len(offers)
		res.Outcome.Dropped = dropped
		report.Outcomes = append(report.Outcomes, res.Outcome)

		if o.cfg.Policy == PolicyFirstNonEmpty && len(offers) == 0 {
			o.logger.Info("source reachable but empty, falling back",
				zap.String("source", src.Name()))
			continue
		}

		winner = offers
		report.WinningSource = src.Name()
		break
	}

	if report.WinningSource == "" {
		o.logger.Warn("no source produced a result")
	} else {
		ranked := ranker.Rank(winner, req.SortBy)
		if len(ranked) > req.MaxResults {
			ranked = ranked[:req.MaxResults]
		}
		report.Offers = ranked
	}

	report.ElapsedMs = time.Since(start).Milliseconds()
	return report, nil
}

func (o *Orchestrator) normalizeAll(raws []models.RawOffer, sourceID, travelDate string) ([]models.Offer, int) {
	offers := make([]models.Offer, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		offer, err := normalize.Offer(raw, sourceID, travelDate)
		if err != nil {
			dropped++
			o.logger.Warn("dropping offer",
				zap.String("source", sourceID),
				zap.String("airline", raw.Airline),
				zap.Error(err))
			continue
		}
		offers = append(offers, offer)
	}
	return offers, dropped
}
