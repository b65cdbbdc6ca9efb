package fallback

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dharmasatrya/flightscanner/internal/models"
	"github.com/dharmasatrya/flightscanner/internal/ratelimit"
	"github.com/dharmasatrya/flightscanner/internal/sources"
)

// State of the per-source retry machine.
type State string

const (
	StateIdle       State = "idle"
	StateAttempting State = "attempting"
	StateRetrying   State = "retrying"
	StateSucceeded  State = "succeeded"
	StateExhausted  State = "exhausted"
	StateCancelled  State = "cancelled"
)

type Config struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
	Backoff        BackoffPolicy
	BackoffDelay   time.Duration
	Limiter        *ratelimit.SourceLimiter
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		AttemptTimeout: 10 * time.Second,
		Backoff:        BackoffFixed,
		BackoffDelay:   2 * time.Second,
	}
}

// Result of driving one source to a terminal state. Offers is non-nil only
// on success; a successful fetch with zero offers is still a success — the
// source was reachable and authoritatively had no matches.
type Result struct {
	State   State
	Offers  []models.RawOffer
	Outcome models.SourceOutcome
}

// Controller runs a single source through bounded retries. Transient
// failures (timeout, connection, rate-limit) back off and retry until the
// attempt budget runs out; a parse failure gets exactly one immediate
// retry and then exhausts the source.
type Controller struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Controller {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{cfg: cfg, logger: logger}
}

func (c *Controller) Run(ctx context.Context, src sources.Source, req models.SearchRequest) Result {
	outcome := models.SourceOutcome{
		Source:   src.Name(),
		Attempts: []models.Attempt{},
	}

	parseRetried := false
	var lastKind sources.ErrorKind

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if c.cfg.Limiter != nil {
			if err := c.cfg.Limiter.Wait(ctx, src.Name()); err != nil {
				return c.cancelled(outcome)
			}
		}
		if ctx.Err() != nil {
			return c.cancelled(outcome)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.AttemptTimeout)
		offers, err := src.Fetch(attemptCtx, req)
		cancel()

		if err == nil {
			outcome.Attempts = append(outcome.Attempts, models.Attempt{Number: attempt})
			outcome.State = models.OutcomeSucceeded
			outcome.Offers = len(offers)
			c.logger.Info("source succeeded",
				zap.String("source", src.Name()),
				zap.Int("attempt", attempt),
				zap.Int("offers", len(offers)))
			return Result{State: StateSucceeded, Offers: offers, Outcome: outcome}
		}

		// The parent being done means the caller cancelled us; the attempt
		// deadline alone is an ordinary timeout.
		if ctx.Err() != nil {
			return c.cancelled(outcome)
		}

		lastKind = sources.KindOf(err)
		outcome.Attempts = append(outcome.Attempts, models.Attempt{
			Number: attempt,
			Error:  string(lastKind),
		})
		c.logger.Warn("source attempt failed",
			zap.String("source", src.Name()),
			zap.Int("attempt", attempt),
			zap.String("kind", string(lastKind)),
			zap.Error(err))

		if lastKind == sources.KindParseFailed {
			if parseRetried || attempt >= c.cfg.MaxAttempts {
				break
			}
			// Parse failures are sometimes a half-loaded page; retry once
			// right away without burning a backoff wait.
			parseRetried = true
			continue
		}

		if !sources.Retryable(lastKind) || attempt >= c.cfg.MaxAttempts {
			break
		}

		delay := Delay(c.cfg.Backoff, c.cfg.BackoffDelay, attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return c.cancelled(outcome)
		}
	}

	outcome.State = models.OutcomeExhausted
	outcome.FailureKind = string(lastKind)
	return Result{State: StateExhausted, Outcome: outcome}
}

func (c *Controller) cancelled(outcome models.SourceOutcome) Result {
	outcome.State = models.OutcomeCancelled
	return Result{State: StateCancelled, Outcome: outcome}
}
