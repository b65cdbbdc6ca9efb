package sources

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

// Source is the capability every data source implements, whether it drives
// a browser, scrapes over HTTP or generates synthetic data. A Fetch call
// honors ctx and returns raw rows or a *SourceError.
type Source interface {
	Name() string
	Fetch(ctx context.Context, req models.SearchRequest) ([]models.RawOffer, error)
}

type ErrorKind string

const (
	KindTimeout          ErrorKind = "timeout"
	KindConnectionFailed ErrorKind = "connection_failed"
	KindParseFailed      ErrorKind = "parse_failed"
	KindRateLimited      ErrorKind = "rate_limited"
)

type SourceError struct {
	Source string
	Kind   ErrorKind
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return e.Source + ": " + string(e.Kind)
	}
	return e.Source + ": " + string(e.Kind) + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func NewSourceError(source string, kind ErrorKind, err error) *SourceError {
	return &SourceError{Source: source, Kind: kind, Err: err}
}

// KindOf classifies an error from a Fetch call. Deadline overruns map to
// timeout even when the implementation did not wrap them; anything
// unrecognized counts as a connection failure.
func KindOf(err error) ErrorKind {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindConnectionFailed
}

// Retryable reports whether a failure kind is transient enough to retry
// with backoff. Parse failures are handled separately: they get a single
// immediate retry (partial page loads) and then exhaust the source.
func Retryable(kind ErrorKind) bool {
	switch kind {
	case KindTimeout, KindConnectionFailed, KindRateLimited:
		return true
	}
	return false
}

// Config carries the settings source constructors may need. Scraper sources
// read the browser fields; the demo source only uses MaxResults.
type Config struct {
	Headless   bool
	UserAgent  string
	MaxResults int
	Logger     *zap.Logger
}

type Constructor func(cfg Config) (Source, error)

// Registry maps a source name to its constructor, so the chain is assembled
// from configuration without the orchestrator knowing concrete types.
type Registry struct {
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

func (r *Registry) Register(name string, c Constructor) {
	r.constructors[name] = c
}

var ErrUnknownSource = errors.New("unknown source")

func (r *Registry) New(name string, cfg Config) (Source, error) {
	c, ok := r.constructors[name]
	if !ok {
		return nil, ErrUnknownSource
	}
	return c(cfg)
}

func (r *Registry) Has(name string) bool {
	_, ok := r.constructors[name]
	return ok
}

// DefaultRegistry holds every real scraper plus the demo generator.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("kayak", func(cfg Config) (Source, error) { return NewKayakSource(cfg), nil })
	r.Register("expedia", func(cfg Config) (Source, error) { return NewExpediaSource(cfg), nil })
	r.Register("booking", func(cfg Config) (Source, error) { return NewBookingSource(cfg), nil })
	r.Register("demo", func(cfg Config) (Source, error) { return NewDemoSource(cfg), nil })
	return r
}

// DemoRegistry resolves every name to the synthetic generator, so a chain
// configured for real sites runs offline unchanged.
func DemoRegistry() *Registry {
	r := NewRegistry()
	demo := func(cfg Config) (Source, error) { return NewDemoSource(cfg), nil }
	for _, name := range []string{"kayak", "expedia", "booking", "demo"} {
		r.Register(name, demo)
	}
	return r
}
