package source

import (
	"context"
	"time"

	"news-digest/internal/domain/entity"
	"news-digest/internal/pkg/clock"
)

// SimulatedSource is an in-memory source with configurable latency and an
// optional forced error. Latency goes through the injected clock, so tests
// using a fake clock run without real wall-clock waits. It is
// interchangeable with the live sources behind the same contract.
type SimulatedSource struct {
	name     string
	articles []entity.Article
	latency  time.Duration
	err      error
	clock    clock.Clock
}

// NewSimulatedSource creates a simulated source returning the given
// articles after the given latency. A nil clk defaults to the system clock.
func NewSimulatedSource(name string, articles []entity.Article, latency time.Duration, clk clock.Clock) *SimulatedSource {
	if clk == nil {
		clk = clock.Real{}
	}
	return &SimulatedSource{
		name:     name,
		articles: articles,
		latency:  latency,
		clock:    clk,
	}
}

// NewFailingSource creates a simulated source that always fails with err
// after the given latency.
func NewFailingSource(name string, err error, latency time.Duration, clk clock.Clock) *SimulatedSource {
	s := NewSimulatedSource(name, nil, latency, clk)
	s.err = err
	return s
}

// Name returns the human-readable source name.
func (s *SimulatedSource) Name() string { return s.name }

// Fetch waits out the configured latency and returns a copy of the
// configured articles, or the configured error.
func (s *SimulatedSource) Fetch(ctx context.Context) ([]entity.Article, error) {
	if err := s.clock.Sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entity.Article, len(s.articles))
	copy(out, s.articles)
	return out, nil
}
