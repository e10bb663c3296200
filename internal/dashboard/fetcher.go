// Package dashboard holds the dashboard display state and the fetcher that
// fills it from the backend.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/statusboard/internal/backend"
	"github.com/okian/statusboard/pkg/logger"
	"github.com/okian/statusboard/pkg/metrics"
)

// Source is the backend surface the fetcher reads from.
type Source interface {
	Message(ctx context.Context) (string, error)
	Health(ctx context.Context) (string, error)
}

// Fetcher owns the message, health and error slots. Each slot is written
// independently; network calls run outside the lock and the last completed
// call for a slot wins.
type Fetcher struct {
	src Source
	log logger.Logger
	now func() time.Time

	mu               sync.RWMutex
	message          string
	health           string
	errMsg           string
	messageUpdatedAt time.Time
	healthUpdatedAt  time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used to report fetch failures.
func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.log = l
		}
	}
}

// WithClock overrides time.Now for update timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFetcher returns a Fetcher in its initial state: empty message,
// health "Checking...", no error.
func NewFetcher(src Source, opts ...Option) *Fetcher {
	f := &Fetcher{
		src:    src,
		log:    logger.Nop(),
		now:    time.Now,
		health: HealthChecking,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load performs the initial fetch of both slots concurrently and returns
// once both finished. Neither outcome affects the other.
func (f *Fetcher) Load(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		f.FetchMessage(ctx)
		return nil
	})
	g.Go(func() error {
		f.CheckHealth(ctx)
		return nil
	})
	_ = g.Wait()
}

// FetchMessage refreshes the greeting message.
func (f *Fetcher) FetchMessage(ctx context.Context) {
	f.clearError()

	log := f.log.With(logger.String("fetch_id", uuid.NewString()), logger.String("endpoint", backend.MessagePath))
	start := time.Now()
	msg, err := f.src.Message(ctx)
	elapsed := time.Since(start)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.messageUpdatedAt = f.now()
	if err != nil {
		metrics.RecordBackendFetch(backend.MessagePath, metrics.OutcomeFailure, ms(elapsed))
		log.Error(ctx, "failed to fetch from backend", logger.Error(err), logger.Duration("elapsed", elapsed))
		f.errMsg = ErrMessageBanner
		f.message = ""
		return
	}
	metrics.RecordBackendFetch(backend.MessagePath, metrics.OutcomeSuccess, ms(elapsed))
	log.Debug(ctx, "message fetched", logger.Duration("elapsed", elapsed))
	f.message = msg
}

// CheckHealth refreshes the health status.
func (f *Fetcher) CheckHealth(ctx context.Context) {
	f.clearError()

	log := f.log.With(logger.String("fetch_id", uuid.NewString()), logger.String("endpoint", backend.HealthPath))
	start := time.Now()
	status, err := f.src.Health(ctx)
	elapsed := time.Since(start)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthUpdatedAt = f.now()
	if err != nil {
		metrics.RecordBackendFetch(backend.HealthPath, metrics.OutcomeFailure, ms(elapsed))
		metrics.SetBackendHealthy(false)
		log.Error(ctx, "failed to fetch health", logger.Error(err), logger.Duration("elapsed", elapsed))
		f.errMsg = ErrHealthBanner
		f.health = HealthUnhealthy
		return
	}
	metrics.RecordBackendFetch(backend.HealthPath, metrics.OutcomeSuccess, ms(elapsed))
	metrics.SetBackendHealthy(IsHealthy(status))
	log.Debug(ctx, "health fetched", logger.String("status", status), logger.Duration("elapsed", elapsed))
	f.health = status
}

// Snapshot returns a copy of the current state.
func (f *Fetcher) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return Snapshot{
		Message:          f.message,
		Health:           f.health,
		Healthy:          IsHealthy(f.health),
		Error:            f.errMsg,
		MessageUpdatedAt: f.messageUpdatedAt,
		HealthUpdatedAt:  f.healthUpdatedAt,
	}
}

func (f *Fetcher) clearError() {
	f.mu.Lock()
	f.errMsg = ""
	f.mu.Unlock()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
