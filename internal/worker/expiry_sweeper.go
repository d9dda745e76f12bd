package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SweepFacade exposes the expiry sweep to the scheduler worker.
type SweepFacade interface {
	ExpireStaleOrders(ctx context.Context) (int64, error)
}

// ExpirySweeper periodically moves stale pending orders to EXPIRE. The sweep
// itself is a single conditional bulk update, so re-running it is harmless.
type ExpirySweeper struct {
	facade   SweepFacade
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewExpirySweeper constructs the sweep worker.
func NewExpirySweeper(facade SweepFacade, interval time.Duration, logger *slog.Logger) *ExpirySweeper {
	return &ExpirySweeper{facade: facade, interval: interval, logger: logger}
}

// Start launches the background sweep loop.
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the loop to finish.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ExpirySweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	count, err := s.facade.ExpireStaleOrders(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", slog.String("error", err.Error()))
		return
	}
	if count > 0 {
		s.logger.Info("expired stale orders", slog.Int64("count", count))
	}
}
