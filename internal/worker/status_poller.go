package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/washmart/washmart/internal/domain/errors"
	"github.com/washmart/washmart/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by
// the status poller.
type PaymentFacade interface {
	PendingOrders(ctx context.Context, limit int) ([]model.Order, error)
	CheckPayment(ctx context.Context, number string) (*model.PaymentUpdate, error)
	ReconcilePayment(ctx context.Context, update model.PaymentUpdate) (*model.Order, bool, error)
}

// StatusPoller periodically asks the gateway for the status of pending orders
// and reconciles the answers. It is the pull-path counterpart of the webhook:
// both feed the same reconciliation routine.
type StatusPoller struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStatusPoller constructs the polling worker pool.
func NewStatusPoller(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *StatusPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &StatusPoller{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background polling.
func (p *StatusPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *StatusPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *StatusPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *StatusPoller) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.PendingOrders(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *StatusPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *StatusPoller) handleOrder(ctx context.Context, order model.Order) {
	update, err := p.facade.CheckPayment(ctx, order.Number)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			// The gateway has not seen the order yet; the shopper may not
			// have opened the payment page. Leave it for the next cycle.
		case errors.Is(err, domainErrors.ErrGatewayUnavailable):
			p.logger.Warn("gateway unavailable during poll", slog.String("order", order.Number))
		default:
			p.logger.Error("payment status fetch failed", slog.String("order", order.Number), slog.String("error", err.Error()))
		}
		return
	}
	update.OrderRef = order.Number

	if _, _, err := p.facade.ReconcilePayment(ctx, *update); err != nil && !errors.Is(err, domainErrors.ErrConflict) {
		p.logger.Error("reconcile polled status failed", slog.String("order", order.Number), slog.String("error", err.Error()))
	}
}
