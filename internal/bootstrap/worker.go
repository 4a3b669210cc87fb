package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mlog"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/queue"
	"github.com/r-o-main/bulk-transfer-api/internal/services/command"
)

const defaultPollInterval = 100 * time.Millisecond

// Workers runs the transfer worker pool and the finalizer pool. Each
// worker polls its queue, hands the job to the command use case, and only
// acks once the job's database transaction has committed. On a shutdown
// signal the pools stop pulling new jobs but complete the one in hand.
type Workers struct {
	useCase             *command.UseCase
	transferQueue       queue.Queue[domain.TransferJob]
	finalizeQueue       queue.Queue[domain.FinalizeBulkJob]
	transferWorkerCount int
	finalizeWorkerCount int
	pollInterval        time.Duration
	stop                chan struct{}
	mlog.Logger
}

// NewWorkers creates the worker pools. Transfers fan out across
// cfg.TransferWorkerCount goroutines; finalizers default to a single
// consumer, which keeps per-bulk progress events in arrival order.
func NewWorkers(cfg *Config, useCase *command.UseCase, transferQueue queue.Queue[domain.TransferJob], finalizeQueue queue.Queue[domain.FinalizeBulkJob], logger mlog.Logger) *Workers {
	transferWorkerCount := cfg.TransferWorkerCount
	if transferWorkerCount <= 0 {
		transferWorkerCount = 4
	}

	finalizeWorkerCount := cfg.FinalizeWorkerCount
	if finalizeWorkerCount <= 0 {
		finalizeWorkerCount = 1
	}

	return &Workers{
		useCase:             useCase,
		transferQueue:       transferQueue,
		finalizeQueue:       finalizeQueue,
		transferWorkerCount: transferWorkerCount,
		finalizeWorkerCount: finalizeWorkerCount,
		pollInterval:        defaultPollInterval,
		stop:                make(chan struct{}),
		Logger:              logger,
	}
}

// Run implements common.App. It blocks until an interrupt or termination
// signal arrives, then drains the in-flight jobs before returning.
func (w *Workers) Run(l *common.Launcher) error {
	// Jobs run on a context that never gets cancelled: a worker finishes
	// the job in hand even during shutdown.
	ctx := common.ContextWithLogger(context.Background(), w.Logger)

	var wg sync.WaitGroup

	w.Infof("Starting %d transfer worker(s) and %d finalize worker(s)", w.transferWorkerCount, w.finalizeWorkerCount)

	for i := 0; i < w.transferWorkerCount; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			runConsumerLoop(ctx, w.stop, w.pollInterval, w.transferQueue, w.useCase.ProcessTransfer, w.Logger)
		}()
	}

	for i := 0; i < w.finalizeWorkerCount; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			runConsumerLoop(ctx, w.stop, w.pollInterval, w.finalizeQueue, w.useCase.FinalizeBulk, w.Logger)
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	w.Info("Shutdown signal received, draining workers")
	close(w.stop)
	wg.Wait()

	return nil
}

// runConsumerLoop polls q until stop closes. A handler error leaves the
// delivery nacked so the queue redelivers it; a nil return acks.
func runConsumerLoop[T any](ctx context.Context, stop <-chan struct{}, pollInterval time.Duration, q queue.Queue[T], handle func(context.Context, T) error, logger mlog.Logger) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		delivery, err := q.Dequeue(ctx)
		if err != nil {
			if !errors.Is(err, queue.ErrEmpty) {
				logger.Errorf("Failed to dequeue job: %v", err)
			}

			select {
			case <-stop:
				return
			case <-time.After(pollInterval):
			}

			continue
		}

		if err := handle(ctx, delivery.Job); err != nil {
			logger.Errorf("Job failed, leaving for redelivery: %v", err)

			if err := delivery.Nack(); err != nil {
				logger.Errorf("Failed to nack job: %v", err)
			}

			continue
		}

		if err := delivery.Ack(); err != nil {
			logger.Errorf("Failed to ack job: %v", err)
		}
	}
}
