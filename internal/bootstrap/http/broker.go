package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/queue"
)

// BrokerHandler exposes the in-memory queues over HTTP, one POST/GET pair
// per queue. It is only mounted when the memory queue backend is selected:
// it exists to exercise the broker boundary without a real broker, not for
// production use.
type BrokerHandler struct {
	TransferQueue queue.Queue[domain.TransferJob]
	FinalizeQueue queue.Queue[domain.FinalizeBulkJob]
}

// EnqueueTransferJob appends one transfer job to the TRANSFERS queue.
func (handler *BrokerHandler) EnqueueTransferJob(i any, c *fiber.Ctx) error {
	ctx := c.UserContext()
	logger := common.NewLoggerFromContext(ctx)

	job := i.(*domain.TransferJob)

	if err := handler.TransferQueue.Enqueue(ctx, *job); err != nil {
		return err
	}

	logger.Infof("Queued transfer job %s of bulk %s", job.TransferUUID, job.BulkRequestUUID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":            "enqueued",
		"transfer_id":       job.TransferUUID,
		"bulk_request_uuid": job.BulkRequestUUID,
		"type":              "process-transfer",
	})
}

// ConsumeTransferJob pops the oldest pending transfer job, or answers 404
// when the queue is empty.
func (handler *BrokerHandler) ConsumeTransferJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	delivery, err := handler.TransferQueue.Dequeue(ctx)
	if err != nil {
		if errors.Is(err, queue.ErrEmpty) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "No transfer job in queue"})
		}

		return err
	}

	// The HTTP consumer has no ack channel; delivery is fire-and-forget.
	_ = delivery.Ack()

	return c.Status(fiber.StatusOK).JSON(delivery.Job)
}

// EnqueueFinalizeBulkJob appends one finalize job to the FINALIZERS queue.
func (handler *BrokerHandler) EnqueueFinalizeBulkJob(i any, c *fiber.Ctx) error {
	ctx := c.UserContext()
	logger := common.NewLoggerFromContext(ctx)

	job := i.(*domain.FinalizeBulkJob)

	if err := handler.FinalizeQueue.Enqueue(ctx, *job); err != nil {
		return err
	}

	logger.Infof("Queued finalize job for bulk %s", job.BulkRequestUUID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":            "enqueued",
		"bulk_request_uuid": job.BulkRequestUUID,
		"type":              "finalize-bulk",
	})
}

// ConsumeFinalizeBulkJob pops the oldest pending finalize job, or answers
// 404 when the queue is empty.
func (handler *BrokerHandler) ConsumeFinalizeBulkJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	delivery, err := handler.FinalizeQueue.Dequeue(ctx)
	if err != nil {
		if errors.Is(err, queue.ErrEmpty) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "No bulk job in queue"})
		}

		return err
	}

	_ = delivery.Ack()

	return c.Status(fiber.StatusOK).JSON(delivery.Job)
}
