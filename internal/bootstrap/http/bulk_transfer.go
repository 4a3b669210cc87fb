// Package http contains the Fiber handlers of the bulk transfer service:
// the public intake and status endpoints, plus the in-memory broker stub
// used when no real message broker is configured.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mopentelemetry"
	commonHTTP "github.com/r-o-main/bulk-transfer-api/common/net/http"
	cn "github.com/r-o-main/bulk-transfer-api/internal/constant"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/services/command"
	"github.com/r-o-main/bulk-transfer-api/internal/services/query"
)

// BulkTransferHandler struct contains the command and query use cases for
// bulk transfer related operations.
type BulkTransferHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// bulkTransferAccepted is the 201 response body of the intake endpoint.
type bulkTransferAccepted struct {
	BulkID  string `json:"bulk_id"`
	Message string `json:"message"`
}

// bulkTransferDenied is the error response body of the intake endpoint.
type bulkTransferDenied struct {
	BulkID  string          `json:"bulk_id"`
	Message string          `json:"message"`
	Error   bulkErrorDetail `json:"error"`
}

type bulkErrorDetail struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

// bulkRequestStatus is the response body of the status endpoint.
type bulkRequestStatus struct {
	BulkID               string     `json:"bulk_id"`
	Status               string     `json:"status"`
	TotalAmountCents     int64      `json:"total_amount_cents"`
	ProcessedAmountCents int64      `json:"processed_amount_cents"`
	CreatedAt            time.Time  `json:"created_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

// CreateBulkTransfer is a method that admits a bulk transfer submission.
func (handler *BulkTransferHandler) CreateBulkTransfer(i any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.create_bulk_transfer")
	defer span.End()

	payload := i.(*domain.BulkTransferInput)
	logger.Infof("Request to create a bulk transfer: %s with %d transfers", payload.RequestID, len(payload.CreditTransfers))

	// Currency codes are a schema concern: reject non-ISO-4217 values
	// before the submission reaches the intake pipeline.
	for _, ct := range payload.CreditTransfers {
		if err := common.ValidateCurrency(ct.Currency); err != nil {
			mopentelemetry.HandleSpanError(&span, "Invalid transfer currency", err)

			return commonHTTP.UnprocessableSchema(c, common.ValidateBusinessError(err, "CreditTransfer"))
		}
	}

	bulk, err := handler.Command.SubmitBulk(ctx, payload)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to admit bulk transfer", err)

		return denyBulkTransfer(c, payload.RequestID, err)
	}

	logger.Infof("Successfully accepted bulk transfer %s", bulk.RequestUUID)

	return c.Status(fiber.StatusCreated).JSON(bulkTransferAccepted{
		BulkID:  bulk.RequestUUID,
		Message: "Bulk transfer accepted",
	})
}

// GetBulkTransfer is a method that retrieves the current state of a bulk
// request by its client-supplied id.
func (handler *BulkTransferHandler) GetBulkTransfer(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.get_bulk_transfer")
	defer span.End()

	requestUUID := c.Params("bulk_id")

	bulk, err := handler.Query.GetBulkRequestByUUID(ctx, requestUUID)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to retrieve bulk transfer", err)

		logger.Errorf("Failed to retrieve bulk transfer %s: %v", requestUUID, err)

		return internalBulkTransferError(c, requestUUID)
	}

	if bulk == nil {
		return c.Status(fiber.StatusNotFound).JSON(bulkTransferDenied{
			BulkID:  requestUUID,
			Message: "Bulk transfer not found",
			Error: bulkErrorDetail{
				Reason:  "unknown-bulk-request",
				Details: "No bulk request was found for the given id.",
			},
		})
	}

	return c.Status(fiber.StatusOK).JSON(bulkRequestStatus{
		BulkID:               bulk.RequestUUID,
		Status:               string(bulk.Status),
		TotalAmountCents:     bulk.TotalAmountCents,
		ProcessedAmountCents: bulk.ProcessedAmountCents,
		CreatedAt:            bulk.CreatedAt,
		CompletedAt:          bulk.CompletedAt,
	})
}

// denyBulkTransfer renders an intake rejection: a business rejection keeps
// its status/reason pair, anything else is a generic 500 so internal
// details never leak to the caller.
func denyBulkTransfer(c *fiber.Ctx, bulkID string, err error) error {
	var businessErr cn.BusinessError
	if errors.As(cn.ValidateBusinessError(err), &businessErr) {
		return c.Status(businessErr.Status).JSON(bulkTransferDenied{
			BulkID:  bulkID,
			Message: "Bulk transfer denied",
			Error: bulkErrorDetail{
				Reason:  businessErr.Reason,
				Details: businessErr.Details,
			},
		})
	}

	logger := common.NewLoggerFromContext(c.UserContext())
	logger.Errorf("Internal failure admitting bulk %s: %v", bulkID, err)

	return internalBulkTransferError(c, bulkID)
}

func internalBulkTransferError(c *fiber.Ctx, bulkID string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(bulkTransferDenied{
		BulkID:  bulkID,
		Message: "Bulk transfer denied",
		Error: bulkErrorDetail{
			Reason:  "internal-error",
			Details: "An internal error occurred, the request may be retried.",
		},
	})
}
