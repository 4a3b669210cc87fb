package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/r-o-main/bulk-transfer-api/common/mlog"
	commonHTTP "github.com/r-o-main/bulk-transfer-api/common/net/http"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// NewRouter registers the routes of the bulk transfer HTTP server. broker
// may be nil: the internal job endpoints are only mounted when the
// in-memory queue backend is active.
func NewRouter(logger mlog.Logger, version string, bulkTransferHandler *BulkTransferHandler, brokerHandler *BrokerHandler) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	f.Use(commonHTTP.WithCORS())
	f.Use(commonHTTP.WithCorrelationID())
	f.Use(commonHTTP.WithHTTPLogging(commonHTTP.WithCustomLogger(logger)))

	// Bulk transfers
	f.Post("/transfers/bulk", commonHTTP.WithBody(new(domain.BulkTransferInput), bulkTransferHandler.CreateBulkTransfer))
	f.Get("/transfers/bulk/:bulk_id", bulkTransferHandler.GetBulkTransfer)

	// Broker stub, reference build only
	if brokerHandler != nil {
		f.Post("/internal/jobs/transfer", commonHTTP.WithBody(new(domain.TransferJob), brokerHandler.EnqueueTransferJob))
		f.Get("/internal/jobs/transfer", brokerHandler.ConsumeTransferJob)
		f.Post("/internal/jobs/bulk", commonHTTP.WithBody(new(domain.FinalizeBulkJob), brokerHandler.EnqueueFinalizeBulkJob))
		f.Get("/internal/jobs/bulk", brokerHandler.ConsumeFinalizeBulkJob)
	}

	// Health
	f.Get("/health", commonHTTP.Ping)

	// Version
	f.Get("/version", commonHTTP.Version(version))

	return f
}
