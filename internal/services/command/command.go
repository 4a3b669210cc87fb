// Package command implements the write-side use cases of the bulk
// transfer pipeline: admitting a bulk submission, executing one transfer
// leg, and finalizing a bulk once all legs have reported.
package command

import (
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/gateway"
	"github.com/r-o-main/bulk-transfer-api/internal/postgres"
	"github.com/r-o-main/bulk-transfer-api/internal/queue"
)

// UseCase is a struct that aggregates the repositories, queues and the
// remote gateway the write-side operations depend on.
type UseCase struct {
	// Tx opens the single database transaction each operation runs in.
	Tx postgres.TxRunner

	// AccountRepo provides an abstraction on top of the bank_accounts rows.
	AccountRepo postgres.AccountRepository

	// BulkRequestRepo provides an abstraction on top of the bulk_requests rows.
	BulkRequestRepo postgres.BulkRequestRepository

	// TransactionRepo provides an abstraction on top of the transactions rows.
	TransactionRepo postgres.TransactionRepository

	// TransferQueue carries one job per admitted transfer to the worker pool.
	TransferQueue queue.Queue[domain.TransferJob]

	// FinalizeQueue carries one job per attempted transfer to the finalizer.
	FinalizeQueue queue.Queue[domain.FinalizeBulkJob]

	// Gateway dispatches a single transfer to the external bank system.
	Gateway gateway.RemoteTransferGateway
}
