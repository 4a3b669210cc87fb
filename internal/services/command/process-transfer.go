package command

import (
	"context"
	"database/sql"
	"errors"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mopentelemetry"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
	"github.com/r-o-main/bulk-transfer-api/internal/postgres"
)

// ProcessTransfer executes one leg of a bulk request: it records the
// transaction row, dispatches the transfer to the remote gateway, and
// emits a finalize job carrying the outcome. Everything runs inside one
// database transaction; a returned error leaves the job unacked so the
// queue redelivers it.
//
// Redelivery is safe: the transaction row's transfer_uuid uniqueness
// makes the recording step a no-op the second time around, and duplicate
// finalize jobs are absorbed by the finalizer's terminal-state check.
func (uc *UseCase) ProcessTransfer(ctx context.Context, job domain.TransferJob) error {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.process_transfer")
	defer span.End()

	logger.Infof("Processing transfer %s of bulk %s", job.TransferUUID, job.BulkRequestUUID)

	return uc.Tx.WithTx(ctx, func(tx *sql.Tx) error {
		account, err := uc.AccountRepo.LookupByID(ctx, tx, job.BankAccountID)
		if err != nil {
			return err
		}

		if account == nil {
			logger.Errorf("Account %s of transfer %s not found, cancelling bulk %s",
				job.BankAccountID, job.TransferUUID, job.BulkRequestUUID)

			return uc.FinalizeQueue.Enqueue(ctx, domain.FinalizeBulkJob{
				BulkRequestUUID: job.BulkRequestUUID,
				BankAccountID:   job.BankAccountID,
				AmountCents:     job.AmountCents,
				Success:         false,
			})
		}

		existing, err := uc.TransactionRepo.LookupByTransferUUID(ctx, tx, job.TransferUUID)
		if err != nil {
			return err
		}

		if existing != nil {
			logger.Infof("Transfer %s already recorded, dropping redelivered job", job.TransferUUID)

			return nil
		}

		if _, err := uc.TransactionRepo.Create(ctx, tx, job); err != nil {
			// Lost the race against a concurrent delivery of the same job.
			if errors.Is(err, postgres.ErrTransferAlreadyProcessed) {
				return nil
			}

			mopentelemetry.HandleSpanError(&span, "Failed to record transaction", err)

			return err
		}

		ok, err := uc.Gateway.Send(ctx, job)
		if err != nil {
			mopentelemetry.HandleSpanError(&span, "Remote transfer gateway unreachable", err)

			return err
		}

		if !ok {
			logger.Errorf("Remote gateway refused transfer %s, cancelling bulk %s", job.TransferUUID, job.BulkRequestUUID)
		}

		return uc.FinalizeQueue.Enqueue(ctx, domain.FinalizeBulkJob{
			BulkRequestUUID: job.BulkRequestUUID,
			BankAccountID:   job.BankAccountID,
			AmountCents:     job.AmountCents,
			Success:         ok,
		})
	})
}
