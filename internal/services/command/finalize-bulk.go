package command

import (
	"context"
	"database/sql"
	"time"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mlog"
	"github.com/r-o-main/bulk-transfer-api/common/mopentelemetry"
	"github.com/r-o-main/bulk-transfer-api/common/mpointers"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// FinalizeBulk applies one finalize job to its bulk request. It locks the
// bulk row first, then the account row - every writer that touches both
// takes the locks in that order.
//
// A job against an already terminal bulk is dropped, which is what makes
// redelivered and late finalize jobs harmless: whichever outcome commits
// first wins, and everything after it is a no-op.
func (uc *UseCase) FinalizeBulk(ctx context.Context, job domain.FinalizeBulkJob) error {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.finalize_bulk")
	defer span.End()

	return uc.Tx.WithTx(ctx, func(tx *sql.Tx) error {
		bulk, err := uc.BulkRequestRepo.LookupForUpdate(ctx, tx, job.BulkRequestUUID)
		if err != nil {
			return err
		}

		if bulk == nil {
			logger.Errorf("Finalize job for unknown bulk %s, dropping", job.BulkRequestUUID)

			return nil
		}

		if bulk.Status.IsTerminal() {
			logger.Infof("Bulk %s already %s, dropping finalize job", bulk.RequestUUID, bulk.Status)

			return nil
		}

		account, err := uc.AccountRepo.LookupByIDForUpdate(ctx, tx, bulk.BankAccountID)
		if err != nil {
			return err
		}

		if account == nil {
			logger.Errorf("Account %s of bulk %s not found, dropping finalize job", bulk.BankAccountID, bulk.RequestUUID)

			return nil
		}

		if !job.Success {
			return uc.cancelBulk(ctx, tx, bulk, logger)
		}

		bulk.ProcessedAmountCents += job.AmountCents

		if bulk.ProcessedAmountCents < bulk.TotalAmountCents {
			logger.Infof("Bulk %s progressed: %d/%d cents", bulk.RequestUUID, bulk.ProcessedAmountCents, bulk.TotalAmountCents)

			return uc.BulkRequestRepo.Save(ctx, tx, bulk)
		}

		if err := uc.completeBulk(ctx, tx, bulk); err != nil {
			mopentelemetry.HandleSpanError(&span, "Failed to complete bulk", err)

			return err
		}

		logger.Infof("Bulk %s completed: %d cents debited", bulk.RequestUUID, bulk.TotalAmountCents)

		return nil
	})
}

// completeBulk settles a fully processed bulk: the reservation is released,
// the balance debited, and the bulk marked COMPLETED.
func (uc *UseCase) completeBulk(ctx context.Context, tx *sql.Tx, bulk *domain.BulkRequest) error {
	if err := uc.AccountRepo.ReserveFunds(ctx, tx, bulk.BankAccountID, -bulk.TotalAmountCents); err != nil {
		return err
	}

	if err := uc.AccountRepo.DebitBalance(ctx, tx, bulk.BankAccountID, bulk.TotalAmountCents); err != nil {
		return err
	}

	bulk.Status = domain.RequestStatusCompleted
	bulk.CompletedAt = mpointers.Time(time.Now().UTC())

	return uc.BulkRequestRepo.Save(ctx, tx, bulk)
}

// cancelBulk rolls back a failed bulk: the full reservation is released
// without touching the balance, even when some legs already reported
// success - their transaction rows remain as an audit trace, but no money
// moves.
func (uc *UseCase) cancelBulk(ctx context.Context, tx *sql.Tx, bulk *domain.BulkRequest, logger mlog.Logger) error {
	if err := uc.AccountRepo.ReserveFunds(ctx, tx, bulk.BankAccountID, -bulk.TotalAmountCents); err != nil {
		return err
	}

	bulk.Status = domain.RequestStatusFailed
	bulk.CompletedAt = mpointers.Time(time.Now().UTC())

	logger.Errorf("Bulk %s failed: %d cents unreserved, balance untouched", bulk.RequestUUID, bulk.TotalAmountCents)

	return uc.BulkRequestRepo.Save(ctx, tx, bulk)
}
