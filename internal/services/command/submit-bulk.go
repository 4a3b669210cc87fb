package command

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mopentelemetry"
	"github.com/r-o-main/bulk-transfer-api/internal/amounts"
	cn "github.com/r-o-main/bulk-transfer-api/internal/constant"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// SubmitBulk validates and admits a bulk transfer submission. The checks
// run in a fixed order - request id, idempotency, transfer count, amount
// parsing, positivity, account lookup, funds - and the first failure
// short-circuits with its reject-reason sentinel, leaving nothing written.
//
// Everything past the request-id check runs inside one database
// transaction with the account row exclusively locked from the moment it
// is loaded, so two concurrent submissions against the same account
// serialize on the funds check. The lock is held across the transfer-job
// enqueues: a request is only acknowledged once every one of its jobs is
// on the queue.
func (uc *UseCase) SubmitBulk(ctx context.Context, input *domain.BulkTransferInput) (*domain.BulkRequest, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "command.submit_bulk")
	defer span.End()

	logger.Infof("Submitting bulk transfer request: %s", input.RequestID)

	requestUUID, err := parseCanonicalUUID(input.RequestID)
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Invalid bulk request id", err)

		return nil, err
	}

	var bulk *domain.BulkRequest

	err = uc.Tx.WithTx(ctx, func(tx *sql.Tx) error {
		existing, err := uc.BulkRequestRepo.LookupByUUID(ctx, tx, requestUUID)
		if err != nil {
			return err
		}

		if existing != nil {
			return cn.ErrAlreadyProcessed
		}

		if len(input.CreditTransfers) > cn.MaxTransfersPerBulk {
			return cn.ErrTooManyTransfers
		}

		transferCents := make([]int64, len(input.CreditTransfers))

		for i, ct := range input.CreditTransfers {
			cents, err := amounts.ToCents(ct.Amount)
			if err != nil {
				return cn.ErrInvalidAmount
			}

			transferCents[i] = cents
		}

		totalCents := int64(0)

		for _, cents := range transferCents {
			if cents <= 0 {
				return cn.ErrNegativeOrNullAmounts
			}

			totalCents += cents
		}

		account, err := uc.AccountRepo.LookupForUpdate(ctx, tx, input.OrganizationBIC, input.OrganizationIBAN)
		if err != nil {
			return err
		}

		if account == nil {
			return cn.ErrUnknownAccount
		}

		if !account.CanReserve(totalCents) {
			logger.Infof("Denying bulk %s: %d cents requested, %d ongoing, %d balance",
				requestUUID, totalCents, account.OngoingTransferCents, account.BalanceCents)

			return cn.ErrInsufficientAccountBalance
		}

		bulk, err = uc.BulkRequestRepo.Create(ctx, tx, account.ID, requestUUID, totalCents)
		if err != nil {
			return err
		}

		if err := uc.AccountRepo.ReserveFunds(ctx, tx, account.ID, totalCents); err != nil {
			return err
		}

		for i, ct := range input.CreditTransfers {
			job := domain.TransferJob{
				TransferUUID:     common.GenerateUUIDv7().String(),
				BulkRequestUUID:  requestUUID,
				BankAccountID:    account.ID,
				CounterpartyName: ct.CounterpartyName,
				CounterpartyBIC:  ct.CounterpartyBIC,
				CounterpartyIBAN: ct.CounterpartyIBAN,
				AmountCents:      transferCents[i],
				AmountCurrency:   ct.Currency,
				Description:      ct.Description,
			}

			if err := uc.TransferQueue.Enqueue(ctx, job); err != nil {
				return err
			}
		}

		logger.Infof("Bulk %s accepted: %d transfers, %d cents reserved", requestUUID, len(input.CreditTransfers), totalCents)

		return nil
	})
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to admit bulk transfer", err)

		return nil, err
	}

	return bulk, nil
}

// parseCanonicalUUID accepts only the canonical lowercase form: the parsed
// value must re-serialize to exactly the input, which rejects upper-case
// hex, missing hyphens, braces and URN prefixes.
func parseCanonicalUUID(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil || u.String() != s {
		return "", cn.ErrInvalidRequestID
	}

	return s, nil
}
