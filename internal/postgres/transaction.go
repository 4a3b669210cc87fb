package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mopentelemetry"
	"github.com/r-o-main/bulk-transfer-api/common/mpostgres"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// ErrTransferAlreadyProcessed is returned by Create when a transaction row
// already exists for the given transfer_uuid - the unique-violation
// surfaced at the storage layer.
var ErrTransferAlreadyProcessed = errors.New("transfer already processed")

// TransactionRepository is the persistence boundary for transactions rows.
//
//go:generate mockgen --destination=transaction.mock.go --package=postgres . TransactionRepository
type TransactionRepository interface {
	// Create stores one leg of a bulk request. amount_cents is stored
	// negated (debit sign convention). Returns ErrTransferAlreadyProcessed
	// on a transfer_uuid unique-violation.
	Create(ctx context.Context, tx *sql.Tx, job domain.TransferJob) (*domain.Transaction, error)
	// LookupByTransferUUID reports whether a transaction already exists
	// for transferUUID - the transfer worker's idempotency check.
	LookupByTransferUUID(ctx context.Context, tx *sql.Tx, transferUUID string) (*domain.Transaction, error)
}

// TransactionPostgreSQLRepository is a Postgres-specific implementation of
// TransactionRepository.
type TransactionPostgreSQLRepository struct {
	connection *mpostgres.PostgresConnection
	tableName  string
}

// NewTransactionPostgreSQLRepository returns a new instance of
// TransactionPostgreSQLRepository using the given Postgres connection.
func NewTransactionPostgreSQLRepository(pc *mpostgres.PostgresConnection) *TransactionPostgreSQLRepository {
	return &TransactionPostgreSQLRepository{
		connection: pc,
		tableName:  "transactions",
	}
}

type transactionRow struct {
	ID               string
	TransferUUID     string
	BulkRequestUUID  string
	BankAccountID    string
	CounterpartyName string
	CounterpartyBIC  string
	CounterpartyIBAN string
	AmountCents      int64
	AmountCurrency   string
	Description      string
	CreatedAt        time.Time
}

func (r transactionRow) toEntity() *domain.Transaction {
	return &domain.Transaction{
		ID:               r.ID,
		TransferUUID:     r.TransferUUID,
		BulkRequestUUID:  r.BulkRequestUUID,
		BankAccountID:    r.BankAccountID,
		CounterpartyName: r.CounterpartyName,
		CounterpartyBIC:  r.CounterpartyBIC,
		CounterpartyIBAN: r.CounterpartyIBAN,
		AmountCents:      r.AmountCents,
		AmountCurrency:   r.AmountCurrency,
		Description:      r.Description,
		CreatedAt:        r.CreatedAt,
	}
}

// Create implements TransactionRepository.
func (r *TransactionPostgreSQLRepository) Create(ctx context.Context, tx *sql.Tx, job domain.TransferJob) (*domain.Transaction, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.transaction.create")
	defer span.End()

	id := uuid.New().String()
	now := time.Now().UTC()
	signedAmount := -job.AmountCents

	query, args, err := psql.Insert(r.tableName).
		Columns(
			"id", "transfer_uuid", "bulk_request_uuid", "bank_account_id",
			"counterparty_name", "counterparty_bic", "counterparty_iban",
			"amount_cents", "amount_currency", "description", "created_at",
		).
		Values(
			id, job.TransferUUID, job.BulkRequestUUID, job.BankAccountID,
			job.CounterpartyName, job.CounterpartyBIC, job.CounterpartyIBAN,
			signedAmount, job.AmountCurrency, job.Description, now,
		).
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building create transaction query", err)
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrTransferAlreadyProcessed
		}

		mopentelemetry.HandleSpanError(&span, "failed to create transaction", err)

		return nil, err
	}

	return &domain.Transaction{
		ID:               id,
		TransferUUID:     job.TransferUUID,
		BulkRequestUUID:  job.BulkRequestUUID,
		BankAccountID:    job.BankAccountID,
		CounterpartyName: job.CounterpartyName,
		CounterpartyBIC:  job.CounterpartyBIC,
		CounterpartyIBAN: job.CounterpartyIBAN,
		AmountCents:      signedAmount,
		AmountCurrency:   job.AmountCurrency,
		Description:      job.Description,
		CreatedAt:        now,
	}, nil
}

// LookupByTransferUUID implements TransactionRepository.
func (r *TransactionPostgreSQLRepository) LookupByTransferUUID(ctx context.Context, tx *sql.Tx, transferUUID string) (*domain.Transaction, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.transaction.lookup_by_transfer_uuid")
	defer span.End()

	query, args, err := psql.Select(
		"id", "transfer_uuid", "bulk_request_uuid", "bank_account_id",
		"counterparty_name", "counterparty_bic", "counterparty_iban",
		"amount_cents", "amount_currency", "description", "created_at",
	).
		From(r.tableName).
		Where(squirrel.Eq{"transfer_uuid": transferUUID}).
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building lookup_by_transfer_uuid query", err)
		return nil, err
	}

	var row transactionRow

	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.TransferUUID, &row.BulkRequestUUID, &row.BankAccountID,
		&row.CounterpartyName, &row.CounterpartyBIC, &row.CounterpartyIBAN,
		&row.AmountCents, &row.AmountCurrency, &row.Description, &row.CreatedAt,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		mopentelemetry.HandleSpanError(&span, "failed to lookup transaction", err)
		return nil, err
	}

	return row.toEntity(), nil
}
