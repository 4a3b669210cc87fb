package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mopentelemetry"
	"github.com/r-o-main/bulk-transfer-api/common/mpostgres"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

var bulkRequestColumnList = strings.Split(bulkRequestColumns, ", ")

// BulkRequestRepository is the persistence boundary for bulk_requests rows.
//
//go:generate mockgen --destination=bulk_request.mock.go --package=postgres . BulkRequestRepository
type BulkRequestRepository interface {
	// Create inserts a new bulk request in PENDING status.
	Create(ctx context.Context, tx *sql.Tx, accountID, requestUUID string, totalCents int64) (*domain.BulkRequest, error)
	// LookupByUUID loads a bulk request without locking it - used by the
	// intake idempotency gate and the status endpoint.
	LookupByUUID(ctx context.Context, tx *sql.Tx, requestUUID string) (*domain.BulkRequest, error)
	// LookupForUpdate acquires an exclusive row lock on the bulk request,
	// used by the finalizer.
	LookupForUpdate(ctx context.Context, tx *sql.Tx, requestUUID string) (*domain.BulkRequest, error)
	// Save persists the (already mutated in place) fields of bulk - status,
	// processed_amount_cents, completed_at.
	Save(ctx context.Context, tx *sql.Tx, bulk *domain.BulkRequest) error
}

// BulkRequestPostgreSQLRepository is a Postgres-specific implementation of
// BulkRequestRepository.
type BulkRequestPostgreSQLRepository struct {
	connection *mpostgres.PostgresConnection
	tableName  string
}

// NewBulkRequestPostgreSQLRepository returns a new instance of
// BulkRequestPostgreSQLRepository using the given Postgres connection.
func NewBulkRequestPostgreSQLRepository(pc *mpostgres.PostgresConnection) *BulkRequestPostgreSQLRepository {
	return &BulkRequestPostgreSQLRepository{
		connection: pc,
		tableName:  "bulk_requests",
	}
}

type bulkRequestRow struct {
	ID                   string
	RequestUUID          string
	BankAccountID        string
	Status               string
	TotalAmountCents     int64
	ProcessedAmountCents int64
	CreatedAt            time.Time
	CompletedAt          sql.NullTime
}

func (r bulkRequestRow) toEntity() *domain.BulkRequest {
	b := &domain.BulkRequest{
		ID:                   r.ID,
		RequestUUID:          r.RequestUUID,
		BankAccountID:        r.BankAccountID,
		Status:               domain.RequestStatus(r.Status),
		TotalAmountCents:     r.TotalAmountCents,
		ProcessedAmountCents: r.ProcessedAmountCents,
		CreatedAt:            r.CreatedAt,
	}

	if r.CompletedAt.Valid {
		b.CompletedAt = &r.CompletedAt.Time
	}

	return b
}

const bulkRequestColumns = "id, request_uuid, bank_account_id, status, total_amount_cents, processed_amount_cents, created_at, completed_at"

func scanBulkRequestRow(scanner interface {
	Scan(dest ...any) error
}) (*domain.BulkRequest, error) {
	var row bulkRequestRow

	err := scanner.Scan(
		&row.ID, &row.RequestUUID, &row.BankAccountID, &row.Status,
		&row.TotalAmountCents, &row.ProcessedAmountCents, &row.CreatedAt, &row.CompletedAt,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}

	return row.toEntity(), nil
}

// Create implements BulkRequestRepository.
func (r *BulkRequestPostgreSQLRepository) Create(ctx context.Context, tx *sql.Tx, accountID, requestUUID string, totalCents int64) (*domain.BulkRequest, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.bulk_request.create")
	defer span.End()

	id := uuid.New().String()
	now := time.Now().UTC()

	query, args, err := psql.Insert(r.tableName).
		Columns("id", "request_uuid", "bank_account_id", "status", "total_amount_cents", "processed_amount_cents", "created_at").
		Values(id, requestUUID, accountID, string(domain.RequestStatusPending), totalCents, 0, now).
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building create bulk request query", err)
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to create bulk request", err)
		return nil, err
	}

	return &domain.BulkRequest{
		ID:                   id,
		RequestUUID:          requestUUID,
		BankAccountID:        accountID,
		Status:               domain.RequestStatusPending,
		TotalAmountCents:     totalCents,
		ProcessedAmountCents: 0,
		CreatedAt:            now,
	}, nil
}

// LookupByUUID implements BulkRequestRepository.
func (r *BulkRequestPostgreSQLRepository) LookupByUUID(ctx context.Context, tx *sql.Tx, requestUUID string) (*domain.BulkRequest, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.bulk_request.lookup_by_uuid")
	defer span.End()

	query, args, err := psql.Select(bulkRequestColumnList...).
		From(r.tableName).
		Where(squirrel.Eq{"request_uuid": requestUUID}).
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building lookup_by_uuid query", err)
		return nil, err
	}

	bulk, err := scanBulkRequestRow(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to lookup bulk request", err)
		return nil, err
	}

	return bulk, nil
}

// LookupForUpdate implements BulkRequestRepository.
func (r *BulkRequestPostgreSQLRepository) LookupForUpdate(ctx context.Context, tx *sql.Tx, requestUUID string) (*domain.BulkRequest, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.bulk_request.lookup_for_update")
	defer span.End()

	query, args, err := psql.Select(bulkRequestColumnList...).
		From(r.tableName).
		Where(squirrel.Eq{"request_uuid": requestUUID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building lookup_for_update query", err)
		return nil, err
	}

	bulk, err := scanBulkRequestRow(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to lookup bulk request for update", err)
		return nil, err
	}

	return bulk, nil
}

// Save implements BulkRequestRepository.
func (r *BulkRequestPostgreSQLRepository) Save(ctx context.Context, tx *sql.Tx, bulk *domain.BulkRequest) error {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.bulk_request.save")
	defer span.End()

	builder := psql.Update(r.tableName).
		Set("status", string(bulk.Status)).
		Set("processed_amount_cents", bulk.ProcessedAmountCents).
		Where(squirrel.Eq{"id": bulk.ID})

	if bulk.CompletedAt != nil {
		builder = builder.Set("completed_at", *bulk.CompletedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building save bulk request query", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to save bulk request", err)
		return err
	}

	return nil
}
