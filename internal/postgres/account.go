// Package postgres implements durable storage for accounts, bulk
// requests and transactions over database/sql + pgx/v5 + squirrel: one
// Repository interface plus a PostgreSQL-specific implementation per
// table, a thin row model converted to the domain entity on read, and
// an OpenTelemetry span opened at the top of every method. Row-level
// exclusive locks (SELECT ... FOR UPDATE) carry the serialization the
// intake and finalizer pipelines rely on.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mopentelemetry"
	"github.com/r-o-main/bulk-transfer-api/common/mpostgres"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// AccountRepository is the persistence boundary for bank_accounts rows.
//
//go:generate mockgen --destination=account.mock.go --package=postgres . AccountRepository
type AccountRepository interface {
	// LookupForUpdate acquires an exclusive row lock (SELECT ... FOR
	// UPDATE) on the account matching (bic, iban). tx MUST be non-nil:
	// the lock is only meaningful inside the caller's transaction.
	LookupForUpdate(ctx context.Context, tx *sql.Tx, bic, iban string) (*domain.BankAccount, error)
	// LookupByID loads an account by id without acquiring a lock, used by
	// the transfer worker once the job already carries the account id.
	LookupByID(ctx context.Context, tx *sql.Tx, id string) (*domain.BankAccount, error)
	// LookupByIDForUpdate loads an account by id under an exclusive row
	// lock. The finalizer acquires it after the bulk row lock - that
	// order is uniform across the system and must not be reversed.
	LookupByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.BankAccount, error)
	// ReserveFunds increments ongoing_transfer_cents by delta. delta may
	// be negative (finalizer unreserve).
	ReserveFunds(ctx context.Context, tx *sql.Tx, accountID string, deltaCents int64) error
	// DebitBalance decrements balance_cents by amountCents (finalizer
	// success path).
	DebitBalance(ctx context.Context, tx *sql.Tx, accountID string, amountCents int64) error
}

// AccountPostgreSQLRepository is a Postgres-specific implementation of
// AccountRepository.
type AccountPostgreSQLRepository struct {
	connection *mpostgres.PostgresConnection
	tableName  string
}

// NewAccountPostgreSQLRepository returns a new instance of
// AccountPostgreSQLRepository using the given Postgres connection.
func NewAccountPostgreSQLRepository(pc *mpostgres.PostgresConnection) *AccountPostgreSQLRepository {
	return &AccountPostgreSQLRepository{
		connection: pc,
		tableName:  "bank_accounts",
	}
}

// accountRow is the row shape bank_accounts scans into before it's
// converted to the domain.BankAccount the rest of the system works with.
type accountRow struct {
	ID                   string
	BIC                  string
	IBAN                 string
	OrganizationName     string
	BalanceCents         int64
	OngoingTransferCents int64
}

func (r accountRow) toEntity() *domain.BankAccount {
	return &domain.BankAccount{
		ID:                   r.ID,
		BIC:                  r.BIC,
		IBAN:                 r.IBAN,
		OrganizationName:     r.OrganizationName,
		BalanceCents:         r.BalanceCents,
		OngoingTransferCents: r.OngoingTransferCents,
	}
}

// LookupForUpdate implements AccountRepository.
func (r *AccountPostgreSQLRepository) LookupForUpdate(ctx context.Context, tx *sql.Tx, bic, iban string) (*domain.BankAccount, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.account.lookup_for_update")
	defer span.End()

	query, args, err := psql.Select("id", "bic", "iban", "organization_name", "balance_cents", "ongoing_transfer_cents").
		From(r.tableName).
		Where(squirrel.Eq{"bic": bic, "iban": iban}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building lookup_for_update query", err)
		return nil, err
	}

	var row accountRow

	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.BIC, &row.IBAN, &row.OrganizationName, &row.BalanceCents, &row.OngoingTransferCents,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		mopentelemetry.HandleSpanError(&span, "failed to lookup account for update", err)
		return nil, err
	}

	return row.toEntity(), nil
}

// LookupByID implements AccountRepository.
func (r *AccountPostgreSQLRepository) LookupByID(ctx context.Context, tx *sql.Tx, id string) (*domain.BankAccount, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.account.lookup_by_id")
	defer span.End()

	query, args, err := psql.Select("id", "bic", "iban", "organization_name", "balance_cents", "ongoing_transfer_cents").
		From(r.tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building lookup_by_id query", err)
		return nil, err
	}

	var row accountRow

	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.BIC, &row.IBAN, &row.OrganizationName, &row.BalanceCents, &row.OngoingTransferCents,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		mopentelemetry.HandleSpanError(&span, "failed to lookup account by id", err)
		return nil, err
	}

	return row.toEntity(), nil
}

// LookupByIDForUpdate implements AccountRepository.
func (r *AccountPostgreSQLRepository) LookupByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.BankAccount, error) {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.account.lookup_by_id_for_update")
	defer span.End()

	query, args, err := psql.Select("id", "bic", "iban", "organization_name", "balance_cents", "ongoing_transfer_cents").
		From(r.tableName).
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building lookup_by_id_for_update query", err)
		return nil, err
	}

	var row accountRow

	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.BIC, &row.IBAN, &row.OrganizationName, &row.BalanceCents, &row.OngoingTransferCents,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		mopentelemetry.HandleSpanError(&span, "failed to lookup account by id for update", err)
		return nil, err
	}

	return row.toEntity(), nil
}

// ReserveFunds implements AccountRepository.
func (r *AccountPostgreSQLRepository) ReserveFunds(ctx context.Context, tx *sql.Tx, accountID string, deltaCents int64) error {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.account.reserve_funds")
	defer span.End()

	query, args, err := psql.Update(r.tableName).
		Set("ongoing_transfer_cents", squirrel.Expr("ongoing_transfer_cents + ?", deltaCents)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": accountID}).
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building reserve_funds query", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			mopentelemetry.HandleSpanError(&span, "failed to reserve funds", pgErr)
			return pgErr
		}

		mopentelemetry.HandleSpanError(&span, "failed to reserve funds", err)

		return err
	}

	return nil
}

// DebitBalance implements AccountRepository.
func (r *AccountPostgreSQLRepository) DebitBalance(ctx context.Context, tx *sql.Tx, accountID string, amountCents int64) error {
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "postgres.account.debit_balance")
	defer span.End()

	query, args, err := psql.Update(r.tableName).
		Set("balance_cents", squirrel.Expr("balance_cents - ?", amountCents)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": accountID}).
		ToSql()
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "failed building debit_balance query", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		mopentelemetry.HandleSpanError(&span, "failed to debit balance", err)
		return err
	}

	return nil
}
