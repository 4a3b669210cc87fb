package query

import (
	"context"
	"database/sql"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mopentelemetry"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// GetBulkRequestByUUID loads a bulk request by its client-supplied request
// uuid, without locking it. Returns nil when no such bulk exists.
func (uc *UseCase) GetBulkRequestByUUID(ctx context.Context, requestUUID string) (*domain.BulkRequest, error) {
	logger := common.NewLoggerFromContext(ctx)
	tracer := common.NewTracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "query.get_bulk_request_by_uuid")
	defer span.End()

	logger.Infof("Retrieving bulk request %s", requestUUID)

	var bulk *domain.BulkRequest

	err := uc.Tx.WithTx(ctx, func(tx *sql.Tx) error {
		var err error

		bulk, err = uc.BulkRequestRepo.LookupByUUID(ctx, tx, requestUUID)

		return err
	})
	if err != nil {
		mopentelemetry.HandleSpanError(&span, "Failed to retrieve bulk request", err)

		return nil, err
	}

	return bulk, nil
}
