// Package query implements the read-side use cases: looking up a bulk
// request for the status endpoint.
package query

import (
	"github.com/r-o-main/bulk-transfer-api/internal/postgres"
)

// UseCase is a struct that aggregates the repositories the read-side
// operations depend on.
type UseCase struct {
	// Tx opens the database transaction the lookups run in.
	Tx postgres.TxRunner

	// BulkRequestRepo provides an abstraction on top of the bulk_requests rows.
	BulkRequestRepo postgres.BulkRequestRepository
}
