// Package gateway implements the one-shot outbound call the transfer
// worker makes to move funds at the external bank system. The interface
// stays a single Send call regardless of backend - an in-process fake for
// local development and tests, and an HTTP-backed implementation that
// gives the component a real network boundary to exercise.
package gateway

import (
	"context"

	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// RemoteTransferGateway executes one leg of a bulk request against the
// external bank system. It returns (true, nil) on a confirmed
// transfer, (false, nil) on a reported failure the caller should treat
// as a normal business outcome, and a non-nil error only when the call
// itself could not be completed (timeout, connection refused, ...).
type RemoteTransferGateway interface {
	Send(ctx context.Context, job domain.TransferJob) (bool, error)
}
