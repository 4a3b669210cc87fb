package gateway

import (
	"context"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// FakeGateway always reports success. It exists so the rest of the
// pipeline can be run and tested without any external system.
type FakeGateway struct{}

// NewFakeGateway returns a FakeGateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

// Send implements RemoteTransferGateway.
func (g *FakeGateway) Send(ctx context.Context, job domain.TransferJob) (bool, error) {
	logger := common.NewLoggerFromContext(ctx)
	logger.Infof("fake transfer to external system: %s", job.TransferUUID)

	return true, nil
}
