package command

import (
	"context"
	"database/sql"

	"github.com/r-o-main/bulk-transfer-api/internal/domain"
)

// passthroughTxRunner hands the callback a nil transaction so the use
// cases can run against mocks without a database.
type passthroughTxRunner struct{}

func (passthroughTxRunner) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

// stubGateway scripts the remote gateway outcome per call: calls beyond
// the script fall back to ok.
type stubGateway struct {
	script []bool
	err    error
	calls  int
}

func (g *stubGateway) Send(ctx context.Context, job domain.TransferJob) (bool, error) {
	g.calls++

	if g.err != nil {
		return false, g.err
	}

	if g.calls <= len(g.script) {
		return g.script[g.calls-1], nil
	}

	return true, nil
}
