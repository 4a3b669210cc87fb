package bootstrap

import (
	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mlog"
)

// Service is the application glue where we put all top level components to be used.
type Service struct {
	*Server
	*Workers
	mlog.Logger
}

// Run starts the application.
// This is the only necessary code to run an app in main.go
func (app *Service) Run() {
	common.NewLauncher(
		common.WithLogger(app.Logger),
		common.RunApp("HTTP service", app.Server),
		common.RunApp("Job workers", app.Workers),
	).Run()
}
