package main

import (
	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/internal/bootstrap"
)

func main() {
	common.InitLocalEnvConfig()
	bootstrap.InitService().Run()
}
