package engine

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/ballot/lib/common"
)

var log logging.Logger = common.NewModuleLogger("engine", common.DefaultLogLevel)

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetModuleLogging(log, level, handler)
}
