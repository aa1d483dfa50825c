package common

import (
	"os"

	logging "github.com/inconshreveable/log15"
)

var (
	DefaultLogLevel   logging.Lvl     = logging.LvlInfo
	DefaultLogHandler logging.Handler = logging.StreamHandler(os.Stdout, logging.TerminalFormat())
)

var log logging.Logger = NewModuleLogger("common", DefaultLogLevel)

// NewModuleLogger returns the logger of a package, tagged with `module`,
// writing to `DefaultLogHandler` until `SetModuleLogging` is called.
func NewModuleLogger(module string, level logging.Lvl) logging.Logger {
	l := logging.New("module", module)
	SetModuleLogging(l, level, DefaultLogHandler)
	return l
}

func SetModuleLogging(l logging.Logger, level logging.Lvl, handler logging.Handler) {
	l.SetHandler(logging.LvlFilterHandler(level, handler))
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	SetModuleLogging(log, level, handler)
}
