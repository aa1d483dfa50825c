package network

import (
	stdlog "log"
	"strings"

	logging "github.com/inconshreveable/log15"
)

type HTTP2ErrorLog15Writer struct {
	l logging.Logger
}

func (w HTTP2ErrorLog15Writer) Write(b []byte) (int, error) {
	w.l.Error("error", "error", strings.TrimSpace(string(b)))
	return len(b), nil
}

// NewHTTP2ErrorLogger sends the errors of `http.Server` to log15.
func NewHTTP2ErrorLogger(l logging.Logger) *stdlog.Logger {
	return stdlog.New(HTTP2ErrorLog15Writer{l: l}, "", 0)
}
