package network

import (
	"errors"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"boscoin.io/ballot/lib/common"
)

// HTTP2ServerConfig is read from the query string of the bind endpoint,
// like `https://0.0.0.0:12345?TLSCertFile=a.pem&TLSKeyFile=b.pem`.
type HTTP2ServerConfig struct {
	Endpoint *common.Endpoint
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string

	HTTP2LogOutput io.Writer
}

func parseTimeout(query url.Values, key string) (d time.Duration, err error) {
	if d, err = time.ParseDuration(common.GetUrlQuery(query, key, "0s")); err != nil {
		return
	}
	if d < 0 {
		err = errors.New("invalid '" + key + "'")
	}
	return
}

func NewHTTP2ServerConfigFromEndpoint(endpoint *common.Endpoint, logOutput io.Writer) (config HTTP2ServerConfig, err error) {
	query := endpoint.Query()

	config = HTTP2ServerConfig{
		Endpoint:       endpoint,
		Addr:           endpoint.Host,
		TLSCertFile:    query.Get("TLSCertFile"),
		TLSKeyFile:     query.Get("TLSKeyFile"),
		HTTP2LogOutput: logOutput,
	}

	if config.ReadTimeout, err = parseTimeout(query, "ReadTimeout"); err != nil {
		return
	}
	if config.ReadHeaderTimeout, err = parseTimeout(query, "ReadHeaderTimeout"); err != nil {
		return
	}
	if config.WriteTimeout, err = parseTimeout(query, "WriteTimeout"); err != nil {
		return
	}
	if config.IdleTimeout, err = parseTimeout(query, "IdleTimeout"); err != nil {
		return
	}

	if strings.ToLower(endpoint.Scheme) == "https" && !config.IsHTTPS() {
		err = errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
		return
	}

	if config.HTTP2LogOutput == nil {
		config.HTTP2LogOutput = os.Stdout
	}

	return
}

func (config HTTP2ServerConfig) IsHTTPS() bool {
	return len(config.TLSCertFile) > 0 && len(config.TLSKeyFile) > 0
}
