package common

import (
	"bytes"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

// HTTPDoer is the `Do` of `http.Client`.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     pester.BackoffStrategy
}

// DefaultRetrySetting retries a failed request three times.
var DefaultRetrySetting = RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialBackoff,
}

// HTTP2Client talks to the node api over http2, falling back to http/1.1
// for plain http endpoints. The node certificates are usually self signed,
// so they are not verified.
type HTTP2Client struct {
	doer      HTTPDoer
	transport *http.Transport
}

// NewHTTP2Client makes a client; with `retry`, the requests go through
// `pester`.
func NewHTTP2Client(timeout time.Duration, retry *RetrySetting) (*HTTP2Client, error) {
	transport := &http.Transport{
		TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
		IdleConnTimeout:   30 * time.Second,
		DisableKeepAlives: true,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: time.Second,
			DualStack: true,
		}).DialContext,
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, err
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	c := &HTTP2Client{doer: client, transport: transport}
	if retry != nil {
		ec := pester.NewExtendedClient(client)
		ec.MaxRetries = retry.MaxRetries
		ec.Concurrency = retry.Concurrency
		ec.Backoff = retry.Backoff
		c.doer = ec
	}

	return c, nil
}

func (c *HTTP2Client) Close() {
	c.transport.CloseIdleConnections()
}

func (c *HTTP2Client) Get(url string, headers http.Header) (*http.Response, error) {
	return c.send("GET", url, nil, headers)
}

func (c *HTTP2Client) Post(url string, b []byte, headers http.Header) (*http.Response, error) {
	return c.send("POST", url, bytes.NewReader(b), headers)
}

func (c *HTTP2Client) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}

func (c *HTTP2Client) send(method, url string, body io.Reader, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	return c.Do(req)
}
