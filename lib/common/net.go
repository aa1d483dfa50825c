package common

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const DefaultPort int = 12345

// Endpoint is the url of a node API. The query string carries server
// options, like `ReadTimeout` or `TLSCertFile`.
type Endpoint url.URL

func NewEndpointFromURL(u *url.URL) *Endpoint {
	return (*Endpoint)(u)
}

func (e *Endpoint) String() string {
	return (&url.URL{
		Scheme: e.Scheme,
		Host:   e.Host,
		Path:   e.Path,
	}).String()
}

func (e *Endpoint) Query() url.Values {
	return (*url.URL)(e).Query()
}

func (e *Endpoint) Port() string {
	return (*url.URL)(e).Port()
}

func (e *Endpoint) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(e.String())), nil
}

func (e *Endpoint) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}

	p, err := ParseEndpoint(s)
	if err != nil {
		return err
	}

	*e = *p

	return nil
}

// ParseEndpoint accepts `http` and `https` urls; a missing port becomes
// `DefaultPort`.
func ParseEndpoint(endpoint string) (u *Endpoint, err error) {
	var parsed *url.URL
	if parsed, err = url.Parse(endpoint); err != nil {
		return
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	case "":
		err = errors.New("missing scheme")
		return
	default:
		err = fmt.Errorf("unsupported scheme: %q", parsed.Scheme)
		return
	}

	if len(parsed.Port()) < 1 {
		parsed.Host = fmt.Sprintf("%s:%d", parsed.Hostname(), DefaultPort)
	}

	var portInt int64
	if portInt, err = strconv.ParseInt(parsed.Port(), 10, 64); err != nil {
		return
	} else if portInt < 1 {
		err = errors.New("invalid port")
		return
	}

	parsed.Host = strings.ToLower(parsed.Host)

	u = (*Endpoint)(parsed)

	return
}

func GetUrlQuery(query url.Values, key, defaultValue string) string {
	v := query.Get(key)
	if len(v) > 0 {
		return v
	}

	return defaultValue
}
