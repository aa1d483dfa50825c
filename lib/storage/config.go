package storage

import (
	"net/url"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config is parsed from the storage URI, `memory://` or `file:///path`.
type Config struct {
	Scheme string
	Path   string
	Query  url.Values
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid storage uri: %q", s)
	}

	config := &Config{Scheme: parsed.Scheme, Query: parsed.Query()}

	switch parsed.Scheme {
	case "memory":
	case "file":
		if len(parsed.Path) < 1 {
			return nil, errors.Errorf("empty path in storage uri: %q", s)
		}
		if config.Path, err = filepath.Abs(parsed.Path); err != nil {
			return nil, errors.Wrap(err, "invalid storage path")
		}
	default:
		return nil, errors.Errorf("unsupported storage scheme: %q", parsed.Scheme)
	}

	return config, nil
}

func (c Config) String() string {
	u := url.URL{Scheme: c.Scheme, Path: c.Path, RawQuery: c.Query.Encode()}
	if c.Scheme == "memory" {
		u.Path = ""
	}
	return u.String()
}
