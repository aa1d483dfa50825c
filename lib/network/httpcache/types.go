package httpcache

import (
	"net/http"
	"time"
)

// Adapter stores the cached responses. `Get` never returns an expired
// response.
type Adapter interface {
	Get(key string) (*Response, bool)
	Set(key string, response *Response, expiration time.Time)
	Remove(key string)
}

type Response struct {
	Value      []byte
	StatusCode int
	Header     http.Header
	Expiration time.Time
}

// IsExpired is false for a zero expiration.
func (r *Response) IsExpired(now time.Time) bool {
	return !r.Expiration.IsZero() && !r.Expiration.After(now)
}

const (
	AdapterNameMemory = "mem"
	AdapterNameRedis  = "redis"
)
