package httpcache

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"time"

	logging "github.com/inconshreveable/log15"
)

// Client caches the responses of the wrapped handlers. Only successful
// responses are cached, so a resource which does not exist yet is looked up
// again.
type Client struct {
	adapter     Adapter
	ttl         time.Duration
	methods     map[string]bool
	statusCodes map[int]time.Duration
	logger      logging.Logger
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		methods:     map[string]bool{"GET": true},
		statusCodes: map[int]time.Duration{},
		logger:      log,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.New("cache client adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

func WithExpire(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.ttl = ttl
		return nil
	}
}

func WithMethods(methods ...string) ClientOption {
	return func(c *Client) error {
		for _, m := range methods {
			c.methods[m] = true
		}
		return nil
	}
}

// WithStatusCode caches the responses of code, which would not be cached
// otherwise, for ttl.
func WithStatusCode(code int, ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.statusCodes[code] = ttl
		return nil
	}
}

func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// CacheHeader tells whether a response came from the cache, "HIT", or from
// the handler, "MISS".
const CacheHeader = "X-Cache"

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.methods[r.Method] {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r.URL)
		if cached, found := c.adapter.Get(key); found {
			c.logger.Debug("cache hit", "url", key)
			cached.write(w, "HIT")
			return
		}

		c.record(next, r, key).write(w, "MISS")
	})
}

func (c *Client) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return c.Middleware(handlerFunc).ServeHTTP
}

// record runs the handler and keeps its response when the status code is
// cacheable.
func (c *Client) record(next http.Handler, r *http.Request, key string) *Response {
	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)

	result := rec.Result()
	resp := &Response{
		Value:      rec.Body.Bytes(),
		StatusCode: result.StatusCode,
		Header:     result.Header,
	}

	ttl, cacheable := c.statusCodes[resp.StatusCode]
	if !cacheable && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		ttl, cacheable = c.ttl, true
	}
	if cacheable {
		var expiration time.Time
		if ttl > 0 {
			expiration = time.Now().Add(ttl)
		}
		c.adapter.Set(key, resp, expiration)
		c.logger.Debug("response cached", "url", key, "code", resp.StatusCode, "expiration", expiration)
	}

	return resp
}

func (resp *Response) write(w http.ResponseWriter, status string) {
	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.Header().Set(CacheHeader, status)
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Value)
}

// cacheKey does not depend on the order of the query parameters.
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, p := range params {
		sort.Strings(p)
	}

	k := url.URL{Path: u.Path, RawQuery: params.Encode()}
	return k.String()
}
