package httpcache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	a, err := NewMemCacheAdapter(10)
	require.NoError(t, err)
	a.Set("/foo?bar=1", &Response{
		Value:      []byte("value 1"),
		StatusCode: 200,
	}, time.Time{})

	c, err := NewClient(WithAdapter(a))
	require.NoError(t, err)

	cnt := 0
	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("missing") != "" {
			w.WriteHeader(http.StatusNotFound)
		}
		w.Write([]byte(fmt.Sprintf("new value:%v", cnt)))
	}))

	tests := []struct {
		name   string
		url    string
		method string
		body   string
		code   int
		cache  string
	}{
		{"return cached resp", "http://localhost/foo?bar=1", "GET", "value 1", 200, "HIT"},
		{"return nocached resp", "http://localhost/foo?bar=2", "GET", "new value:2", 200, "MISS"},
		{"return cached resp again", "http://localhost/foo?bar=2", "GET", "new value:2", 200, "HIT"},
		{"query order does not matter", "http://localhost/foo?b=1&a=2", "GET", "new value:4", 200, "MISS"},
		{"query order does not matter again", "http://localhost/foo?a=2&b=1", "GET", "new value:4", 200, "HIT"},
		{"POST is not cached", "http://localhost/foo?bar=2", "POST", "new value:6", 200, ""},
		{"404 is not cached", "http://localhost/foo?missing=1", "GET", "new value:7", 404, "MISS"},
		{"404 is not cached again", "http://localhost/foo?missing=1", "GET", "new value:8", 404, "MISS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cnt++

			r, err := http.NewRequest(tt.method, tt.url, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			require.Equal(t, tt.code, w.Code)
			require.Equal(t, tt.body, w.Body.String())
			require.Equal(t, tt.cache, w.Header().Get(CacheHeader))
		})
	}
}

func TestMiddlewareExpire(t *testing.T) {
	a, err := NewMemCacheAdapter(10)
	require.NoError(t, err)
	c, err := NewClient(WithAdapter(a), WithExpire(time.Millisecond))
	require.NoError(t, err)

	cnt := 0
	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cnt++
		w.Write([]byte(fmt.Sprintf("%d", cnt)))
	})

	r := httptest.NewRequest("GET", "/expire", nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, "1", w.Body.String())

	time.Sleep(5 * time.Millisecond)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, "2", w.Body.String())
}

func TestNewClientWithoutAdapter(t *testing.T) {
	_, err := NewClient()
	require.Error(t, err)
}

func TestNewAdapter(t *testing.T) {
	{
		a, err := NewAdapter(AdapterNameMemory, 10, "")
		require.NoError(t, err)
		require.IsType(t, &MemCacheAdapter{}, a)
	}

	{
		a, err := NewAdapter(AdapterNameRedis, 0, "localhost:6379, localhost:6380")
		require.NoError(t, err)
		require.IsType(t, &RedisCacheAdapter{}, a)
	}

	{
		_, err := NewAdapter(AdapterNameRedis, 0, "")
		require.Error(t, err)
	}

	{
		_, err := NewAdapter("showme", 10, "")
		require.Error(t, err)
	}
}
