package network

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/errors"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	b, err := ioutil.ReadAll(rec.Body)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestRecoverMiddleware(t *testing.T) {
	panicMsg := "Don't panic,just use go"

	router := mux.NewRouter()
	router.Use(RecoverMiddleware(nil))
	router.HandleFunc("/test", func(w http.ResponseWriter, r *http.Request) {
		panic(panicMsg)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/test", nil))

	require.Equal(t, 500, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	m := decodeBody(t, rec)
	require.Equal(t, float64(errors.InternalError.Code), m["code"])
	require.Contains(t, m["message"], "panic: "+panicMsg)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(HeaderRequestID)
	}))

	{
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		require.NotEmpty(t, seen)
		require.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	}

	{
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(HeaderRequestID, "showme")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, "showme", seen)
		require.Equal(t, "showme", rec.Header().Get(HeaderRequestID))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	mw, err := RateLimitMiddleware(log, "2-M")
	require.NoError(t, err)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, 200, request("10.0.0.1:1000").Code)
	require.Equal(t, 200, request("10.0.0.1:1001").Code)

	rec := request("10.0.0.1:1002")
	require.Equal(t, 429, rec.Code)
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	require.Equal(t, float64(errors.TooManyRequests.Code), decodeBody(t, rec)["code"])

	// other clients have their own limit
	require.Equal(t, 200, request("10.0.0.2:1000").Code)
}

func TestRateLimitMiddlewareBadRate(t *testing.T) {
	_, err := RateLimitMiddleware(log, "showme")
	require.Error(t, err)
}

func TestMetricsMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Use(MetricsMiddleware)
	router.HandleFunc("/votings/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/votings/3", nil))
	require.Equal(t, 404, rec.Code)
}
