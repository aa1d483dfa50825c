package common

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHTTP2Client(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		b, _ := ioutil.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Token", r.Header.Get("X-Token"))
		w.Write(b)
	}))
	defer server.Close()

	for _, retry := range []*RetrySetting{nil, &DefaultRetrySetting} {
		client, err := NewHTTP2Client(time.Second, retry)
		require.NoError(t, err)

		resp, err := client.Post(server.URL, []byte("showme"), http.Header{"X-Token": []string{"findme"}})
		require.NoError(t, err)
		b, err := ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, "showme", string(b))
		require.Equal(t, "POST", resp.Header.Get("X-Method"))
		require.Equal(t, "findme", resp.Header.Get("X-Token"))

		resp, err = client.Get(server.URL+"/moved", nil)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusFound, resp.StatusCode)

		client.Close()
	}
}
