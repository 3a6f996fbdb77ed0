package helper

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewTestServer creates an httptest server that is closed with the test.
func NewTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return ts
}

// JSONHandler replies with the given status and raw JSON body.
func JSONHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}
