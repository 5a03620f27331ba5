// Package httptest holds request and response helpers shared by handler tests.
package httptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func NewJSONRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")

	return req
}

// Serve runs req through h and returns the recorded response.
func Serve(h http.Handler, req *http.Request) *http.Response {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w.Result()
}

// DoJSON issues a JSON request against h; a nil body sends none.
func DoJSON(t *testing.T, h http.Handler, method, url string, body any) *http.Response {
	t.Helper()

	return Serve(h, NewJSONRequest(t, method, url, body))
}

func DecodeJSON[T any](t *testing.T, r io.Reader) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))

	return v
}

type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func DecodeProblem(t *testing.T, resp *http.Response) Problem {
	t.Helper()

	require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))

	return DecodeJSON[Problem](t, resp.Body)
}

func RequireProblem(t *testing.T, resp *http.Response, wantStatus int, wantType string) Problem {
	t.Helper()

	require.Equal(t, wantStatus, resp.StatusCode)

	p := DecodeProblem(t, resp)
	require.Equal(t, wantStatus, p.Status)
	require.Equal(t, wantType, p.Type)
	require.NotEmpty(t, p.Title)

	return p
}
