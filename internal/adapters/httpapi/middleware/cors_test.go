package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/middleware"
)

func corsRouter(origins ...string) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)

	called := false
	r := gin.New()
	r.Use(middleware.CORS(origins))
	r.GET("/api/links", func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})
	r.OPTIONS("/api/links", func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	return r, &called
}

func preflight(origin, method string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", method)

	return req
}

func TestCORS_AllowsListedOrigin(t *testing.T) {
	r, called := corsRouter("http://localhost:3000/")

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", rec.Header().Get("Vary"))
	require.Equal(t, "Location, X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORS_UnlistedOriginGetsNoHeaders(t *testing.T) {
	r, called := corsRouter("http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		method     string
		wantStatus int
	}{
		{"allowed delete", "http://localhost:3000", http.MethodDelete, http.StatusNoContent},
		{"allowed post lower case", "http://localhost:3000", "post", http.StatusNoContent},
		{"no such route method", "http://localhost:3000", http.MethodPut, http.StatusForbidden},
		{"unlisted origin", "http://evil.example", http.MethodGet, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, called := corsRouter("http://localhost:3000")

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, preflight(tt.origin, tt.method))

			require.Equal(t, tt.wantStatus, rec.Code)
			require.False(t, *called)

			if tt.wantStatus == http.StatusNoContent {
				require.Equal(t, "GET,POST,DELETE,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
				require.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
			} else {
				require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORS_PlainOptionsPassesThrough(t *testing.T) {
	r, called := corsRouter("http://localhost:3000")

	req := httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.True(t, *called)
}

func TestCORS_Wildcard(t *testing.T) {
	r, _ := corsRouter("https://a.example", "*")

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	req.Header.Set("Origin", "https://anywhere.example/")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, rec.Header().Get("Vary"))
}
