package httpapi_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpapi "github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi"
	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/stack"
	"github.com/ThurpatiNainesh/tinylink/internal/adapters/sqlite"
	"github.com/ThurpatiNainesh/tinylink/internal/app/links"
	"github.com/ThurpatiNainesh/tinylink/internal/domain"
	"github.com/ThurpatiNainesh/tinylink/internal/testing/dbtest"
	testhttp "github.com/ThurpatiNainesh/tinylink/internal/testing/httptest"
)

const (
	baseURL       = "http://sho.rt"
	apiLinksPath  = "/api/links"
	testVersion   = "1.0"
	requestBudget = time.Second
)

func newRouter(t *testing.T, uc links.UseCase) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	r := httpapi.NewEngine(
		stack.RequestID(),
		stack.Recovery(nil),
		stack.RequestTimeout(requestBudget),
	)
	httpapi.RegisterRoutes(r, httpapi.RouterDeps{
		Links:     uc,
		BaseURL:   baseURL,
		Version:   testVersion,
		StartedAt: time.Now().Add(-5 * time.Second),
	})

	return r
}

func newSQLiteRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db := dbtest.OpenSQLite(t)

	return newRouter(t, links.New(sqlite.NewRepo(db), nil))
}

func get(r http.Handler, path string) *http.Response {
	return testhttp.Serve(r, httptest.NewRequest(http.MethodGet, path, nil))
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	return testhttp.DecodeJSON[map[string]any](t, resp.Body)
}

func createLink(t *testing.T, r http.Handler, targetURL, customCode string) map[string]any {
	t.Helper()

	body := map[string]any{"targetUrl": targetURL}
	if customCode != "" {
		body["customCode"] = customCode
	}

	resp := testhttp.DoJSON(t, r, http.MethodPost, apiLinksPath, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return decodeMap(t, resp)
}

func TestAPI_EndToEnd(t *testing.T) {
	r := newSQLiteRouter(t)

	resp := testhttp.DoJSON(t, r, http.MethodPost, apiLinksPath, map[string]any{"targetUrl": "example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeMap(t, resp)
	code, _ := created["code"].(string)
	require.Len(t, code, 6)
	require.Equal(t, "https://example.com", created["targetUrl"])
	require.Equal(t, baseURL+"/"+code, created["shortUrl"])
	require.NotEmpty(t, created["createdAt"])
	require.Equal(t, apiLinksPath+"/"+code, resp.Header.Get("Location"))

	resp = get(r, "/"+code)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "https://example.com", resp.Header.Get("Location"))

	resp = get(r, apiLinksPath+"/"+code)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decodeMap(t, resp)
	require.Equal(t, code, got["code"])
	require.EqualValues(t, 1, got["totalClicks"])
	require.NotNil(t, got["lastClickedAt"])

	resp = testhttp.DoJSON(t, r, http.MethodDelete, apiLinksPath+"/"+code, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	deleted := decodeMap(t, resp)
	require.Equal(t, true, deleted["success"])
	require.Equal(t, "Link deleted successfully", deleted["message"])
	require.Equal(t, code, deleted["code"])

	resp = get(r, "/"+code)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp = get(r, apiLinksPath+"/"+code)
	testhttp.RequireProblem(t, resp, http.StatusNotFound, "about:blank")
}

func TestAPI_GetFreshLink(t *testing.T) {
	r := newSQLiteRouter(t)
	createLink(t, r, "https://go.dev", "godev")

	got := decodeMap(t, get(r, apiLinksPath+"/godev"))
	require.EqualValues(t, 0, got["totalClicks"])
	require.Nil(t, got["lastClickedAt"])
	require.Equal(t, "https://go.dev", got["targetUrl"])
}

func TestAPI_CreateCustomCode(t *testing.T) {
	r := newSQLiteRouter(t)

	created := createLink(t, r, "https://go.dev/doc", " Docs ")
	require.Equal(t, "docs", created["code"])
	require.Equal(t, baseURL+"/docs", created["shortUrl"])

	resp := testhttp.DoJSON(t, r, http.MethodPost, apiLinksPath, map[string]any{
		"targetUrl":  "https://example.com",
		"customCode": "DOCS",
	})
	p := testhttp.RequireProblem(t, resp, http.StatusConflict, "conflict")
	require.Equal(t, "This code is already in use. Please try a different one.", p.Detail)

	got := decodeMap(t, get(r, apiLinksPath+"/docs"))
	require.Equal(t, "https://go.dev/doc", got["targetUrl"])
}

func TestAPI_CreateRejectsInvalidInput(t *testing.T) {
	r := newSQLiteRouter(t)

	tests := []struct {
		name       string
		body       any
		wantType   string
		wantDetail string
	}{
		{"missing url", map[string]any{}, "validation_error", "URL is required"},
		{"blank url", map[string]any{"targetUrl": "   "}, "validation_error", "URL is required"},
		{"bad url", map[string]any{"targetUrl": "not a url"}, "validation_error", "Please enter a valid URL (e.g., https://example.com)"},
		{"other scheme", map[string]any{"targetUrl": "ftp://example.com"}, "validation_error", "Please enter a valid URL (e.g., https://example.com)"},
		{"short code", map[string]any{"targetUrl": "example.com", "customCode": "ab"}, "validation_error", "Code must be at least 3 characters"},
		{"bad code", map[string]any{"targetUrl": "example.com", "customCode": "a/b/c"}, "validation_error", "Code can only contain letters, numbers, hyphens, and underscores"},
		{"unknown field", map[string]any{"targetUrl": "example.com", "url": "x"}, "invalid_json", "invalid json"},
		{"wrong type", map[string]any{"targetUrl": 42}, "invalid_json", "invalid json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testhttp.DoJSON(t, r, http.MethodPost, apiLinksPath, tt.body)
			p := testhttp.RequireProblem(t, resp, http.StatusBadRequest, tt.wantType)
			require.Equal(t, tt.wantDetail, p.Detail)
		})
	}

	got := decodeMap(t, get(r, apiLinksPath))
	require.Empty(t, got["links"])
}

func TestAPI_CreateRejectsTrailingData(t *testing.T) {
	r := newSQLiteRouter(t)

	req := httptest.NewRequest(http.MethodPost, apiLinksPath, strings.NewReader(`{"targetUrl":"example.com"} {}`))
	req.Header.Set("Content-Type", "application/json")

	testhttp.RequireProblem(t, testhttp.Serve(r, req), http.StatusBadRequest, "invalid_json")
}

func TestAPI_ListNewestFirstWithSearch(t *testing.T) {
	r := newSQLiteRouter(t)

	createLink(t, r, "https://github.com/golang/go", "gh")
	createLink(t, r, "https://go.dev", "godev")
	createLink(t, r, "https://example.com", "hubspot")

	type listResp struct {
		Links []struct {
			Code        string `json:"code"`
			TargetURL   string `json:"targetUrl"`
			TotalClicks int64  `json:"totalClicks"`
		} `json:"links"`
	}

	all := testhttp.DecodeJSON[listResp](t, get(r, apiLinksPath).Body)
	require.Len(t, all.Links, 3)
	require.Equal(t, "hubspot", all.Links[0].Code)
	require.Equal(t, "gh", all.Links[2].Code)

	hub := testhttp.DecodeJSON[listResp](t, get(r, apiLinksPath+"?search=HUB").Body)
	require.Len(t, hub.Links, 2)
	require.Equal(t, "hubspot", hub.Links[0].Code)
	require.Equal(t, "gh", hub.Links[1].Code)

	resp := get(r, apiLinksPath+"?search=nothing-matches")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"links":[]}`, string(raw))
}

func TestAPI_RedirectCountsEveryVisit(t *testing.T) {
	r := newSQLiteRouter(t)
	createLink(t, r, "https://example.com/landing?utm=1", "promo")

	for i := 0; i < 3; i++ {
		resp := get(r, "/promo")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "https://example.com/landing?utm=1", resp.Header.Get("Location"))
		require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	}

	got := decodeMap(t, get(r, apiLinksPath+"/promo"))
	require.EqualValues(t, 3, got["totalClicks"])
}

func TestAPI_RedirectUnknownAndMalformed(t *testing.T) {
	r := newSQLiteRouter(t)

	for _, path := range []string{"/missing", "/favicon.ico", "/ab"} {
		resp := get(r, path)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		require.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	}
}

func TestAPI_DeleteUnknown(t *testing.T) {
	r := newSQLiteRouter(t)

	resp := testhttp.DoJSON(t, r, http.MethodDelete, apiLinksPath+"/missing", nil)
	p := testhttp.RequireProblem(t, resp, http.StatusNotFound, "about:blank")
	require.Equal(t, "Link not found", p.Detail)
}

func TestAPI_NoRoute(t *testing.T) {
	r := newSQLiteRouter(t)

	testhttp.RequireProblem(t, get(r, "/api/links/a/b"), http.StatusNotFound, "about:blank")
}

func TestAPI_Health(t *testing.T) {
	db := dbtest.OpenSQLite(t)
	r := newRouter(t, links.New(sqlite.NewRepo(db), nil))

	resp := get(r, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decodeMap(t, resp)
	require.Equal(t, true, got["ok"])
	require.Equal(t, testVersion, got["version"])
	require.Equal(t, "connected", got["database"])
	require.GreaterOrEqual(t, got["uptime"], float64(5))

	require.NoError(t, db.Close())

	resp = get(r, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	got = decodeMap(t, resp)
	require.Equal(t, false, got["ok"])
	require.Equal(t, "disconnected", got["database"])
}

// failingUseCase fails every call with err.
type failingUseCase struct {
	err error
}

func (f failingUseCase) Create(context.Context, string, string) (domain.Link, error) {
	return domain.Link{}, f.err
}

func (f failingUseCase) Get(context.Context, string) (domain.Link, error) {
	return domain.Link{}, f.err
}

func (f failingUseCase) List(context.Context, string) ([]domain.Link, error) {
	return nil, f.err
}

func (f failingUseCase) Delete(context.Context, string) error { return f.err }

func (f failingUseCase) Visit(context.Context, string) (domain.Link, error) {
	return domain.Link{}, f.err
}

func (f failingUseCase) Ping(context.Context) error { return f.err }

func TestAPI_StoreFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"unavailable", fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, errors.New("connection refused")), http.StatusServiceUnavailable, "unavailable"},
		{"timeout", fmt.Errorf("sqlite: list links: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "timeout"},
		{"exhausted", fmt.Errorf("links create: %w", domain.ErrAllocationExhausted), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(t, failingUseCase{err: tt.err})

			testhttp.RequireProblem(t, get(r, apiLinksPath), tt.wantStatus, tt.wantType)

			resp := testhttp.DoJSON(t, r, http.MethodPost, apiLinksPath, map[string]any{"targetUrl": "example.com"})
			testhttp.RequireProblem(t, resp, tt.wantStatus, tt.wantType)

			testhttp.RequireProblem(t, get(r, "/abcdef"), tt.wantStatus, tt.wantType)
		})
	}
}

func TestAPI_CreateRejectsRouteNames(t *testing.T) {
	r := newSQLiteRouter(t)

	for _, code := range []string{"ping", "healthz", "api", "PING"} {
		t.Run(code, func(t *testing.T) {
			resp := testhttp.DoJSON(t, r, http.MethodPost, apiLinksPath, map[string]any{
				"targetUrl":  "https://example.com",
				"customCode": code,
			})
			p := testhttp.RequireProblem(t, resp, http.StatusBadRequest, "validation_error")
			require.Equal(t, "This code is reserved. Please choose a different one.", p.Detail)
		})
	}

	resp := get(r, "/ping")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Header.Get("Location"))
}

// stalledClickRepo never finishes an increment before its deadline.
type stalledClickRepo struct {
	links.Repo
}

func (stalledClickRepo) IncrementClick(ctx context.Context, _ string) (domain.Link, error) {
	<-ctx.Done()

	return domain.Link{}, ctx.Err()
}

func TestAPI_RedirectSurvivesStalledClickUpdate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := stalledClickRepo{Repo: sqlite.NewRepo(dbtest.OpenSQLite(t))}
	svc := links.New(repo, nil)

	_, err := svc.Create(context.Background(), "https://example.com/slow", "slow")
	require.NoError(t, err)

	r := httpapi.NewEngine(stack.RequestTimeout(requestBudget))
	httpapi.RegisterRoutes(r, httpapi.RouterDeps{
		Links:        svc,
		BaseURL:      baseURL,
		VisitTimeout: 20 * time.Millisecond,
	})

	resp := get(r, "/slow")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "https://example.com/slow", resp.Header.Get("Location"))
}
