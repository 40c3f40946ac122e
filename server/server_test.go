package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oarkflow/logintheme/manage"
	"github.com/oarkflow/logintheme/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := NewConfig()
	mc, err := cfg.ManagerConfig()
	if err != nil {
		t.Fatalf("manager config: %v", err)
	}
	manager := manage.NewDefaultManager(mc, nil)
	manager.Start(context.Background())

	contexts := store.NewMemoryStore()
	if err := store.NewFixtures(cfg.RealmURL).Seed(context.Background(), contexts); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewServer(cfg, manager, contexts, nil)
}

func do(t *testing.T, srv *Server, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, string(body)
}

func errorOf(t *testing.T, body string) string {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		t.Fatalf("error body %q: %v", body, err)
	}
	s, _ := data["error"].(string)
	return s
}

const loginContext = `{
	"pageId": "login.ftl",
	"realm": {"displayName": "Demo", "password": true},
	"url": {"loginAction": "/login-actions/authenticate"},
	"auth": {},
	"locale": {"currentLanguageTag": "en"}
}`

func TestRenderRequest(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(loginContext))
	req.Header.Set("Content-Type", "application/json")

	resp, body := do(t, srv, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("content type %s", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(body, `id="kc-form-login"`) || !strings.Contains(body, `<html lang="en"`) {
		t.Fatal("login page not rendered")
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("request id not set")
	}
}

func TestRenderRequestHonoursLocaleCookie(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(loginContext))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: srv.Config.LocaleCookie, Value: "sr"})

	_, body := do(t, srv, req)
	if !strings.Contains(body, `<html lang="sr"`) {
		t.Fatal("locale cookie ignored")
	}
}

func TestRenderRequestErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		error  string
	}{
		{"empty", "", http.StatusBadRequest, "missing_context"},
		{"garbage", "{", http.StatusBadRequest, "invalid_request"},
		{"no realm", `{"pageId": "login.ftl"}`, http.StatusUnprocessableEntity, "malformed_context"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, body := do(t, srv, req)
			if resp.StatusCode != tt.status {
				t.Fatalf("status %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			if got := errorOf(t, body); got != tt.error {
				t.Fatalf("error %q, want %q", got, tt.error)
			}
		})
	}
}

func TestPreviewRequest(t *testing.T) {
	srv := newTestServer(t)
	for _, target := range []string{
		"/preview/login.ftl",
		"/preview/login.ftl?fixture=social",
		"/preview/register.ftl?fixture=errors-sr",
		"/preview/info.ftl",
	} {
		resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, target, nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d: %s", target, resp.StatusCode, body)
		}
		if !strings.Contains(body, "<html") {
			t.Fatalf("%s: no page", target)
		}
	}

	resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/preview/login.ftl?fixture=nope", nil))
	if resp.StatusCode != http.StatusNotFound || errorOf(t, body) != "fixture_not_found" {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
}

func TestPreviewCache(t *testing.T) {
	srv := newTestServer(t)
	_, first := do(t, srv, httptest.NewRequest(http.MethodGet, "/preview/login.ftl", nil))
	if _, ok := srv.previews.Get("login.ftl|default|"); !ok {
		t.Fatal("preview not cached")
	}
	_, second := do(t, srv, httptest.NewRequest(http.MethodGet, "/preview/login.ftl", nil))
	if first != second {
		t.Fatal("cached preview differs")
	}

	_, metrics := do(t, srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(metrics, "logintheme_preview_cache_hits_total 1") {
		t.Fatal("cache hit not counted")
	}
	if !strings.Contains(metrics, `logintheme_renders_total{outcome="ok",page="login.ftl"} 1`) {
		t.Fatal("render not counted once")
	}
}

func TestFixturesRequest(t *testing.T) {
	srv := newTestServer(t)
	_, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/preview/register.ftl/fixtures", nil))
	var data struct {
		Fixtures []string `json:"fixtures"`
	}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	if strings.Join(data.Fixtures, ",") != "default,errors-sr,recaptcha-visible" {
		t.Fatalf("fixtures = %v", data.Fixtures)
	}
}

func TestLocaleRequest(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/locale/sr-RS", nil)
	req.Header.Set("Referer", "http://localhost:8080/preview/login.ftl?fixture=social")

	resp, _ := do(t, srv, req)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/preview/login.ftl?fixture=social" {
		t.Fatalf("location %s", loc)
	}
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == srv.Config.LocaleCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != "sr" {
		t.Fatalf("cookie = %+v", cookie)
	}

	resp, _ = do(t, srv, httptest.NewRequest(http.MethodGet, "/locale/en", nil))
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("no referer: status %d", resp.StatusCode)
	}
}

func TestResourcesRequest(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, srv, httptest.NewRequest(http.MethodGet, "/resources/css/main.css", nil))
	if resp.StatusCode != http.StatusOK || body == "" {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := do(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := do(t, srv, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestPageLabel(t *testing.T) {
	for in, want := range map[string]string{
		"login.ftl":    "login.ftl",
		"register.ftl": "register.ftl",
		"info.ftl":     "default",
		"":             "default",
	} {
		if got := pageLabel(in); got != want {
			t.Errorf("pageLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
