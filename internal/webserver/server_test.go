package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kalaicenter/kalaiweb/config"
	"github.com/kalaicenter/kalaiweb/internal/apiclient"
	"github.com/kalaicenter/kalaiweb/internal/domain"
	"github.com/kalaicenter/kalaiweb/internal/probe"
)

// fakeUpstream fakes the remote catalog API behind the web frontend.
type fakeUpstream struct {
	mux         *http.ServeMux
	deleteCalls int
	revoked     bool
}

func newFakeUpstream() *fakeUpstream {
	f := &fakeUpstream{mux: http.NewServeMux()}

	products := []domain.Product{
		{ID: 1, Name: "Crema Facial", Description: "Hidratante", Price: 12500, Stock: 5, Category: "Facial", IsActive: true},
		{ID: 2, Name: "Aceite Corporal", Description: "Relajante", Price: 8000, Stock: 2, Category: "Corporal", IsActive: true},
	}
	treatments := []domain.Treatment{
		{ID: "t1", Name: "Hydra Facial", Description: "Limpieza profunda", Price: 45, Currency: "USD", Category: "Facial", IsActive: true},
	}

	f.mux.HandleFunc("/api/public/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(products)
	})
	f.mux.HandleFunc("/api/public/categories", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]string{"categories": {"Facial", "Corporal"}})
	})
	f.mux.HandleFunc("/api/public/treatments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(treatments)
	})
	f.mux.HandleFunc("/api/public/treatments/categories", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]string{"categories": {"Facial"}})
	})
	f.mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var creds domain.AdminLogin
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "admin" || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.AdminToken{AccessToken: "tok-1", TokenType: "bearer"})
	})
	requireToken := func(w http.ResponseWriter, r *http.Request) bool {
		if f.revoked || r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}
	f.mux.HandleFunc("/api/admin/products", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode(products)
	})
	f.mux.HandleFunc("/api/admin/products/", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		if r.Method == http.MethodDelete {
			f.deleteCalls++
		}
		json.NewEncoder(w).Encode(products[0])
	})
	f.mux.HandleFunc("/api/admin/treatments", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode(treatments)
	})

	return f
}

func newTestServer(t *testing.T) (*Server, *fakeUpstream, func()) {
	t.Helper()
	upstream := newFakeUpstream()
	srv := httptest.NewServer(upstream.mux)

	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.API.BaseURL = srv.URL

	api := apiclient.New(srv.URL, 5*time.Second)
	return NewServer(cfg, api, probe.New(api)), upstream, srv.Close
}

func TestAdminPagesRedirectWhenUnauthenticated(t *testing.T) {
	server, _, closeUpstream := newTestServer(t)
	defer closeUpstream()

	for _, path := range []string{"/admin/dashboard", "/admin/products/new", "/admin/treatments/new"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.Echo().ServeHTTP(rec, req)

		if rec.Code != http.StatusFound {
			t.Errorf("%s: expected 302, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/admin" {
			t.Errorf("%s: expected redirect to /admin, got %q", path, loc)
		}
	}
}

func TestLoginPageServedWithoutSession(t *testing.T) {
	server, _, closeUpstream := newTestServer(t)
	defer closeUpstream()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	// the login page itself must stay outside the auth gate, or no
	// one could ever sign in
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for the login page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Iniciar Sesión") {
		t.Error("login form must be rendered")
	}
}

func login(t *testing.T, server *Server) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("login: expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/dashboard" {
		t.Fatalf("login: expected redirect to dashboard, got %q", loc)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login: expected a session cookie")
	}
	return cookies
}

func TestLoginAndDashboard(t *testing.T) {
	server, _, closeUpstream := newTestServer(t)
	defer closeUpstream()

	cookies := login(t, server)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard?tab=products", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Crema Facial") {
		t.Error("dashboard must list loaded products")
	}
}

func TestLoginRejectedFlashesError(t *testing.T) {
	server, _, closeUpstream := newTestServer(t)
	defer closeUpstream()

	form := url.Values{"username": {"admin"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("rejected login must return to the login page, got %q", loc)
	}
}

func TestDeleteWithoutConfirmationIssuesNoCall(t *testing.T) {
	server, upstream, closeUpstream := newTestServer(t)
	defer closeUpstream()

	cookies := login(t, server)

	// no confirm=yes field
	req := httptest.NewRequest(http.MethodPost, "/admin/products/1/delete", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if upstream.deleteCalls != 0 {
		t.Errorf("declined delete must not reach the API, got %d calls", upstream.deleteCalls)
	}
}

func TestDeleteConfirmed(t *testing.T) {
	server, upstream, closeUpstream := newTestServer(t)
	defer closeUpstream()

	cookies := login(t, server)

	form := url.Values{"confirm": {"yes"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/products/1/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if upstream.deleteCalls != 1 {
		t.Errorf("expected one delete call, got %d", upstream.deleteCalls)
	}
}

func TestProductsPageAppliesFilter(t *testing.T) {
	server, _, closeUpstream := newTestServer(t)
	defer closeUpstream()

	req := httptest.NewRequest(http.MethodGet, "/productos?q=crema", nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Crema Facial") {
		t.Error("matching product must be rendered")
	}
	if strings.Contains(body, "Aceite Corporal") {
		t.Error("non-matching product must be filtered out")
	}
}

func TestProductsPageCategoryFilter(t *testing.T) {
	server, _, closeUpstream := newTestServer(t)
	defer closeUpstream()

	req := httptest.NewRequest(http.MethodGet, "/productos?category=Corporal", nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "Aceite Corporal") {
		t.Error("category match must be rendered")
	}
	if strings.Contains(body, "Crema Facial") {
		t.Error("other categories must be filtered out")
	}
}

func TestHealthz(t *testing.T) {
	server, _, closeUpstream := newTestServer(t)
	defer closeUpstream()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("healthz must return JSON: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("unexpected healthz payload: %v", payload)
	}
}

func TestRevokedTokenForcesLogout(t *testing.T) {
	server, upstream, closeUpstream := newTestServer(t)
	defer closeUpstream()

	cookies := login(t, server)
	upstream.revoked = true

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("401 upstream must force a redirect to /admin, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	refreshed := rec.Result().Cookies()
	if len(refreshed) == 0 {
		t.Fatal("forced logout must rewrite the session cookie")
	}

	// the notice must survive the redirect and render on the login page
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range refreshed {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected the login page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Tu sesión expiró") {
		t.Error("session-expired notice must render after the forced logout")
	}

	// and the back-office stays gated with the cleared session
	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, c := range refreshed {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect for the cleared session, got %d", rec.Code)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	server, _, closeUpstream := newTestServer(t)
	defer closeUpstream()

	cookies := login(t, server)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("logout must redirect to /admin, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	// the dashboard must redirect again with the expired cookie
	expired := rec.Result().Cookies()
	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, c := range expired {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect after logout, got %d", rec.Code)
	}
}
