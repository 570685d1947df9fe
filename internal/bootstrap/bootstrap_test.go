package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/controllers"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/repositories/memory"
	"github.com/yigit/studentportal/internal/config"
	"github.com/yigit/studentportal/internal/pkg/auth"
)

type testApp struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithLogger(t, zerolog.Nop())
}

func newTestAppWithLogger(t *testing.T, lgr zerolog.Logger) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.Storage.Path = t.TempDir()
	cfg.Session.Secret = "test-secret"

	store, err := memory.NewMockStore()
	if err != nil {
		t.Fatalf("NewMockStore: %v", err)
	}
	backend := &Backend{Name: controllers.BackendMock, Repos: store.Repositories(), Mock: store}

	now := func() time.Time { return time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC) }
	deps, err := BuildDependencies(cfg, backend, now, lgr)
	if err != nil {
		t.Fatalf("BuildDependencies: %v", err)
	}
	router, err := SetupRouter(cfg, deps, lgr)
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}
	return &testApp{router: router, store: store}
}

func (a *testApp) do(method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := a.do(http.MethodPost, "/login", url.Values{"username": {memory.DemoUsername}, "password": {memory.DemoPassword}})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("login: status %d, location %q", rec.Code, rec.Header().Get("Location"))
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func TestGuestRedirects(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "/login"},
		{"/dashboard", "/login"},
		{"/finances", "/login"},
		{"/visa", "/login"},
		{"/documents/download/report.pdf", "/login"},
		{"/profile/settings", "/login"},
		{"/finances/x", "/login"},
		{"/documents/download/a/b", "/login"},
	}
	for _, tt := range tests {
		rec := app.do(http.MethodGet, tt.path, nil)
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != tt.want {
			t.Errorf("GET %s: status %d, location %q, want %q", tt.path, rec.Code, rec.Header().Get("Location"), tt.want)
		}
	}

	if rec := app.do(http.MethodGet, "/visa/", nil); rec.Code != http.StatusMovedPermanently || rec.Header().Get("Location") != "/visa" {
		t.Errorf("GET /visa/: status %d, location %q, want 301 /visa", rec.Code, rec.Header().Get("Location"))
	}
	if rec := app.do(http.MethodGet, "/login", nil); rec.Code != http.StatusOK {
		t.Errorf("login page: status %d", rec.Code)
	}
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/login", url.Values{"username": {"demo"}, "password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Mock client - configure backend credentials") {
		t.Fatalf("expected the mock backend banner, got %s", rec.Body.String())
	}

	rec = app.do(http.MethodPost, "/login", url.Values{"username": {""}, "password": {""}})
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Username is required") {
		t.Fatalf("expected required errors, got %d", rec.Code)
	}
}

func TestFormBindErrorsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	app := newTestAppWithLogger(t, zerolog.New(&buf))

	rec := app.do(http.MethodPost, "/login", url.Values{"username": {""}, "password": {""}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("login: status %d, want 400", rec.Code)
	}
	cookie := app.login(t)

	req := httptest.NewRequest(http.MethodPost, "/support", strings.NewReader("subject=x"))
	req.Header.Set("Content-Type", "multipart/form-data")
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound || !strings.HasPrefix(rec.Header().Get("Location"), "/support?error=") {
		t.Fatalf("support: status %d, location %q", rec.Code, rec.Header().Get("Location"))
	}

	logs := buf.String()
	for _, want := range []string{"Invalid login form payload", "Invalid support form payload"} {
		if !strings.Contains(logs, want) {
			t.Errorf("expected %q in logs, got %s", want, logs)
		}
	}
	if !strings.Contains(logs, `"level":"warn"`) {
		t.Errorf("bind errors should log at warn, got %s", logs)
	}
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	rec := app.do(http.MethodGet, "/dashboard", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"No payments recorded yet", "Complete Residency Registration"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}

	rec = app.do(http.MethodGet, "/login", nil, cookie)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("signed-in login page: status %d, location %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = app.do(http.MethodGet, "/logout", nil, cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /logout: status %d, want 404", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			t.Fatal("GET /logout must not touch the session cookie")
		}
	}

	rec = app.do(http.MethodPost, "/logout", url.Values{}, cookie)
	if rec.Code != http.StatusFound || !strings.HasPrefix(rec.Header().Get("Location"), "/login?ok=") {
		t.Fatalf("logout: status %d, location %q", rec.Code, rec.Header().Get("Location"))
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("logout did not clear the session cookie")
	}
}

func TestTamperedCookieIsDiscarded(t *testing.T) {
	app := newTestApp(t)
	bad := &http.Cookie{Name: auth.CookieName, Value: "not-a-token"}

	rec := app.do(http.MethodGet, "/dashboard", nil, bad)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("status %d, location %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestEmptyStatesForDemoStudent(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t)

	tests := []struct {
		path string
		want string
	}{
		{"/finances?tab=history", "Your payment history will appear here once you make payments."},
		{"/finances?tab=upcoming", "No upcoming payments"},
		{"/documents", "No documents found"},
		{"/services", "No hostels are currently available"},
		{"/visa", "F1234567890"},
	}
	for _, tt := range tests {
		rec := app.do(http.MethodGet, tt.path, nil, cookie)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status %d", tt.path, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("GET %s: missing %q", tt.path, tt.want)
		}
	}
}

func TestPasswordMismatchIssuesNoWrite(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"step":            {"4"},
		"action":          {controllers.ActionSubmit},
		"password":        {"secret1"},
		"confirmPassword": {"secret2"},
	}
	rec := app.do(http.MethodPost, "/register", form)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Passwords do not match") {
		t.Fatal("expected the mismatch error on the form")
	}
	if n := len(app.store.Applications()); n != 0 {
		t.Fatalf("expected no application to be stored, got %d", n)
	}
}

func TestHostelApplicationFlash(t *testing.T) {
	app := newTestApp(t)
	app.store.AddHostel(&models.Hostel{ID: 1, Name: "Maple House", Capacity: 10, Status: models.HostelStatusActive})
	cookie := app.login(t)

	rec := app.do(http.MethodPost, "/services", url.Values{"hostel_id": {"1"}}, cookie)
	location := rec.Header().Get("Location")
	if rec.Code != http.StatusFound || !strings.HasPrefix(location, "/services?ok=") {
		t.Fatalf("first application: status %d, location %q", rec.Code, location)
	}

	rec = app.do(http.MethodPost, "/services", url.Values{"hostel_id": {"1"}}, cookie)
	location = rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/services?error=") {
		t.Fatalf("second application should fail, location %q", location)
	}
}

func TestAPIRequiresSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/dashboard", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error.Code != "AUTH_008" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	cookie := app.login(t)
	rec = app.do(http.MethodGet, "/api/v1/visa", nil, cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "F1234567890") {
		t.Fatalf("visa API: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestHealthAndNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"backend":"mock"`) {
		t.Fatalf("health: %d %s", rec.Code, rec.Body.String())
	}

	if rec := app.do(http.MethodGet, "/no-such-page", nil); rec.Code != http.StatusNotFound {
		t.Errorf("page 404: status %d", rec.Code)
	}
	rec = app.do(http.MethodGet, "/api/v1/no-such-route", nil)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("api 404: %d %s", rec.Code, rec.Body.String())
	}
}
