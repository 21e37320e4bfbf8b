package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/giveaway-ledger/internal/config"
	"github.com/tbourn/giveaway-ledger/internal/domain"
	"github.com/tbourn/giveaway-ledger/internal/ledger"
)

// nopPersister starts from a fixed snapshot and discards saves.
type nopPersister struct{ snap domain.Snapshot }

func (p nopPersister) Load(context.Context) domain.Snapshot          { return p.snap.Clone() }
func (nopPersister) Save(context.Context, domain.Snapshot) error { return nil }

func newTestLedger(t *testing.T) *ledger.Store {
	t.Helper()
	s := ledger.New(context.Background(), nopPersister{snap: domain.Default()})
	s.AddBonusRole(5, 2, "VIP")
	s.AddParticipant(42, "Ana", "Silva", domain.TicketBreakdown{
		Roles: map[string]domain.RoleGrant{"5": {Quantity: 2, Abbreviation: "VIP"}},
	}, 100)
	return s
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath: "/api/v1",
		RateRPS:     100,
		RateBurst:   10,
		CORS:        config.CORSConfig{AllowedOrigins: nil},
		Security:    config.SecurityConfig{EnableHSTS: false},
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
	}
}

func serve(r *gin.Engine, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestLedger(t), testConfig())

	w := serve(r, http.MethodGet, "/health", map[string]string{"Origin": "http://anywhere.test"})
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	if w.Header().Get("Cache-Control") != "no-store" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing: %#v", w.Header())
	}

	w = serve(r, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	if w = serve(r, http.MethodGet, "/nope", nil); w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}
	if w = serve(r, http.MethodPost, "/api/v1/stats", nil); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /api/v1/stats expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_LedgerEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestLedger(t), testConfig())

	w := serve(r, http.MethodGet, "/api/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET stats = %d", w.Code)
	}
	var st struct {
		TotalParticipants int `json:"total_participants"`
		TotalTickets      int `json:"total_tickets"`
		TicketsByRole     map[string]struct {
			Count        int    `json:"count"`
			Abbreviation string `json:"abbreviation"`
		} `json:"tickets_by_role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if st.TotalParticipants != 1 || st.TotalTickets != 2 || st.TicketsByRole["5"].Abbreviation != "VIP" {
		t.Fatalf("stats = %+v", st)
	}

	for _, path := range []string{
		"/api/v1/participants",
		"/api/v1/participants/42",
		"/api/v1/participants/42/entries",
		"/api/v1/config",
	} {
		if w := serve(r, http.MethodGet, path, nil); w.Code != http.StatusOK {
			t.Fatalf("GET %s = %d body=%s", path, w.Code, w.Body.String())
		}
	}
	if w := serve(r, http.MethodGet, "/api/v1/participants/7", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown participant = %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.APIBasePath = "/api/v2"
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://admin.test"}}
	RegisterRoutes(r, newTestLedger(t), cfg)

	w := serve(r, http.MethodGet, "/api/v2/stats", map[string]string{"Origin": "http://admin.test"})
	if w.Code != http.StatusOK {
		t.Fatalf("GET stats = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://admin.test" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	w = serve(r, http.MethodGet, "/api/v2/stats", map[string]string{"Origin": "http://evil.test"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("disallowed origin expected 403, got %d", w.Code)
	}
}

func TestRegisterRoutes_SwaggerOnlyWhenEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r, newTestLedger(t), testConfig())
	if w := serve(r, http.MethodGet, "/swagger/doc.json", nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger disabled: GET doc.json = %d", w.Code)
	}

	r = gin.New()
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	cfg.APIBasePath = "/admin"
	RegisterRoutes(r, newTestLedger(t), cfg)

	w := serve(r, http.MethodGet, "/swagger/doc.json", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET doc.json = %d body=%s", w.Code, w.Body.String())
	}
	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not JSON: %v", err)
	}
	if doc.BasePath != "/admin" {
		t.Fatalf("basePath = %q", doc.BasePath)
	}
	for _, p := range []string{"/stats", "/participants", "/participants/{id}", "/participants/{id}/entries", "/config"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Fatalf("doc.json missing path %s", p)
		}
	}

	w = serve(r, http.MethodGet, "/swagger/index.html", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "swagger-ui") {
		t.Fatalf("GET index.html = %d", w.Code)
	}
}

func TestRegisterRoutes_GzipAndRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.RateRPS = 0.001
	cfg.RateBurst = 2
	RegisterRoutes(r, newTestLedger(t), cfg)

	w := serve(r, http.MethodGet, "/api/v1/participants", map[string]string{"Accept-Encoding": "gzip"})
	if w.Code != http.StatusOK || w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, code=%d headers=%#v", w.Code, w.Header())
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	serve(r, http.MethodGet, "/health", nil)
	if w := serve(r, http.MethodGet, "/health", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request expected 429, got %d", w.Code)
	}
}

func TestRegisterRoutes_HSTSOnlyOverHTTPS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour}
	RegisterRoutes(r, newTestLedger(t), cfg)

	if got := serve(r, http.MethodGet, "/health", nil).Header().Get("Strict-Transport-Security"); got != "" {
		t.Fatalf("HSTS over plain HTTP: %q", got)
	}
	got := serve(r, http.MethodGet, "/health", map[string]string{"X-Forwarded-Proto": "https"}).Header().Get("Strict-Transport-Security")
	if got != "max-age=3600; includeSubDomains; preload" {
		t.Fatalf("HSTS = %q", got)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := serve(r, http.MethodGet, path, nil)
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}
}
