package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/bootstrap"
	"outreach-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:              "0",
		CORSAllowOrigin:   []string{"http://localhost:5173"},
		LocalStoreDir:     t.TempDir(),
		Env:               "dev",
		ObjectStoreType:   "local",
		LLMProvider:       "none",
		EmbeddingProvider: "hash",
		JWTSecret:         "test-secret",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/health", "/api/health", "/metrics"} {
		if resp := call(t, app.Router, http.MethodGet, path, "", nil); resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestPipelineRequiresToken(t *testing.T) {
	app := newTestApp(t)
	resp := call(t, app.Router, http.MethodPost, "/api/jobs/extract", "", map[string]string{"url": "https://acme.com"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestOutreachFlowOffline(t *testing.T) {
	careers := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>Careers</h1><p>DevOps Engineer</p></body></html>`))
	}))
	defer careers.Close()

	app := newTestApp(t)
	r := app.Router

	signup := call(t, r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "ada@example.com", "password": "pw", "name": "Ada",
	})
	if signup.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", signup.Code, signup.Body.String())
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(signup.Body).Decode(&auth); err != nil {
		t.Fatalf("decode signup: %v", err)
	}

	extract := call(t, r, http.MethodPost, "/api/jobs/extract", auth.Token, map[string]string{"url": careers.URL + "/careers"})
	if extract.Code != http.StatusOK {
		t.Fatalf("extract: expected 200, got %d", extract.Code)
	}
	var extracted struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.NewDecoder(extract.Body).Decode(&extracted); err != nil {
		t.Fatalf("decode extract: %v", err)
	}
	// No model is configured, so the resolved company gets the mock catalog.
	if len(extracted.Jobs) != 4 {
		t.Fatalf("expected 4 jobs, got %d", len(extracted.Jobs))
	}

	generate := call(t, r, http.MethodPost, "/api/emails/generate", auth.Token, map[string]any{"job": extracted.Jobs[1]})
	if generate.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d", generate.Code)
	}
	var email struct {
		ID             string   `json:"id"`
		Subject        string   `json:"subject"`
		PortfolioLinks []string `json:"portfolioLinks"`
	}
	if err := json.NewDecoder(generate.Body).Decode(&email); err != nil {
		t.Fatalf("decode generate: %v", err)
	}
	if email.Subject != "Solve Your DevOps Engineer Hiring Challenge - Atliq Can Help" {
		t.Fatalf("unexpected subject %q", email.Subject)
	}
	if len(email.PortfolioLinks) == 0 || len(email.PortfolioLinks) > 3 {
		t.Fatalf("expected 1-3 portfolio links, got %v", email.PortfolioLinks)
	}

	list := call(t, r, http.MethodGet, "/api/history", auth.Token, nil)
	if !strings.Contains(list.Body.String(), email.ID) {
		t.Fatalf("history missing generated email: %s", list.Body.String())
	}

	export := call(t, r, http.MethodGet, "/api/history/"+email.ID+"/export", auth.Token, nil)
	if export.Code != http.StatusOK || !strings.Contains(export.Body.String(), "Target Job: DevOps Engineer") {
		t.Fatalf("unexpected export %d: %s", export.Code, export.Body.String())
	}

	if del := call(t, r, http.MethodDelete, "/api/history/"+email.ID, auth.Token, nil); del.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", del.Code)
	}
}
