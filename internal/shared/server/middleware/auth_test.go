package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/shared/auth"
)

func newTestSigner(t *testing.T) *auth.Signer {
	t.Helper()
	s, err := auth.NewSigner("test-secret", time.Hour, "dev")
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(newTestSigner(t)))
	router.OPTIONS("/api/history", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/history", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(newTestSigner(t), "/api/auth/"))
	router.GET("/api/history", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected public path to pass, got %d", resp.Code)
	}
}

func TestAuthStoresSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := newTestSigner(t)
	token, err := signer.Sign("user-42", "u@example.com", "", "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	router := gin.New()
	router.Use(Auth(signer))
	var gotUser, gotEmail string
	router.GET("/api/history", func(c *gin.Context) {
		gotUser = UserIDFromContext(c)
		gotEmail = UserEmailFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotUser != "user-42" || gotEmail != "u@example.com" {
		t.Fatalf("unexpected identity user=%q email=%q", gotUser, gotEmail)
	}
}
