package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/auth"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.Verifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	verifier, err := auth.NewVerifier("middleware-test-secret", "test", time.Hour, false)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	router := gin.New()
	router.Use(Auth(verifier))
	router.GET("/api/resumes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c)})
	})
	router.OPTIONS("/api/resumes", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router, verifier
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthMissingToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assertUnauthorized(t, resp, "Access denied. No token provided.")
}

func TestAuthInvalidToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assertUnauthorized(t, resp, "Invalid or expired token")
}

func TestAuthValidTokenSetsUser(t *testing.T) {
	router, verifier := newAuthRouter(t)
	token, err := verifier.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["userId"] != "user-42" {
		t.Fatalf("unexpected userId: %q", body["userId"])
	}
}

func assertUnauthorized(t *testing.T, resp *httptest.ResponseRecorder, message string) {
	t.Helper()
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Fatalf("expected success=false")
	}
	if body.Message != message {
		t.Fatalf("expected message %q, got %q", message, body.Message)
	}
}
