package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"resume-optimizer/internal/shared/server/middleware"
)

type tokenTable struct{}

func (tokenTable) Issue(userID string) (string, error) { return "tok:" + userID, nil }

func (tokenTable) Verify(token string) (string, error) {
	if id, ok := strings.CutPrefix(token, "tok:"); ok && id != "" {
		return id, nil
	}
	return "", errors.New("invalid token")
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo(), tokenTable{})
	svc.HashCost = bcrypt.MinCost
	h := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api")
	h.RegisterPublicRoutes(api)
	h.RegisterRoutes(api.Group("", middleware.Auth(tokenTable{})))
	return router
}

type envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    AuthResult `json:"data"`
}

func post(t *testing.T, router *gin.Engine, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var env envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", resp.Body.String(), err)
	}
	return resp, env
}

func TestRegisterLoginProfile(t *testing.T) {
	router := newTestRouter()

	resp, env := post(t, router, "/api/auth/register", "", `{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	if resp.Code != http.StatusCreated || !env.Success {
		t.Fatalf("register: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if env.Data.Token == "" || env.Data.User.Email != "alice@example.com" {
		t.Fatalf("unexpected register payload: %+v", env.Data)
	}
	if strings.Contains(resp.Body.String(), "password") {
		t.Fatalf("password leaked: %s", resp.Body.String())
	}

	resp, env = post(t, router, "/api/auth/register", "", `{"name":"Again","email":"ALICE@example.com","password":"secret1"}`)
	if resp.Code != http.StatusBadRequest || env.Message != "User already exists" {
		t.Fatalf("duplicate: got %d %q", resp.Code, env.Message)
	}

	resp, env = post(t, router, "/api/auth/login", "", `{"email":"alice@example.com","password":"nope123"}`)
	if resp.Code != http.StatusUnauthorized || env.Message != "Invalid credentials" {
		t.Fatalf("bad login: got %d %q", resp.Code, env.Message)
	}

	resp, env = post(t, router, "/api/auth/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	token := env.Data.Token

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	profileResp := httptest.NewRecorder()
	router.ServeHTTP(profileResp, req)
	if profileResp.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", profileResp.Code)
	}
	var profile struct {
		Data Profile `json:"data"`
	}
	if err := json.Unmarshal(profileResp.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Data.Name != "Alice" {
		t.Fatalf("unexpected profile: %+v", profile.Data)
	}

	resp, env = post(t, router, "/api/auth/logout", token, `{}`)
	if resp.Code != http.StatusOK || env.Message != "Logged out successfully" {
		t.Fatalf("logout: got %d %q", resp.Code, env.Message)
	}
}

func TestRegisterValidationMessage(t *testing.T) {
	router := newTestRouter()
	resp, env := post(t, router, "/api/auth/register", "", `{"name":"Alice","email":"alice@example.com","password":"123"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if env.Message != "Password must be at least 6 characters long" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestProfileRemovedUser(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer tok:ghost")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
