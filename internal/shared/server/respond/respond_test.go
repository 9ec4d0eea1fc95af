package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestListIncludesCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/items", func(c *gin.Context) {
		List(c, []string{}, 0)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/items", nil))

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body["success"])
	}
	if count, ok := body["count"]; !ok || count != float64(0) {
		t.Fatalf("expected count=0, got %v", body["count"])
	}
}

func TestInternalStackOnlyWhenDebugEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, debug := range []bool{true, false} {
		router := gin.New()
		if debug {
			router.Use(EnableDebug())
		}
		router.GET("/boom", func(c *gin.Context) {
			Internal(c, "Internal Server Error", errors.New("db down"))
		})

		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))
		if resp.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.Code)
		}

		var body Envelope
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Success {
			t.Fatalf("expected success=false")
		}
		if debug && body.Stack == "" {
			t.Fatalf("expected stack with debug enabled")
		}
		if !debug && body.Stack != "" {
			t.Fatalf("expected no stack without debug")
		}
	}
}
