package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/middleware"
)

func buildOpsRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.OpsKey(key))
	r.GET("/ops", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	return r
}

func TestOpsKey_RejectsMissingKey(t *testing.T) {
	r := buildOpsRouter("secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ops", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestOpsKey_AcceptsMatchingKey(t *testing.T) {
	r := buildOpsRouter("secret")
	req := httptest.NewRequest(http.MethodGet, "/ops", nil)
	req.Header.Set("X-Ops-Key", "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestOpsKey_EmptyKeyDisablesCheck(t *testing.T) {
	r := buildOpsRouter("")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ops", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
