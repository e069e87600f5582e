package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(&Container{})

	t.Run("ping is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
			t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("private routes need a token", func(t *testing.T) {
		for _, path := range []string{"/v1/orders", "/v1/clients", "/v1/factors", "/v1/services", "/v1/service-groups", "/v1/dashboard", "/v1/users", "/v1/auth/me"} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("%s: expected 401, got %d", path, w.Code)
			}
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/does-not-exist", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
