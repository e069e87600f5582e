package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orcamentos/internal/adapter/http/handlers/mocks"
	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc)
		uc.EXPECT().Login(gomock.Any(), "admin@exemplo.com", "errada").Return(usecase.LoginResult{}, usecase.ErrInvalidCredentials)

		r := gin.New()
		r.POST("/v1/auth/login", h.Login)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(`{"email":"admin@exemplo.com","password":"errada"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc)
		uc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.LoginResult{}, usecase.ErrUserInactive)

		r := gin.New()
		r.POST("/v1/auth/login", h.Login)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(`{"email":"a@b.com","password":"secret1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc)
		uc.EXPECT().Login(gomock.Any(), "admin@exemplo.com", "admin123").Return(usecase.LoginResult{
			Token:     "jwt-token",
			ExpiresAt: time.Now().Add(time.Hour),
			User:      entities.User{ID: "admin-1", Email: "admin@exemplo.com", AccessLevel: entities.AccessLevelAdmin},
		}, nil)

		r := gin.New()
		r.POST("/v1/auth/login", h.Login)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(`{"email":"admin@exemplo.com","password":"admin123"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"token":"jwt-token"`) {
			t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
		}
	})
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(nil)
	r := gin.New()
	r.GET("/v1/auth/me", asUser(testAdmin), h.Me)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":"admin-1"`) {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
}
