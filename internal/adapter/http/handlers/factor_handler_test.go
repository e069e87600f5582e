package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orcamentos/internal/adapter/http/handlers/mocks"
	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestFactorHandler_CreateFactor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("sub-item without description", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFactorUseCase(ctrl)
		h := NewFactorHandler(uc)

		r := gin.New()
		r.POST("/v1/factors", h.CreateFactor)

		req := httptest.NewRequest(http.MethodPost, "/v1/factors", bytes.NewBufferString(`{"description":"Relevo","sub_items":[{"value":10}]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIFactorUseCase(ctrl)
		h := NewFactorHandler(uc)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.FactorInput) (entities.Factor, error) {
				if len(in.SubItems) != 2 || !in.SubItems[1].Value.Equal(decimal.RequireFromString("12.5")) {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Factor{ID: "f1", Code: 1, Description: in.Description, SubItems: []entities.FactorSubItem{
					{ID: "f1-subitem-1", Code: 101, Description: "Plano"},
					{ID: "f1-subitem-2", Code: 102, Description: "Montanhoso", Value: decimal.RequireFromString("12.5")},
				}}, nil
			},
		)

		r := gin.New()
		r.POST("/v1/factors", h.CreateFactor)

		body := `{"description":"Relevo","sub_items":[{"description":"Plano","value":0},{"description":"Montanhoso","value":12.5}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/factors", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), `"code":102`) {
			t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
		}
	})
}

func TestFactorHandler_DeleteFactor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIFactorUseCase(ctrl)
	h := NewFactorHandler(uc)
	uc.EXPECT().Delete(gomock.Any(), "missing").Return(usecase.ErrFactorNotFound)

	r := gin.New()
	r.DELETE("/v1/factors/:id", h.DeleteFactor)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/factors/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestFactorHandler_DeleteFactorInUse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIFactorUseCase(ctrl)
	h := NewFactorHandler(uc)
	uc.EXPECT().Delete(gomock.Any(), "factor-1").Return(usecase.ErrFactorInUse)

	r := gin.New()
	r.DELETE("/v1/factors/:id", h.DeleteFactor)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/factors/factor-1", nil))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}
