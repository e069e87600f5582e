package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orcamentos/internal/adapter/http/handlers/mocks"
	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestCatalogHandler_CreateGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockICatalogUseCase(ctrl)
	h := NewCatalogHandler(uc)
	uc.EXPECT().CreateGroup(gomock.Any(), usecase.GroupInput{Code: "PREF", Name: "PREFEITURA"}).Return(entities.ServiceGroup{}, usecase.ErrGroupCodeExists)

	r := gin.New()
	r.POST("/v1/service-groups", h.CreateGroup)

	req := httptest.NewRequest(http.MethodPost, "/v1/service-groups", bytes.NewBufferString(`{"code":"PREF","name":"PREFEITURA"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestCatalogHandler_ListGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockICatalogUseCase(ctrl)
	h := NewCatalogHandler(uc)
	uc.EXPECT().ListGroups(gomock.Any()).Return([]entities.ServiceGroup{{
		ID: "g1", Code: "PREF", Name: "PREFEITURA",
		Services: []entities.Service{{ID: "s1", Code: "1", SubServices: []entities.SubService{{ID: "ss1", Code: "1.1", UnitPrice: decimal.NewFromInt(350)}}}},
	}}, nil)

	r := gin.New()
	r.GET("/v1/service-groups", h.ListGroups)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/service-groups", nil))

	var got []struct {
		Services []struct {
			SubServices []struct {
				UnitPrice      float64  `json:"unit_price"`
				AllowedFactors []string `json:"allowed_factors"`
			} `json:"sub_services"`
		} `json:"services"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	ss := got[0].Services[0].SubServices[0]
	if ss.UnitPrice != 350 || ss.AllowedFactors == nil {
		t.Fatalf("unexpected sub-service: %+v", ss)
	}
}

func TestCatalogHandler_UpdateService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		h := NewCatalogHandler(uc)
		uc.EXPECT().UpdateService(gomock.Any(), "s1", gomock.Any()).Return(entities.Service{}, usecase.ErrNegativePrice)

		r := gin.New()
		r.PUT("/v1/services/:id", h.UpdateService)

		req := httptest.NewRequest(http.MethodPut, "/v1/services/s1", bytes.NewBufferString(`{"group_id":"g1","code":"1","title":"Voo","unit_price":-1}`))
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
		uc := mocks.NewMockICatalogUseCase(ctrl)
		h := NewCatalogHandler(uc)
		uc.EXPECT().UpdateService(gomock.Any(), "s1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, in usecase.ServiceInput) (entities.Service, error) {
				if len(in.SubServices) != 1 || in.SubServices[0].ID != "ss1" || in.SubServices[0].AllowedFactors[0] != "f1" {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Service{ID: id, Code: in.Code}, nil
			},
		)

		r := gin.New()
		r.PUT("/v1/services/:id", h.UpdateService)

		body := `{"group_id":"g1","code":"1","title":"Voo","sub_services":[{"id":"ss1","code":"1.1","description":"Área","unit":"km²","unit_price":350,"allowed_factors":["f1"]}]}`
		req := httptest.NewRequest(http.MethodPut, "/v1/services/s1", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
