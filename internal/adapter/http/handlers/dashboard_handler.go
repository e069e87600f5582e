package handlers

import (
	"errors"
	"net/http"

	request "orcamentos/internal/adapter/http/dto/request"
	response "orcamentos/internal/adapter/http/dto/response"
	"orcamentos/internal/usecase"
	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	usecase usecase.IDashboardUseCase
}

func NewDashboardHandler(uc usecase.IDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{usecase: uc}
}

// GetDashboard godoc
// @Summary      Order statistics for a period
// @Tags         dashboard
// @Produce      json
// @Param        start  query     string  false  "First day (YYYY-MM-DD)"
// @Param        end    query     string  false  "Last day (YYYY-MM-DD)"
// @Success      200    {object}  response.DashboardResponse
// @Security     Bearer
// @Router       /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	start, err := request.ParseDate(c.Query("start"))
	if err != nil {
		writeError(c, errInvalidDate)
		return
	}
	end, err := request.ParseDate(c.Query("end"))
	if err != nil {
		writeError(c, errInvalidDate)
		return
	}

	report, err := h.usecase.Report(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, mapDashboardError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDashboard(report))
}

func mapDashboardError(err error) *pkg.AppError {
	if errors.Is(err, usecase.ErrInvalidPeriod) {
		return pkg.NewDomainErrorSimple("INVALID_PERIOD", "A data final deve ser posterior à inicial", http.StatusBadRequest)
	}
	return internalError(err)
}
