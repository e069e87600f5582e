package handlers

import (
	"errors"
	"net/http"

	request "orcamentos/internal/adapter/http/dto/request"
	response "orcamentos/internal/adapter/http/dto/response"
	"orcamentos/internal/usecase"
	"orcamentos/internal/usecase/interfaces"
	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
)

type FactorHandler struct {
	usecase usecase.IFactorUseCase
}

func NewFactorHandler(uc usecase.IFactorUseCase) *FactorHandler {
	return &FactorHandler{usecase: uc}
}

// CreateFactor godoc
// @Summary      Create a correction factor
// @Tags         factors
// @Accept       json
// @Produce      json
// @Param        factor  body      request.FactorRequest  true  "Factor"
// @Success      201     {object}  response.FactorResponse
// @Security     Bearer
// @Router       /factors [post]
func (h *FactorHandler) CreateFactor(c *gin.Context) {
	var payload request.FactorRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	factor, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapFactorError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromFactor(factor))
}

// UpdateFactor godoc
// @Summary      Replace description and sub-items of a factor
// @Tags         factors
// @Accept       json
// @Produce      json
// @Param        id      path      string                 true  "Factor ID"
// @Param        factor  body      request.FactorRequest  true  "Factor"
// @Success      200     {object}  response.FactorResponse
// @Security     Bearer
// @Router       /factors/{id} [put]
func (h *FactorHandler) UpdateFactor(c *gin.Context) {
	var payload request.FactorRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	factor, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapFactorError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromFactor(factor))
}

// DeleteFactor godoc
// @Summary      Delete a factor
// @Tags         factors
// @Param        id  path  string  true  "Factor ID"
// @Success      204
// @Security     Bearer
// @Router       /factors/{id} [delete]
func (h *FactorHandler) DeleteFactor(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapFactorError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFactor godoc
// @Summary      Get a factor
// @Tags         factors
// @Produce      json
// @Param        id  path      string  true  "Factor ID"
// @Success      200 {object}  response.FactorResponse
// @Security     Bearer
// @Router       /factors/{id} [get]
func (h *FactorHandler) GetFactor(c *gin.Context) {
	factor, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapFactorError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromFactor(factor))
}

// ListFactors godoc
// @Summary      List factors ordered by code
// @Tags         factors
// @Produce      json
// @Success      200 {array}  response.FactorResponse
// @Security     Bearer
// @Router       /factors [get]
func (h *FactorHandler) ListFactors(c *gin.Context) {
	factors, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapFactorError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromFactors(factors))
}

func mapFactorError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidFactorID):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrInvalidFactorDescription):
		return pkg.NewDomainErrorSimple("INVALID_FACTOR_DESCRIPTION", "Descrição do fator é obrigatória", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidFactorSubItem):
		return pkg.NewDomainErrorSimple("INVALID_FACTOR_SUB_ITEM", "Subitem do fator inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrFactorNotFound):
		return pkg.NewDomainErrorSimple("FACTOR_NOT_FOUND", "Fator não encontrado", http.StatusNotFound)
	case errors.Is(err, usecase.ErrFactorInUse):
		return pkg.NewDomainErrorSimple("FACTOR_IN_USE", "Fator associado a clientes não pode ser excluído", http.StatusConflict)
	case errors.Is(err, interfaces.ErrSequenceConflict):
		return pkg.NewDomainError("SEQUENCE_CONFLICT", "Não foi possível gerar o código, tente novamente", err, http.StatusConflict)
	default:
		return internalError(err)
	}
}
