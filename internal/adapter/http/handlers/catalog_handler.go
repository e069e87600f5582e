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

// CatalogHandler serves service groups and services.
type CatalogHandler struct {
	usecase usecase.ICatalogUseCase
}

func NewCatalogHandler(uc usecase.ICatalogUseCase) *CatalogHandler {
	return &CatalogHandler{usecase: uc}
}

// CreateGroup godoc
// @Summary      Create a service group
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        group  body      request.GroupRequest  true  "Group"
// @Success      201    {object}  response.GroupResponse
// @Security     Bearer
// @Router       /service-groups [post]
func (h *CatalogHandler) CreateGroup(c *gin.Context) {
	var payload request.GroupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	group, err := h.usecase.CreateGroup(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromGroup(group))
}

// UpdateGroup godoc
// @Summary      Update a service group
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id     path      string                      true  "Group ID"
// @Param        group  body      request.UpdateGroupRequest  true  "Changes"
// @Success      200    {object}  response.GroupResponse
// @Security     Bearer
// @Router       /service-groups/{id} [patch]
func (h *CatalogHandler) UpdateGroup(c *gin.Context) {
	var payload request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	group, err := h.usecase.UpdateGroup(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromGroup(group))
}

// DeleteGroup godoc
// @Summary      Delete a service group and soft delete its services
// @Tags         catalog
// @Param        id  path  string  true  "Group ID"
// @Success      204
// @Security     Bearer
// @Router       /service-groups/{id} [delete]
func (h *CatalogHandler) DeleteGroup(c *gin.Context) {
	if err := h.usecase.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGroups godoc
// @Summary      List service groups with their services
// @Tags         catalog
// @Produce      json
// @Success      200 {array}  response.GroupResponse
// @Security     Bearer
// @Router       /service-groups [get]
func (h *CatalogHandler) ListGroups(c *gin.Context) {
	groups, err := h.usecase.ListGroups(c.Request.Context())
	if err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromGroups(groups))
}

// CreateService godoc
// @Summary      Create a service with its sub-services
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        service  body      request.ServiceRequest  true  "Service"
// @Success      201      {object}  response.ServiceResponse
// @Security     Bearer
// @Router       /services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	service, err := h.usecase.CreateService(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromService(service))
}

// UpdateService godoc
// @Summary      Replace a service and its sub-services
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Service ID"
// @Param        service  body      request.ServiceRequest  true  "Service"
// @Success      200      {object}  response.ServiceResponse
// @Security     Bearer
// @Router       /services/{id} [put]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	service, err := h.usecase.UpdateService(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromService(service))
}

// DeleteService godoc
// @Summary      Delete a service (soft)
// @Tags         catalog
// @Param        id  path  string  true  "Service ID"
// @Success      204
// @Security     Bearer
// @Router       /services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.usecase.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAllServices godoc
// @Summary      Delete every service (soft, admin only)
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.DeletedCountResponse
// @Security     Bearer
// @Router       /services [delete]
func (h *CatalogHandler) DeleteAllServices(c *gin.Context) {
	n, err := h.usecase.DeleteAllServices(c.Request.Context())
	if err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.JSON(http.StatusOK, response.DeletedCountResponse{Deleted: n})
}

// GetService godoc
// @Summary      Get a service
// @Tags         catalog
// @Produce      json
// @Param        id  path      string  true  "Service ID"
// @Success      200 {object}  response.ServiceResponse
// @Security     Bearer
// @Router       /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	service, err := h.usecase.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromService(service))
}

// ListServices godoc
// @Summary      List active services
// @Tags         catalog
// @Produce      json
// @Success      200 {array}  response.ServiceResponse
// @Security     Bearer
// @Router       /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.usecase.ListServices(c.Request.Context())
	if err != nil {
		writeError(c, mapCatalogError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServices(services))
}

func mapCatalogError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidGroupID), errors.Is(err, usecase.ErrInvalidServiceID):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrInvalidGroupInput):
		return pkg.NewDomainErrorSimple("INVALID_GROUP", "Código e nome do grupo são obrigatórios", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrGroupCodeExists):
		return pkg.NewDomainErrorSimple("GROUP_CODE_EXISTS", "Já existe um grupo com este código", http.StatusConflict)
	case errors.Is(err, usecase.ErrGroupNotFound):
		return pkg.NewDomainErrorSimple("GROUP_NOT_FOUND", "Grupo não encontrado", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidServiceInput):
		return pkg.NewDomainErrorSimple("INVALID_SERVICE", "Código e título do serviço são obrigatórios", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidSubServiceInput):
		return pkg.NewDomainErrorSimple("INVALID_SUB_SERVICE", "Código e descrição do subserviço são obrigatórios", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNegativePrice):
		return pkg.NewDomainErrorSimple("INVALID_PRICE", "Valor não pode ser negativo", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Serviço não encontrado", http.StatusNotFound)
	case errors.Is(err, usecase.ErrFactorNotFound):
		return pkg.NewDomainErrorSimple("FACTOR_NOT_FOUND", "Fator não encontrado", http.StatusUnprocessableEntity)
	default:
		return internalError(err)
	}
}
