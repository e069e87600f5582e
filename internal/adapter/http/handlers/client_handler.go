package handlers

import (
	"errors"
	"log"
	"net/http"

	request "orcamentos/internal/adapter/http/dto/request"
	response "orcamentos/internal/adapter/http/dto/response"
	"orcamentos/internal/domain/pricing"
	"orcamentos/internal/usecase"
	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

// CreateClient godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        client  body      request.ClientRequest  true  "Client"
// @Success      201     {object}  response.ClientResponse
// @Failure      409     {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var payload request.ClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	client, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		log.Printf("[client][handler] create failed err=%v", err)
		writeError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromClient(client))
}

// UpdateClient godoc
// @Summary      Update a client (fields left out are kept)
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Client ID"
// @Param        client  body      request.UpdateClientRequest  true  "Changes"
// @Success      200     {object}  response.ClientResponse
// @Security     Bearer
// @Router       /clients/{id} [patch]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var payload request.UpdateClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	client, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		writeError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

// DeleteClient godoc
// @Summary      Delete a client (soft)
// @Tags         clients
// @Param        id  path  string  true  "Client ID"
// @Success      204
// @Security     Bearer
// @Router       /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapClientError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// GetClient godoc
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id  path      string  true  "Client ID"
// @Success      200 {object}  response.ClientResponse
// @Security     Bearer
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClient(client))
}

// ListClients godoc
// @Summary      List active clients
// @Tags         clients
// @Produce      json
// @Success      200 {array}  response.ClientResponse
// @Security     Bearer
// @Router       /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapClientError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromClients(clients))
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClientID):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrInvalidClientName):
		return pkg.NewDomainErrorSimple("INVALID_CLIENT_NAME", "Nome do cliente é obrigatório", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidClientDocument):
		return pkg.NewDomainErrorSimple("INVALID_CLIENT_DOCUMENT", "CNPJ/CPF inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientDocumentExists):
		return pkg.NewDomainErrorSimple("CLIENT_DOCUMENT_EXISTS", "Já existe um cliente com este CNPJ/CPF", http.StatusConflict)
	case errors.Is(err, usecase.ErrDuplicateClientFactor):
		return pkg.NewDomainErrorSimple("DUPLICATE_CLIENT_FACTOR", "Fator associado mais de uma vez", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrFactorNotFound):
		return pkg.NewDomainErrorSimple("FACTOR_NOT_FOUND", "Fator não encontrado", http.StatusUnprocessableEntity)
	case errors.Is(err, pricing.ErrFactorSubItemNotFound):
		return pkg.NewDomainErrorSimple("FACTOR_SUB_ITEM_NOT_FOUND", "Subitem do fator não encontrado", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Cliente não encontrado", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
