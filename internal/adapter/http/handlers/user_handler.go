package handlers

import (
	"errors"
	"net/http"

	request "orcamentos/internal/adapter/http/dto/request"
	response "orcamentos/internal/adapter/http/dto/response"
	"orcamentos/internal/adapter/http/middleware"
	"orcamentos/internal/infrastructure/auth"
	"orcamentos/internal/usecase"
	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
)

// UserHandler manages user accounts. Permission rules live in the use case,
// which receives the authenticated caller.
type UserHandler struct {
	usecase usecase.IUserUseCase
}

func NewUserHandler(uc usecase.IUserUseCase) *UserHandler {
	return &UserHandler{usecase: uc}
}

// CreateUser godoc
// @Summary      Create a user (admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      request.CreateUserRequest  true  "User"
// @Success      201   {object}  response.UserResponse
// @Security     Bearer
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, errNotLoggedIn)
		return
	}
	var payload request.CreateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	user, err := h.usecase.Create(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		writeError(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "User ID"
// @Param        user  body      request.UpdateUserRequest  true  "Changes"
// @Success      200   {object}  response.UserResponse
// @Security     Bearer
// @Router       /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, errNotLoggedIn)
		return
	}
	var payload request.UpdateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	user, err := h.usecase.Update(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

// DeleteUser godoc
// @Summary      Delete a user (admin only, admins are never deleted)
// @Tags         users
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Security     Bearer
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, errNotLoggedIn)
		return
	}
	if err := h.usecase.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, mapUserError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id  path      string  true  "User ID"
// @Success      200 {object}  response.UserResponse
// @Security     Bearer
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, errNotLoggedIn)
		return
	}
	user, err := h.usecase.GetByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

// ListUsers godoc
// @Summary      List users (admin only)
// @Tags         users
// @Produce      json
// @Success      200 {array}  response.UserResponse
// @Security     Bearer
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, errNotLoggedIn)
		return
	}
	users, err := h.usecase.List(c.Request.Context(), actor)
	if err != nil {
		writeError(c, mapUserError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(users))
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserID):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrInvalidUserInput):
		return pkg.NewDomainErrorSimple("INVALID_USER", "Dados do usuário inválidos", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEmail):
		return pkg.NewDomainErrorSimple("INVALID_EMAIL", "E-mail inválido", http.StatusBadRequest)
	case errors.Is(err, auth.ErrWeakPassword):
		return pkg.NewDomainErrorSimple("WEAK_PASSWORD", "A senha deve ter pelo menos 6 caracteres", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrCurrentPasswordNeeded):
		return pkg.NewDomainErrorSimple("CURRENT_PASSWORD_REQUIRED", "Informe a senha atual", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrWrongCurrentPassword):
		return pkg.NewDomainErrorSimple("WRONG_CURRENT_PASSWORD", "Senha atual incorreta", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		return pkg.NewDomainErrorSimple("EMAIL_ALREADY_EXISTS", "Este e-mail já está em uso", http.StatusConflict)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operação não permitida", http.StatusForbidden)
	case errors.Is(err, usecase.ErrCannotDeleteAdmin):
		return pkg.NewDomainErrorSimple("CANNOT_DELETE_ADMIN", "Usuários administradores não podem ser excluídos", http.StatusForbidden)
	case errors.Is(err, usecase.ErrCannotEditAdmin):
		return pkg.NewDomainErrorSimple("CANNOT_EDIT_ADMIN", "Administradores só podem ser editados por eles mesmos", http.StatusForbidden)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "Usuário não encontrado", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
