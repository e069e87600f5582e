package handlers

import (
	"errors"
	"net/http"

	request "orcamentos/internal/adapter/http/dto/request"
	response "orcamentos/internal/adapter/http/dto/response"
	"orcamentos/internal/adapter/http/middleware"
	"orcamentos/internal/usecase"
	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// Login godoc
// @Summary      Sign in with e-mail and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      request.LoginRequest  true  "Credentials"
// @Success      200          {object}  response.LoginResponse
// @Failure      401          {object}  pkg.HTTPError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	res, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLogin(res))
}

// Me godoc
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200 {object}  response.UserResponse
// @Security     Bearer
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, errNotLoggedIn)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "E-mail ou senha inválidos", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrUserInactive):
		return pkg.NewDomainErrorSimple("USER_INACTIVE", "Usuário inativo", http.StatusForbidden)
	default:
		return internalError(err)
	}
}
