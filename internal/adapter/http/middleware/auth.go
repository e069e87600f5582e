package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase"
	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Autenticação necessária", http.StatusUnauthorized)
	errInvalidToken = pkg.NewDomainErrorSimple("INVALID_TOKEN", "Sessão inválida ou expirada", http.StatusUnauthorized)
	errInactiveUser = pkg.NewDomainErrorSimple("USER_INACTIVE", "Usuário inativo", http.StatusForbidden)
	errAdminOnly    = pkg.NewDomainErrorSimple("FORBIDDEN", "Acesso restrito a administradores", http.StatusForbidden)
)

// Auth requires an "Authorization: Bearer <jwt>" header and stores the
// resolved user in the gin context.
func Auth(auth usecase.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, errMissingToken)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			abort(c, errInvalidToken)
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrUserInactive):
				abort(c, errInactiveUser)
			case errors.Is(err, usecase.ErrUnauthenticated):
				abort(c, errInvalidToken)
			default:
				log.Printf("[auth][middleware] authenticate failed err=%v", err)
				abort(c, pkg.NewDomainError("INTERNAL_ERROR", "Ocorreu um erro interno", err, http.StatusInternalServerError))
			}
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abort(c, errMissingToken)
			return
		}
		if !user.IsAdmin() {
			abort(c, errAdminOnly)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c *gin.Context) (entities.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return entities.User{}, false
	}
	user, ok := v.(entities.User)
	return user, ok
}

// SetCurrentUser is used by handler tests to skip token validation.
func SetCurrentUser(c *gin.Context, user entities.User) {
	c.Set(currentUserKey, user)
}

func abort(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
