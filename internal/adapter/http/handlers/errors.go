package handlers

import (
	"log"
	"net/http"

	"orcamentos/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Requisição inválida", http.StatusBadRequest)
	errInvalidDate    = pkg.NewDomainErrorSimple("INVALID_DATE", "Data inválida, use o formato AAAA-MM-DD", http.StatusBadRequest)
	errNotLoggedIn    = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Autenticação necessária", http.StatusUnauthorized)
)

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "Ocorreu um erro interno", err, http.StatusInternalServerError)
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Printf("[http][handler] %s %s failed err=%v", c.Request.Method, c.FullPath(), appErr)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
