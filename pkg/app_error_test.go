package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamodb down")
	appErr := NewDomainError("INTERNAL_ERROR", "Ocorreu um erro interno", cause, http.StatusInternalServerError)

	if !errors.Is(appErr, cause) {
		t.Fatalf("expected wrapped cause")
	}
	if appErr.Error() != "INTERNAL_ERROR: Ocorreu um erro interno: dynamodb down" {
		t.Fatalf("unexpected message: %s", appErr.Error())
	}

	body := appErr.ToHTTPError()
	if body.Code != "INTERNAL_ERROR" || body.Message != "Ocorreu um erro interno" {
		t.Fatalf("unexpected body: %+v", body)
	}

	simple := NewDomainErrorSimple("NOT_FOUND", "Não encontrado", http.StatusNotFound)
	if simple.Unwrap() != nil || simple.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected simple error: %+v", simple)
	}
	if simple.Error() != "NOT_FOUND: Não encontrado" {
		t.Fatalf("unexpected message: %s", simple.Error())
	}
}
