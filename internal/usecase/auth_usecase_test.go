package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/infrastructure/auth"
	mock_interfaces "orcamentos/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func activeUserWithPassword(t *testing.T, password string) entities.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return entities.User{
		ID:           "user-1",
		Email:        "joao@exemplo.com",
		AccessLevel:  entities.AccessLevelStandard,
		Status:       entities.UserStatusActive,
		PasswordHash: hash,
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(repo, tokens)

		repo.EXPECT().GetByEmail(gomock.Any(), "joao@exemplo.com").Return(activeUserWithPassword(t, "secret1"), nil)
		res, err := uc.Login(context.Background(), " Joao@Exemplo.com ", "secret1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := tokens.Validate(res.Token)
		if err != nil || claims.Subject != "user-1" || claims.AccessLevel != "standard" {
			t.Fatalf("unexpected token claims: %+v %v", claims, err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(repo, tokens)

		repo.EXPECT().GetByEmail(gomock.Any(), "joao@exemplo.com").Return(activeUserWithPassword(t, "secret1"), nil)
		if _, err := uc.Login(context.Background(), "joao@exemplo.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(repo, tokens)

		repo.EXPECT().GetByEmail(gomock.Any(), "ghost@exemplo.com").Return(entities.User{}, nil)
		if _, err := uc.Login(context.Background(), "ghost@exemplo.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("inactive profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(repo, tokens)

		u := activeUserWithPassword(t, "secret1")
		u.Status = entities.UserStatusInactive
		repo.EXPECT().GetByEmail(gomock.Any(), "joao@exemplo.com").Return(u, nil)
		if _, err := uc.Login(context.Background(), "joao@exemplo.com", "secret1"); !errors.Is(err, ErrUserInactive) {
			t.Fatalf("expected ErrUserInactive, got %v", err)
		}
	})
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	token, _, err := tokens.Generate("user-1", "standard")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Run("invalid token", func(t *testing.T) {
		uc := NewAuthUseCase(nil, tokens)
		if _, err := uc.Authenticate(context.Background(), "garbage"); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("deactivated after login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(repo, tokens)

		repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1", Status: entities.UserStatusInactive}, nil)
		if _, err := uc.Authenticate(context.Background(), token); !errors.Is(err, ErrUserInactive) {
			t.Fatalf("expected ErrUserInactive, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(repo, tokens)

		repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{ID: "user-1", Status: entities.UserStatusActive}, nil)
		u, err := uc.Authenticate(context.Background(), token)
		if err != nil || u.ID != "user-1" {
			t.Fatalf("unexpected result: %+v %v", u, err)
		}
	})
}
