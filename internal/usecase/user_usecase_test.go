package usecase

import (
	"context"
	"errors"
	"testing"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/infrastructure/auth"
	mock_interfaces "orcamentos/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var (
	adminActor    = entities.User{ID: "admin-1", AccessLevel: entities.AccessLevelAdmin, Status: entities.UserStatusActive}
	standardActor = entities.User{ID: "user-1", AccessLevel: entities.AccessLevelStandard, Status: entities.UserStatusActive}
)

func TestUserUseCase_Create(t *testing.T) {
	t.Run("standard user cannot create", func(t *testing.T) {
		uc := NewUserUseCase(nil)
		_, err := uc.Create(context.Background(), standardActor, CreateUserInput{})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByEmail(gomock.Any(), "joao@exemplo.com").Return(entities.User{}, nil)
		_, err := uc.Create(context.Background(), adminActor, CreateUserInput{Username: "João", Email: "joao@exemplo.com", Password: "123"})
		if !errors.Is(err, auth.ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByEmail(gomock.Any(), "joao@exemplo.com").Return(entities.User{ID: "u-9"}, nil)
		_, err := uc.Create(context.Background(), adminActor, CreateUserInput{Username: "João", Email: "Joao@Exemplo.com", Password: "secret1"})
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})

	t.Run("success hashes password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByEmail(gomock.Any(), "joao@exemplo.com").Return(entities.User{}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) {
				if !auth.CheckPassword(u.PasswordHash, "secret1") {
					t.Fatalf("password not hashed")
				}
				if u.AccessLevel != entities.AccessLevelStandard || u.Status != entities.UserStatusActive {
					t.Fatalf("unexpected defaults: %+v", u)
				}
				return u, nil
			},
		)
		if _, err := uc.Create(context.Background(), adminActor, CreateUserInput{Username: "João", Email: "joao@exemplo.com", Password: "secret1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		uc := NewUserUseCase(nil)
		_, err := uc.Create(context.Background(), adminActor, CreateUserInput{Username: "x", Email: "not-an-email", Password: "secret1"})
		if !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail, got %v", err)
		}
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	t.Run("admin target is never deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "admin-2").Return(entities.User{ID: "admin-2", AccessLevel: entities.AccessLevelAdmin}, nil)
		if err := uc.Delete(context.Background(), adminActor, "admin-2"); !errors.Is(err, ErrCannotDeleteAdmin) {
			t.Fatalf("expected ErrCannotDeleteAdmin, got %v", err)
		}
	})

	t.Run("admin deleting itself is also refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "admin-1").Return(adminActor, nil)
		if err := uc.Delete(context.Background(), adminActor, "admin-1"); !errors.Is(err, ErrCannotDeleteAdmin) {
			t.Fatalf("expected ErrCannotDeleteAdmin, got %v", err)
		}
	})

	t.Run("standard caller", func(t *testing.T) {
		uc := NewUserUseCase(nil)
		if err := uc.Delete(context.Background(), standardActor, "user-2"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "user-2").Return(entities.User{ID: "user-2", AccessLevel: entities.AccessLevelStandard}, nil)
		repo.EXPECT().Delete(gomock.Any(), "user-2").Return(true, nil)
		if err := uc.Delete(context.Background(), adminActor, "user-2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestUserUseCase_Update(t *testing.T) {
	t.Run("another admin cannot be edited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "admin-2").Return(entities.User{ID: "admin-2", AccessLevel: entities.AccessLevelAdmin}, nil)
		name := "x"
		_, err := uc.Update(context.Background(), adminActor, "admin-2", UpdateUserInput{Username: &name})
		if !errors.Is(err, ErrCannotEditAdmin) {
			t.Fatalf("expected ErrCannotEditAdmin, got %v", err)
		}
	})

	t.Run("standard user cannot raise own access level", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(standardActor, nil)
		level := entities.AccessLevelAdmin
		_, err := uc.Update(context.Background(), standardActor, "user-1", UpdateUserInput{AccessLevel: &level})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("own password change requires current password", func(t *testing.T) {
		hash, err := auth.HashPassword("old-secret")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		self := standardActor
		self.PasswordHash = hash

		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewUserUseCase(repo)

		repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(self, nil).Times(3)
		if _, err := uc.Update(context.Background(), self, "user-1", UpdateUserInput{NewPassword: "new-secret"}); !errors.Is(err, ErrCurrentPasswordNeeded) {
			t.Fatalf("expected ErrCurrentPasswordNeeded, got %v", err)
		}
		if _, err := uc.Update(context.Background(), self, "user-1", UpdateUserInput{CurrentPassword: "wrong", NewPassword: "new-secret"}); !errors.Is(err, ErrWrongCurrentPassword) {
			t.Fatalf("expected ErrWrongCurrentPassword, got %v", err)
		}

		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) {
				if !auth.CheckPassword(u.PasswordHash, "new-secret") {
					t.Fatalf("password not changed")
				}
				return u, nil
			},
		)
		if _, err := uc.Update(context.Background(), self, "user-1", UpdateUserInput{CurrentPassword: "old-secret", NewPassword: "new-secret"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestUserUseCase_ListAndGet(t *testing.T) {
	uc := NewUserUseCase(nil)
	if _, err := uc.List(context.Background(), standardActor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.GetByID(context.Background(), standardActor, "user-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
