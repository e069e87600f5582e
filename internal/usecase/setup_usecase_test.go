package usecase

import (
	"context"
	"testing"

	"orcamentos/internal/domain/entities"
	mock_interfaces "orcamentos/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestSetupUseCase_Seed(t *testing.T) {
	t.Run("empty installation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalogRepo := mock_interfaces.NewMockICatalogRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewSetupUseCase(NewCatalogUseCase(catalogRepo, nil), NewUserUseCase(userRepo))

		catalogRepo.EXPECT().GetGroupByCode(gomock.Any(), DefaultGroupCode).Return(entities.ServiceGroup{}, nil).Times(2)
		catalogRepo.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, g entities.ServiceGroup) (entities.ServiceGroup, error) { return g, nil },
		)
		catalogRepo.EXPECT().ListServicesByGroup(gomock.Any(), gomock.Any()).Return(nil, nil)
		catalogRepo.EXPECT().GetGroup(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id string) (entities.ServiceGroup, error) {
				return entities.ServiceGroup{ID: id, Code: DefaultGroupCode}, nil
			},
		)
		catalogRepo.EXPECT().CreateService(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Service) (entities.Service, error) {
				if len(s.SubServices) != 4 || s.SubServices[0].Unit != "km²" || s.SubServices[3].UnitPrice.IntPart() != 200 {
					t.Fatalf("unexpected default service: %+v", s)
				}
				return s, nil
			},
		)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "admin@exemplo.com").Return(entities.User{}, nil).Times(2)
		userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) {
				if !u.IsAdmin() || !u.IsActive() {
					t.Fatalf("seeded user must be an active admin: %+v", u)
				}
				return u, nil
			},
		)

		res, err := uc.Seed(context.Background(), AdminSeedInput{Username: "Administrador", Email: "admin@exemplo.com", Password: "admin123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.GroupCreated || !res.ServiceCreated || !res.AdminCreated {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("already seeded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		catalogRepo := mock_interfaces.NewMockICatalogRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewSetupUseCase(NewCatalogUseCase(catalogRepo, nil), NewUserUseCase(userRepo))

		catalogRepo.EXPECT().GetGroupByCode(gomock.Any(), DefaultGroupCode).Return(entities.ServiceGroup{ID: "g-1"}, nil)
		catalogRepo.EXPECT().ListServicesByGroup(gomock.Any(), "g-1").Return([]entities.Service{{ID: "s-1", Code: DefaultServiceCode}}, nil)
		userRepo.EXPECT().GetByEmail(gomock.Any(), "admin@exemplo.com").Return(entities.User{ID: "admin-1"}, nil)

		res, err := uc.Seed(context.Background(), AdminSeedInput{Email: "admin@exemplo.com", Password: "admin123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.GroupCreated || res.ServiceCreated || res.AdminCreated {
			t.Fatalf("nothing should be created: %+v", res)
		}
	})
}
