package usecase

import (
	"context"
	"log"
	"strings"

	"orcamentos/internal/domain/entities"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Default catalog created by the seed command.
const (
	DefaultGroupCode   = "PREF"
	DefaultGroupName   = "PREFEITURA"
	DefaultServiceCode = "1"
)

type AdminSeedInput struct {
	Username string
	Email    string
	Password string
}

// SeedResult tells what the seed actually created.
type SeedResult struct {
	GroupCreated   bool
	ServiceCreated bool
	AdminCreated   bool
}

// SetupUseCase bootstraps an empty installation. Every step is skipped when
// its data already exists, so running it twice is harmless.
type SetupUseCase struct {
	catalog *CatalogUseCase
	users   *UserUseCase
}

func NewSetupUseCase(catalog *CatalogUseCase, users *UserUseCase) *SetupUseCase {
	return &SetupUseCase{catalog: catalog, users: users}
}

func (u *SetupUseCase) Seed(ctx context.Context, admin AdminSeedInput) (SeedResult, error) {
	var res SeedResult

	group, err := u.catalog.repo.GetGroupByCode(ctx, DefaultGroupCode)
	if err != nil {
		return res, err
	}
	if group.ID == "" {
		group, err = u.catalog.CreateGroup(ctx, GroupInput{
			Code:        DefaultGroupCode,
			Name:        DefaultGroupName,
			Description: "Serviços prestados para prefeituras",
		})
		if err != nil {
			return res, err
		}
		res.GroupCreated = true
	}

	services, err := u.catalog.repo.ListServicesByGroup(ctx, group.ID)
	if err != nil {
		return res, err
	}
	if !lo.ContainsBy(services, func(s entities.Service) bool { return s.Code == DefaultServiceCode }) {
		if _, err := u.catalog.CreateService(ctx, defaultService(group.ID)); err != nil {
			return res, err
		}
		res.ServiceCreated = true
	}

	if strings.TrimSpace(admin.Email) == "" || admin.Password == "" {
		log.Printf("[setup][usecase] admin seed skipped (ADMIN_EMAIL/ADMIN_PASSWORD not set)")
		return res, nil
	}
	existing, err := u.users.repo.GetByEmail(ctx, admin.Email)
	if err != nil {
		return res, err
	}
	if existing.ID == "" {
		if _, err := u.users.create(ctx, CreateUserInput{
			Username:    admin.Username,
			Email:       admin.Email,
			Password:    admin.Password,
			AccessLevel: entities.AccessLevelAdmin,
			Status:      entities.UserStatusActive,
		}); err != nil {
			return res, err
		}
		res.AdminCreated = true
	}

	log.Printf("[setup][usecase] seed done group_created=%t service_created=%t admin_created=%t", res.GroupCreated, res.ServiceCreated, res.AdminCreated)
	return res, nil
}

func defaultService(groupID string) ServiceInput {
	sub := func(code, desc string, price int64) SubServiceInput {
		return SubServiceInput{Code: code, Description: desc, Unit: "km²", UnitPrice: decimal.NewFromInt(price)}
	}
	return ServiceInput{
		GroupID:     groupID,
		Code:        DefaultServiceCode,
		Title:       "Serviço de Cobertura Aerofotogramétrica",
		Description: "Serviço de Cobertura Aerofotogramétrica",
		UnitPrice:   decimal.Zero,
		SubServices: []SubServiceInput{
			sub("1.1", "Área até 100 km²", 350),
			sub("1.2", "Área de 101 a 200 km²", 300),
			sub("1.3", "Área de 201 a 500 km²", 250),
			sub("1.4", "Área acima de 501 km²", 200),
		},
	}
}
