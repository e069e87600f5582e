package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var (
	ErrGroupNotFound          = errors.New("service group not found")
	ErrInvalidGroupID         = errors.New("invalid service group id")
	ErrInvalidGroupInput      = errors.New("invalid service group input")
	ErrGroupCodeExists        = errors.New("service group code already exists")
	ErrInvalidServiceID       = errors.New("invalid service id")
	ErrInvalidServiceInput    = errors.New("invalid service input")
	ErrInvalidSubServiceInput = errors.New("invalid sub-service input")
	ErrNegativePrice          = errors.New("price must be >= 0")
)

type GroupInput struct {
	Code        string
	Name        string
	Description string
}

type GroupPatch struct {
	Code        *string
	Name        *string
	Description *string
}

type SubServiceInput struct {
	ID             string
	Code           string
	Description    string
	Unit           string
	UnitPrice      decimal.Decimal
	AllowedFactors []string
}

type ServiceInput struct {
	GroupID     string
	Code        string
	Title       string
	Description string
	UnitPrice   decimal.Decimal
	SubServices []SubServiceInput
}

// ICatalogUseCase manages service groups, services and their sub-services.

type ICatalogUseCase interface {
	CreateGroup(ctx context.Context, in GroupInput) (entities.ServiceGroup, error)
	UpdateGroup(ctx context.Context, id string, patch GroupPatch) (entities.ServiceGroup, error)
	DeleteGroup(ctx context.Context, id string) error
	ListGroups(ctx context.Context) ([]entities.ServiceGroup, error)

	CreateService(ctx context.Context, in ServiceInput) (entities.Service, error)
	UpdateService(ctx context.Context, id string, in ServiceInput) (entities.Service, error)
	DeleteService(ctx context.Context, id string) error
	DeleteAllServices(ctx context.Context) (int, error)
	GetService(ctx context.Context, id string) (entities.Service, error)
	ListServices(ctx context.Context) ([]entities.Service, error)
}

type CatalogUseCase struct {
	repo    interfaces.ICatalogRepository
	factors interfaces.IFactorRepository
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(repo interfaces.ICatalogRepository, factors interfaces.IFactorRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, factors: factors}
}

func (u *CatalogUseCase) CreateGroup(ctx context.Context, in GroupInput) (entities.ServiceGroup, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return entities.ServiceGroup{}, ErrInvalidGroupInput
	}
	if err := u.ensureGroupCodeFree(ctx, code, ""); err != nil {
		return entities.ServiceGroup{}, err
	}

	now := time.Now().UTC()
	created, err := u.repo.CreateGroup(ctx, entities.ServiceGroup{
		ID:          uuid.NewString(),
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return entities.ServiceGroup{}, err
	}
	log.Printf("[catalog][usecase] group created id=%s code=%s", created.ID, created.Code)
	return created, nil
}

func (u *CatalogUseCase) UpdateGroup(ctx context.Context, id string, patch GroupPatch) (entities.ServiceGroup, error) {
	g, err := u.group(ctx, id)
	if err != nil {
		return entities.ServiceGroup{}, err
	}
	if patch.Code != nil {
		code := strings.TrimSpace(*patch.Code)
		if code == "" {
			return entities.ServiceGroup{}, ErrInvalidGroupInput
		}
		if err := u.ensureGroupCodeFree(ctx, code, g.ID); err != nil {
			return entities.ServiceGroup{}, err
		}
		g.Code = code
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return entities.ServiceGroup{}, ErrInvalidGroupInput
		}
		g.Name = name
	}
	setTrimmed(&g.Description, patch.Description)

	updated, err := u.repo.UpdateGroup(ctx, g)
	if err != nil {
		return entities.ServiceGroup{}, err
	}
	if updated.ID == "" {
		return entities.ServiceGroup{}, ErrGroupNotFound
	}
	return updated, nil
}

// DeleteGroup soft-deletes the services of the group and removes the group.
func (u *CatalogUseCase) DeleteGroup(ctx context.Context, id string) error {
	g, err := u.group(ctx, id)
	if err != nil {
		return err
	}
	services, err := u.repo.ListServicesByGroup(ctx, g.ID)
	if err != nil {
		return err
	}
	for _, s := range services {
		if _, err := u.repo.SoftDeleteService(ctx, s.ID); err != nil {
			log.Printf("[catalog][usecase] group delete failed group_id=%s service_id=%s err=%v", g.ID, s.ID, err)
			return err
		}
	}
	ok, err := u.repo.DeleteGroup(ctx, g.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrGroupNotFound
	}
	log.Printf("[catalog][usecase] group deleted id=%s services=%d", g.ID, len(services))
	return nil
}

// ListGroups returns every group with its active services. Services repeating
// a code already listed in the group are skipped.
func (u *CatalogUseCase) ListGroups(ctx context.Context) ([]entities.ServiceGroup, error) {
	groups, err := u.repo.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	services, err := u.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	byGroup := lo.GroupBy(services, func(s entities.Service) string { return s.GroupID })
	for i := range groups {
		list := lo.UniqBy(byGroup[groups[i].ID], func(s entities.Service) string { return s.Code })
		sort.SliceStable(list, func(a, b int) bool {
			return entities.CompareCodes(list[a].Code, list[b].Code) < 0
		})
		groups[i].Services = list
	}
	return groups, nil
}

func (u *CatalogUseCase) CreateService(ctx context.Context, in ServiceInput) (entities.Service, error) {
	s, err := u.buildService(ctx, uuid.NewString(), in)
	if err != nil {
		return entities.Service{}, err
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	created, err := u.repo.CreateService(ctx, s)
	if err != nil {
		return entities.Service{}, err
	}
	log.Printf("[catalog][usecase] service created id=%s code=%s sub_services=%d", created.ID, created.Code, len(created.SubServices))
	return created, nil
}

// UpdateService replaces the service document, sub-services included.
func (u *CatalogUseCase) UpdateService(ctx context.Context, id string, in ServiceInput) (entities.Service, error) {
	current, err := u.GetService(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if current.Deleted {
		return entities.Service{}, ErrServiceNotFound
	}
	s, err := u.buildService(ctx, current.ID, in)
	if err != nil {
		return entities.Service{}, err
	}
	s.CreatedAt = current.CreatedAt

	updated, err := u.repo.UpdateService(ctx, s)
	if err != nil {
		return entities.Service{}, err
	}
	if updated.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	log.Printf("[catalog][usecase] service updated id=%s", updated.ID)
	return updated, nil
}

func (u *CatalogUseCase) DeleteService(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidServiceID
	}
	ok, err := u.repo.SoftDeleteService(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrServiceNotFound
	}
	log.Printf("[catalog][usecase] service soft deleted id=%s", id)
	return nil
}

func (u *CatalogUseCase) DeleteAllServices(ctx context.Context) (int, error) {
	n, err := u.repo.SoftDeleteAllServices(ctx)
	if err != nil {
		return n, err
	}
	log.Printf("[catalog][usecase] delete all services count=%d", n)
	return n, nil
}

func (u *CatalogUseCase) GetService(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	s, err := u.repo.GetService(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if s.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return s, nil
}

func (u *CatalogUseCase) ListServices(ctx context.Context) ([]entities.Service, error) {
	return u.repo.ListServices(ctx)
}

func (u *CatalogUseCase) group(ctx context.Context, id string) (entities.ServiceGroup, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceGroup{}, ErrInvalidGroupID
	}
	g, err := u.repo.GetGroup(ctx, id)
	if err != nil {
		return entities.ServiceGroup{}, err
	}
	if g.ID == "" {
		return entities.ServiceGroup{}, ErrGroupNotFound
	}
	return g, nil
}

func (u *CatalogUseCase) ensureGroupCodeFree(ctx context.Context, code, selfID string) error {
	existing, err := u.repo.GetGroupByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing.ID != "" && existing.ID != selfID {
		return ErrGroupCodeExists
	}
	return nil
}

func (u *CatalogUseCase) buildService(ctx context.Context, id string, in ServiceInput) (entities.Service, error) {
	code := strings.TrimSpace(in.Code)
	title := strings.TrimSpace(in.Title)
	if code == "" || title == "" {
		return entities.Service{}, ErrInvalidServiceInput
	}
	if in.UnitPrice.IsNegative() {
		return entities.Service{}, ErrNegativePrice
	}
	g, err := u.group(ctx, in.GroupID)
	if err != nil {
		return entities.Service{}, err
	}

	s := entities.Service{
		ID:          id,
		GroupID:     g.ID,
		Code:        code,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		UnitPrice:   in.UnitPrice,
	}
	factorSeen := map[string]bool{}
	for _, ssIn := range in.SubServices {
		ss := entities.SubService{
			ID:             strings.TrimSpace(ssIn.ID),
			Code:           strings.TrimSpace(ssIn.Code),
			Description:    strings.TrimSpace(ssIn.Description),
			Unit:           strings.TrimSpace(ssIn.Unit),
			UnitPrice:      ssIn.UnitPrice,
			ServiceID:      id,
			AllowedFactors: lo.Uniq(lo.Compact(ssIn.AllowedFactors)),
		}
		if ss.Code == "" || ss.Description == "" {
			return entities.Service{}, ErrInvalidSubServiceInput
		}
		if ss.UnitPrice.IsNegative() {
			return entities.Service{}, ErrNegativePrice
		}
		if ss.ID == "" {
			ss.ID = uuid.NewString()
		}
		for _, fid := range ss.AllowedFactors {
			if factorSeen[fid] {
				continue
			}
			f, err := u.factors.GetByID(ctx, fid)
			if err != nil {
				return entities.Service{}, err
			}
			if f.ID == "" {
				return entities.Service{}, ErrFactorNotFound
			}
			factorSeen[fid] = true
		}
		s.SubServices = append(s.SubServices, ss)
	}
	return s, nil
}
