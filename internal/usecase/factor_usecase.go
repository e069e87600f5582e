package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrFactorNotFound           = errors.New("factor not found")
	ErrInvalidFactorID          = errors.New("invalid factor id")
	ErrInvalidFactorDescription = errors.New("invalid factor description")
	ErrInvalidFactorSubItem     = errors.New("invalid factor sub-item")
	ErrFactorInUse              = errors.New("factor is associated with clients")
)

type FactorSubItemInput struct {
	ID          string
	Description string
	Value       decimal.Decimal
}

type FactorInput struct {
	Description string
	SubItems    []FactorSubItemInput
}

type IFactorUseCase interface {
	Create(ctx context.Context, in FactorInput) (entities.Factor, error)
	Update(ctx context.Context, id string, in FactorInput) (entities.Factor, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Factor, error)
	List(ctx context.Context) ([]entities.Factor, error)
}

type FactorUseCase struct {
	repo    interfaces.IFactorRepository
	clients interfaces.IClientRepository
}

var _ IFactorUseCase = (*FactorUseCase)(nil)

func NewFactorUseCase(repo interfaces.IFactorRepository, clients interfaces.IClientRepository) *FactorUseCase {
	return &FactorUseCase{repo: repo, clients: clients}
}

func (u *FactorUseCase) Create(ctx context.Context, in FactorInput) (entities.Factor, error) {
	if err := validateFactorInput(in); err != nil {
		return entities.Factor{}, err
	}

	now := time.Now().UTC()
	f := entities.Factor{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, si := range in.SubItems {
		f.SubItems = append(f.SubItems, entities.FactorSubItem{
			Description: strings.TrimSpace(si.Description),
			Value:       si.Value,
		})
	}

	created, err := u.repo.Create(ctx, f)
	if err != nil {
		log.Printf("[factor][usecase] create failed err=%v", err)
		return entities.Factor{}, err
	}
	log.Printf("[factor][usecase] created id=%s code=%d sub_items=%d", created.ID, created.Code, len(created.SubItems))
	return created, nil
}

// Update replaces description and sub-items. Sub-items sent with the id of an
// existing one keep its code; the others are numbered from the factor code.
func (u *FactorUseCase) Update(ctx context.Context, id string, in FactorInput) (entities.Factor, error) {
	if err := validateFactorInput(in); err != nil {
		return entities.Factor{}, err
	}
	f, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Factor{}, err
	}

	previous := make(map[string]entities.FactorSubItem, len(f.SubItems))
	for _, si := range f.SubItems {
		previous[si.ID] = si
	}

	f.Description = strings.TrimSpace(in.Description)
	f.SubItems = nil
	for _, si := range in.SubItems {
		next := entities.FactorSubItem{
			Description: strings.TrimSpace(si.Description),
			Value:       si.Value,
		}
		if prev, ok := previous[si.ID]; ok && si.ID != "" {
			next.ID = prev.ID
			next.Code = prev.Code
		}
		f.SubItems = append(f.SubItems, next)
	}
	f.NormalizeSubItems()

	updated, err := u.repo.Update(ctx, f)
	if err != nil {
		return entities.Factor{}, err
	}
	if updated.ID == "" {
		return entities.Factor{}, ErrFactorNotFound
	}
	log.Printf("[factor][usecase] updated id=%s code=%d", updated.ID, updated.Code)
	return updated, nil
}

func (u *FactorUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidFactorID
	}

	// Active clients must drop the association first.
	clients, err := u.clients.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range clients {
		if _, ok := c.FactorSelection(id); ok {
			log.Printf("[factor][usecase] delete refused id=%s client_id=%s", id, c.ID)
			return ErrFactorInUse
		}
	}

	ok, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFactorNotFound
	}
	log.Printf("[factor][usecase] deleted id=%s", id)
	return nil
}

func (u *FactorUseCase) GetByID(ctx context.Context, id string) (entities.Factor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Factor{}, ErrInvalidFactorID
	}
	f, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Factor{}, err
	}
	if f.ID == "" {
		return entities.Factor{}, ErrFactorNotFound
	}
	return f, nil
}

func (u *FactorUseCase) List(ctx context.Context) ([]entities.Factor, error) {
	return u.repo.List(ctx)
}

func validateFactorInput(in FactorInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return ErrInvalidFactorDescription
	}
	for _, si := range in.SubItems {
		if strings.TrimSpace(si.Description) == "" {
			return ErrInvalidFactorSubItem
		}
	}
	return nil
}
