package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/domain/pricing"
	"orcamentos/internal/usecase/interfaces"
	"orcamentos/pkg"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound        = errors.New("client not found")
	ErrInvalidClientID       = errors.New("invalid client id")
	ErrInvalidClientName     = errors.New("invalid client name")
	ErrInvalidClientDocument = errors.New("invalid client document")
	ErrClientDocumentExists  = errors.New("client document already registered")
	ErrDuplicateClientFactor = errors.New("factor associated more than once")
)

// ClientInput is the full set of client fields accepted on create.
type ClientInput struct {
	Name          string
	Document      string
	Email         string
	Phone         string
	Street        string
	Number        string
	Complement    string
	Neighborhood  string
	City          string
	State         string
	ZipCode       string
	Mayor         string
	Party         string
	MayorPhone    string
	ClientFactors []entities.ClientFactor
	Observations  string
}

// ClientPatch merges into an existing client: nil fields are kept.
type ClientPatch struct {
	Name          *string
	Document      *string
	Email         *string
	Phone         *string
	Street        *string
	Number        *string
	Complement    *string
	Neighborhood  *string
	City          *string
	State         *string
	ZipCode       *string
	Mayor         *string
	Party         *string
	MayorPhone    *string
	ClientFactors *[]entities.ClientFactor
	Observations  *string
}

type IClientUseCase interface {
	Create(ctx context.Context, in ClientInput) (entities.Client, error)
	Update(ctx context.Context, id string, patch ClientPatch) (entities.Client, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
}

type ClientUseCase struct {
	clients interfaces.IClientRepository
	factors interfaces.IFactorRepository
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(clients interfaces.IClientRepository, factors interfaces.IFactorRepository) *ClientUseCase {
	return &ClientUseCase{clients: clients, factors: factors}
}

func (u *ClientUseCase) Create(ctx context.Context, in ClientInput) (entities.Client, error) {
	now := time.Now().UTC()
	c := entities.Client{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Document:      pkg.OnlyDigits(in.Document),
		Email:         strings.TrimSpace(in.Email),
		Phone:         pkg.OnlyDigits(in.Phone),
		Street:        strings.TrimSpace(in.Street),
		Number:        strings.TrimSpace(in.Number),
		Complement:    strings.TrimSpace(in.Complement),
		Neighborhood:  strings.TrimSpace(in.Neighborhood),
		City:          strings.TrimSpace(in.City),
		State:         strings.ToUpper(strings.TrimSpace(in.State)),
		ZipCode:       pkg.OnlyDigits(in.ZipCode),
		Mayor:         strings.TrimSpace(in.Mayor),
		Party:         strings.TrimSpace(in.Party),
		MayorPhone:    pkg.OnlyDigits(in.MayorPhone),
		ClientFactors: in.ClientFactors,
		Observations:  strings.TrimSpace(in.Observations),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.validate(ctx, c); err != nil {
		return entities.Client{}, err
	}
	if err := u.validateFactors(ctx, c.ClientFactors); err != nil {
		return entities.Client{}, err
	}

	created, err := u.clients.Create(ctx, c)
	if err != nil {
		return entities.Client{}, err
	}
	log.Printf("[client][usecase] created id=%s document=%s", created.ID, created.Document)
	return created, nil
}

func (u *ClientUseCase) Update(ctx context.Context, id string, patch ClientPatch) (entities.Client, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.Deleted {
		return entities.Client{}, ErrClientNotFound
	}

	setTrimmed(&c.Name, patch.Name)
	setDigits(&c.Document, patch.Document)
	setTrimmed(&c.Email, patch.Email)
	setDigits(&c.Phone, patch.Phone)
	setTrimmed(&c.Street, patch.Street)
	setTrimmed(&c.Number, patch.Number)
	setTrimmed(&c.Complement, patch.Complement)
	setTrimmed(&c.Neighborhood, patch.Neighborhood)
	setTrimmed(&c.City, patch.City)
	if patch.State != nil {
		c.State = strings.ToUpper(strings.TrimSpace(*patch.State))
	}
	setDigits(&c.ZipCode, patch.ZipCode)
	setTrimmed(&c.Mayor, patch.Mayor)
	setTrimmed(&c.Party, patch.Party)
	setDigits(&c.MayorPhone, patch.MayorPhone)
	if patch.ClientFactors != nil {
		c.ClientFactors = *patch.ClientFactors
	}
	setTrimmed(&c.Observations, patch.Observations)

	if err := u.validate(ctx, c); err != nil {
		return entities.Client{}, err
	}
	if patch.ClientFactors != nil {
		if err := u.validateFactors(ctx, c.ClientFactors); err != nil {
			return entities.Client{}, err
		}
	}

	updated, err := u.clients.Update(ctx, c)
	if err != nil {
		return entities.Client{}, err
	}
	if updated.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	log.Printf("[client][usecase] updated id=%s", updated.ID)
	return updated, nil
}

func (u *ClientUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidClientID
	}
	ok, err := u.clients.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrClientNotFound
	}
	log.Printf("[client][usecase] soft deleted id=%s", id)
	return nil
}

func (u *ClientUseCase) GetByID(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	c, err := u.clients.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) List(ctx context.Context) ([]entities.Client, error) {
	return u.clients.List(ctx)
}

// validate checks required fields and document uniqueness among active clients.
func (u *ClientUseCase) validate(ctx context.Context, c entities.Client) error {
	if c.Name == "" {
		return ErrInvalidClientName
	}
	if len(c.Document) != 11 && len(c.Document) != 14 {
		return ErrInvalidClientDocument
	}

	existing, err := u.clients.GetByDocument(ctx, c.Document)
	if err != nil {
		return err
	}
	if existing.ID != "" && existing.ID != c.ID {
		return ErrClientDocumentExists
	}
	return nil
}

// validateFactors checks that every association points at an existing sub-item.
func (u *ClientUseCase) validateFactors(ctx context.Context, cfs []entities.ClientFactor) error {
	seen := make(map[string]bool, len(cfs))
	for _, cf := range cfs {
		if seen[cf.FactorID] {
			return ErrDuplicateClientFactor
		}
		seen[cf.FactorID] = true

		f, err := u.factors.GetByID(ctx, cf.FactorID)
		if err != nil {
			return err
		}
		if f.ID == "" {
			return ErrFactorNotFound
		}
		if _, ok := f.SubItem(cf.SubItemID); !ok {
			return pricing.ErrFactorSubItemNotFound
		}
	}
	return nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setDigits(dst *string, v *string) {
	if v != nil {
		*dst = pkg.OnlyDigits(*v)
	}
}
