package request

import (
	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase"
)

type ClientFactorRequest struct {
	FactorID  string `json:"factor_id" binding:"required"`
	SubItemID string `json:"sub_item_id" binding:"required"`
}

func toClientFactors(in []ClientFactorRequest) []entities.ClientFactor {
	out := make([]entities.ClientFactor, 0, len(in))
	for _, cf := range in {
		out = append(out, entities.ClientFactor{FactorID: cf.FactorID, SubItemID: cf.SubItemID})
	}
	return out
}

// ClientRequest is the body of POST /clients. Document and phones may be sent
// masked or as plain digits.
type ClientRequest struct {
	Name          string                `json:"name" binding:"required"`
	Document      string                `json:"document" binding:"required"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	Street        string                `json:"street"`
	Number        string                `json:"number"`
	Complement    string                `json:"complement"`
	Neighborhood  string                `json:"neighborhood"`
	City          string                `json:"city"`
	State         string                `json:"state"`
	ZipCode       string                `json:"zip_code"`
	Mayor         string                `json:"mayor"`
	Party         string                `json:"party"`
	MayorPhone    string                `json:"mayor_phone"`
	ClientFactors []ClientFactorRequest `json:"client_factors" binding:"dive"`
	Observations  string                `json:"observations"`
}

func (r ClientRequest) ToInput() usecase.ClientInput {
	return usecase.ClientInput{
		Name:          r.Name,
		Document:      r.Document,
		Email:         r.Email,
		Phone:         r.Phone,
		Street:        r.Street,
		Number:        r.Number,
		Complement:    r.Complement,
		Neighborhood:  r.Neighborhood,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		Mayor:         r.Mayor,
		Party:         r.Party,
		MayorPhone:    r.MayorPhone,
		ClientFactors: toClientFactors(r.ClientFactors),
		Observations:  r.Observations,
	}
}

// UpdateClientRequest is the body of PATCH /clients/:id.
type UpdateClientRequest struct {
	Name          *string                `json:"name"`
	Document      *string                `json:"document"`
	Email         *string                `json:"email"`
	Phone         *string                `json:"phone"`
	Street        *string                `json:"street"`
	Number        *string                `json:"number"`
	Complement    *string                `json:"complement"`
	Neighborhood  *string                `json:"neighborhood"`
	City          *string                `json:"city"`
	State         *string                `json:"state"`
	ZipCode       *string                `json:"zip_code"`
	Mayor         *string                `json:"mayor"`
	Party         *string                `json:"party"`
	MayorPhone    *string                `json:"mayor_phone"`
	ClientFactors *[]ClientFactorRequest `json:"client_factors" binding:"omitempty,dive"`
	Observations  *string                `json:"observations"`
}

func (r UpdateClientRequest) ToPatch() usecase.ClientPatch {
	p := usecase.ClientPatch{
		Name:         r.Name,
		Document:     r.Document,
		Email:        r.Email,
		Phone:        r.Phone,
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Mayor:        r.Mayor,
		Party:        r.Party,
		MayorPhone:   r.MayorPhone,
		Observations: r.Observations,
	}
	if r.ClientFactors != nil {
		cfs := toClientFactors(*r.ClientFactors)
		p.ClientFactors = &cfs
	}
	return p
}
