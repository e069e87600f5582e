package request

import (
	"orcamentos/internal/usecase"

	"github.com/shopspring/decimal"
)

type GroupRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (r GroupRequest) ToInput() usecase.GroupInput {
	return usecase.GroupInput{Code: r.Code, Name: r.Name, Description: r.Description}
}

type UpdateGroupRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateGroupRequest) ToPatch() usecase.GroupPatch {
	return usecase.GroupPatch{Code: r.Code, Name: r.Name, Description: r.Description}
}

type SubServiceRequest struct {
	ID             string          `json:"id"`
	Code           string          `json:"code" binding:"required"`
	Description    string          `json:"description" binding:"required"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price" swaggertype:"number"`
	AllowedFactors []string        `json:"allowed_factors"`
}

// ServiceRequest is used on create and on full update (PUT). Sub-services
// are replaced wholesale; entries keeping their id keep their identity.
type ServiceRequest struct {
	GroupID     string              `json:"group_id" binding:"required"`
	Code        string              `json:"code" binding:"required"`
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	UnitPrice   decimal.Decimal     `json:"unit_price" swaggertype:"number"`
	SubServices []SubServiceRequest `json:"sub_services" binding:"dive"`
}

func (r ServiceRequest) ToInput() usecase.ServiceInput {
	in := usecase.ServiceInput{
		GroupID:     r.GroupID,
		Code:        r.Code,
		Title:       r.Title,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
	}
	for _, ss := range r.SubServices {
		in.SubServices = append(in.SubServices, usecase.SubServiceInput{
			ID:             ss.ID,
			Code:           ss.Code,
			Description:    ss.Description,
			Unit:           ss.Unit,
			UnitPrice:      ss.UnitPrice,
			AllowedFactors: ss.AllowedFactors,
		})
	}
	return in
}
