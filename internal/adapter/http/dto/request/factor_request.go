package request

import (
	"orcamentos/internal/usecase"

	"github.com/shopspring/decimal"
)

type FactorSubItemRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description" binding:"required"`
	Value       decimal.Decimal `json:"value" swaggertype:"number"`
}

// FactorRequest is used both on create and on full update (PUT).
type FactorRequest struct {
	Description string                 `json:"description" binding:"required"`
	SubItems    []FactorSubItemRequest `json:"sub_items" binding:"dive"`
}

func (r FactorRequest) ToInput() usecase.FactorInput {
	in := usecase.FactorInput{Description: r.Description}
	for _, si := range r.SubItems {
		in.SubItems = append(in.SubItems, usecase.FactorSubItemInput{
			ID:          si.ID,
			Description: si.Description,
			Value:       si.Value,
		})
	}
	return in
}
