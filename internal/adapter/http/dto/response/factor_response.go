package response

import (
	"time"

	"orcamentos/internal/domain/entities"
)

type FactorSubItemResponse struct {
	ID          string  `json:"id"`
	Code        int     `json:"code"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

type FactorResponse struct {
	ID          string                  `json:"id"`
	Code        int                     `json:"code"`
	Description string                  `json:"description"`
	SubItems    []FactorSubItemResponse `json:"sub_items"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func FromFactor(f entities.Factor) FactorResponse {
	res := FactorResponse{
		ID:          f.ID,
		Code:        f.Code,
		Description: f.Description,
		SubItems:    make([]FactorSubItemResponse, 0, len(f.SubItems)),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	for _, si := range f.SubItems {
		res.SubItems = append(res.SubItems, FactorSubItemResponse{
			ID:          si.ID,
			Code:        si.Code,
			Description: si.Description,
			Value:       money(si.Value),
		})
	}
	return res
}

func FromFactors(factors []entities.Factor) []FactorResponse {
	out := make([]FactorResponse, 0, len(factors))
	for _, f := range factors {
		out = append(out, FromFactor(f))
	}
	return out
}
