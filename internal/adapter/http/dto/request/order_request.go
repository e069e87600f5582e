package request

import (
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ID           string          `json:"id"`
	ServiceID    string          `json:"service_id" binding:"required"`
	SubServiceID string          `json:"sub_service_id"`
	Quantity     decimal.Decimal `json:"quantity" swaggertype:"number"`
	Observations string          `json:"observations"`
	FactorID     string          `json:"factor_id"`
}

func (r OrderItemRequest) toInput() usecase.OrderItemInput {
	return usecase.OrderItemInput{
		ID:           r.ID,
		ServiceID:    r.ServiceID,
		SubServiceID: r.SubServiceID,
		Quantity:     r.Quantity,
		Observations: r.Observations,
		FactorID:     r.FactorID,
	}
}

func toItemInputs(items []OrderItemRequest) []usecase.OrderItemInput {
	out := make([]usecase.OrderItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, it.toInput())
	}
	return out
}

// CreateOrderRequest is the body of POST /orders. Prices and totals are never
// accepted from the caller.
type CreateOrderRequest struct {
	ClientID     string             `json:"client_id" binding:"required"`
	Date         string             `json:"date"`
	Items        []OrderItemRequest `json:"items" binding:"dive"`
	Discount     decimal.Decimal    `json:"discount" swaggertype:"number"`
	Status       string             `json:"status"`
	Observations string             `json:"observations"`
}

// ToInput falls back to today (UTC) when no date is sent.
func (r CreateOrderRequest) ToInput() (usecase.CreateOrderInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return usecase.CreateOrderInput{}, err
	}
	if date.IsZero() {
		now := time.Now().UTC()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return usecase.CreateOrderInput{
		ClientID:     r.ClientID,
		Date:         date,
		Items:        toItemInputs(r.Items),
		Discount:     r.Discount,
		Status:       entities.OrderStatus(r.Status),
		Observations: r.Observations,
	}, nil
}

// UpdateOrderRequest is the body of PATCH /orders/:id. Omitted fields are kept.
type UpdateOrderRequest struct {
	ClientID     *string             `json:"client_id"`
	Date         *string             `json:"date"`
	Items        *[]OrderItemRequest `json:"items" binding:"omitempty,dive"`
	Discount     *decimal.Decimal    `json:"discount" swaggertype:"number"`
	Status       *string             `json:"status"`
	Observations *string             `json:"observations"`
}

func (r UpdateOrderRequest) ToInput() (usecase.UpdateOrderInput, error) {
	in := usecase.UpdateOrderInput{
		ClientID:     r.ClientID,
		Observations: r.Observations,
	}
	if r.Date != nil {
		date, err := ParseDate(*r.Date)
		if err != nil {
			return usecase.UpdateOrderInput{}, err
		}
		if date.IsZero() {
			return usecase.UpdateOrderInput{}, ErrInvalidDate
		}
		in.Date = &date
	}
	if r.Items != nil {
		items := toItemInputs(*r.Items)
		in.Items = &items
	}
	in.Discount = r.Discount
	if r.Status != nil {
		s := entities.OrderStatus(*r.Status)
		in.Status = &s
	}
	return in, nil
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
