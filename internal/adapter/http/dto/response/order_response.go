package response

import (
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/pkg"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type AppliedFactorResponse struct {
	FactorID      string  `json:"factor_id"`
	FactorCode    int     `json:"factor_code"`
	SubItemID     string  `json:"sub_item_id"`
	SubItemCode   int     `json:"sub_item_code"`
	Description   string  `json:"description"`
	Value         float64 `json:"value"`
	BaseUnitPrice float64 `json:"base_unit_price"`
}

type OrderItemResponse struct {
	ID           string                 `json:"id"`
	ServiceID    string                 `json:"service_id"`
	SubServiceID string                 `json:"sub_service_id,omitempty"`
	Code         string                 `json:"code"`
	Description  string                 `json:"description"`
	Unit         string                 `json:"unit"`
	Quantity     float64                `json:"quantity"`
	UnitPrice    float64                `json:"unit_price"`
	Total        float64                `json:"total"`
	Observations string                 `json:"observations,omitempty"`
	Factor       *AppliedFactorResponse `json:"factor,omitempty"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	Code           string              `json:"code"`
	ClientID       string              `json:"client_id"`
	ClientName     string              `json:"client_name"`
	ClientDocument string              `json:"client_document"`
	ClientCity     string              `json:"client_city"`
	ClientState    string              `json:"client_state"`
	Date           string              `json:"date"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       float64             `json:"subtotal"`
	Discount       float64             `json:"discount"`
	Total          float64             `json:"total"`
	Status         string              `json:"status"`
	Observations   string              `json:"observations"`
	Deleted        bool                `json:"deleted"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func FromOrder(o entities.Order) OrderResponse {
	res := OrderResponse{
		ID:             o.ID,
		Code:           o.Code,
		ClientID:       o.ClientID,
		ClientName:     o.ClientName,
		ClientDocument: pkg.FormatDocument(o.ClientDocument),
		ClientCity:     o.ClientCity,
		ClientState:    o.ClientState,
		Items:          make([]OrderItemResponse, 0, len(o.Items)),
		Subtotal:       money(o.Subtotal),
		Discount:       money(o.Discount),
		Total:          money(o.Total),
		Status:         string(o.Status),
		Observations:   o.Observations,
		Deleted:        o.Deleted,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if !o.Date.IsZero() {
		res.Date = o.Date.UTC().Format(dateLayout)
	}
	for _, it := range o.Items {
		item := OrderItemResponse{
			ID:           it.ID,
			ServiceID:    it.ServiceID,
			SubServiceID: it.SubServiceID,
			Code:         it.Code,
			Description:  it.Description,
			Unit:         it.Unit,
			Quantity:     money(it.Quantity),
			UnitPrice:    money(it.UnitPrice),
			Total:        money(it.Total),
			Observations: it.Observations,
		}
		if f := it.Factor; f != nil {
			item.Factor = &AppliedFactorResponse{
				FactorID:      f.FactorID,
				FactorCode:    f.FactorCode,
				SubItemID:     f.SubItemID,
				SubItemCode:   f.SubItemCode,
				Description:   f.Description,
				Value:         money(f.Value),
				BaseUnitPrice: money(f.BaseUnitPrice),
			}
		}
		res.Items = append(res.Items, item)
	}
	return res
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

type DeletedCountResponse struct {
	Deleted int `json:"deleted"`
}
