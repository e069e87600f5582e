package response

import (
	"testing"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromOrder(t *testing.T) {
	o := entities.Order{
		ID:             "order-1",
		Code:           "000007",
		ClientDocument: "11222333000181",
		Date:           time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items: []entities.OrderItem{{
			ID:        "item-1",
			Quantity:  decimal.RequireFromString("2.5"),
			UnitPrice: decimal.NewFromInt(165),
			Total:     decimal.RequireFromString("412.5"),
			Factor:    &entities.AppliedFactor{FactorID: "factor-1", Value: decimal.NewFromInt(10), BaseUnitPrice: decimal.NewFromInt(150)},
		}},
		Subtotal: decimal.RequireFromString("412.5"),
		Total:    decimal.RequireFromString("412.5"),
		Status:   entities.OrderStatusDraft,
	}

	res := FromOrder(o)
	if res.Date != "2025-04-01" || res.ClientDocument != "11.222.333/0001-81" {
		t.Fatalf("unexpected header: %+v", res)
	}
	if res.Items[0].Total != 412.5 || res.Items[0].Factor == nil || res.Items[0].Factor.BaseUnitPrice != 150 {
		t.Fatalf("unexpected item: %+v", res.Items[0])
	}
}

func TestFromClient(t *testing.T) {
	res := FromClient(entities.Client{ID: "c-1", Document: "11222333000181", Phone: "31999998888", MayorPhone: "3133334444"})
	if res.Document != "11.222.333/0001-81" || res.Phone != "(31)99999-8888" || res.MayorPhone != "(31)3333-4444" {
		t.Fatalf("unexpected formatting: %+v", res)
	}
	if res.ClientFactors == nil {
		t.Fatalf("client factors must serialize as an empty list")
	}
}

func TestFromDashboard(t *testing.T) {
	res := FromDashboard(usecase.DashboardReport{
		Start:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalOrders:   2,
		TotalValue:    decimal.NewFromInt(300),
		AverageTicket: decimal.NewFromInt(150),
		ByStatus:      map[entities.OrderStatus]int{entities.OrderStatusApproved: 2},
		ByMonth:       []usecase.MonthSummary{{Month: "2025-01", Count: 2, Total: decimal.NewFromInt(300)}},
	})
	if res.Start != "2025-01-01" || res.End != "" {
		t.Fatalf("unexpected period: %+v", res)
	}
	if res.OrdersByStatus["approved"] != 2 || res.OrdersByMonth[0].Total != 300 || res.AverageTicket != 150 {
		t.Fatalf("unexpected aggregates: %+v", res)
	}
}
