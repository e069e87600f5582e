package response

import (
	"orcamentos/internal/usecase"
)

type MonthSummaryResponse struct {
	Month string  `json:"month"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type StateSummaryResponse struct {
	State string  `json:"state"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type DashboardResponse struct {
	Start          string                 `json:"start,omitempty"`
	End            string                 `json:"end,omitempty"`
	TotalOrders    int                    `json:"total_orders"`
	TotalValue     float64                `json:"total_value"`
	AverageTicket  float64                `json:"average_ticket"`
	OrdersByStatus map[string]int         `json:"orders_by_status"`
	OrdersByMonth  []MonthSummaryResponse `json:"orders_by_month"`
	OrdersByState  []StateSummaryResponse `json:"orders_by_state"`
	Orders         []OrderResponse        `json:"orders"`
}

func FromDashboard(r usecase.DashboardReport) DashboardResponse {
	res := DashboardResponse{
		TotalOrders:    r.TotalOrders,
		TotalValue:     money(r.TotalValue),
		AverageTicket:  money(r.AverageTicket),
		OrdersByStatus: make(map[string]int, len(r.ByStatus)),
		OrdersByMonth:  make([]MonthSummaryResponse, 0, len(r.ByMonth)),
		OrdersByState:  make([]StateSummaryResponse, 0, len(r.ByState)),
		Orders:         FromOrders(r.Orders),
	}
	if !r.Start.IsZero() {
		res.Start = r.Start.Format(dateLayout)
	}
	if !r.End.IsZero() {
		res.End = r.End.Format(dateLayout)
	}
	for status, n := range r.ByStatus {
		res.OrdersByStatus[string(status)] = n
	}
	for _, m := range r.ByMonth {
		res.OrdersByMonth = append(res.OrdersByMonth, MonthSummaryResponse{Month: m.Month, Count: m.Count, Total: money(m.Total)})
	}
	for _, s := range r.ByState {
		res.OrdersByState = append(res.OrdersByState, StateSummaryResponse{State: s.State, Count: s.Count, Total: money(s.Total)})
	}
	return res
}
