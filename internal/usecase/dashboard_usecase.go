package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"orcamentos/internal/domain/entities"
	"orcamentos/internal/domain/pricing"
	"orcamentos/internal/usecase/interfaces"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = errors.New("invalid period")

// NoState labels orders whose client has no state.
const NoState = "N/A"

type MonthSummary struct {
	Month string // YYYY-MM
	Count int
	Total decimal.Decimal
}

type StateSummary struct {
	State string
	Count int
	Total decimal.Decimal
}

// DashboardReport summarizes the orders of a period.
//
// TotalValue only counts approved orders while TotalOrders counts all of
// them, so AverageTicket is TotalValue / TotalOrders.
type DashboardReport struct {
	Start         time.Time
	End           time.Time
	TotalOrders   int
	TotalValue    decimal.Decimal
	AverageTicket decimal.Decimal
	ByStatus      map[entities.OrderStatus]int
	ByMonth       []MonthSummary
	ByState       []StateSummary
	Orders        []entities.Order
}

type IDashboardUseCase interface {
	Report(ctx context.Context, start, end time.Time) (DashboardReport, error)
}

type DashboardUseCase struct {
	orders interfaces.IOrderRepository
}

var _ IDashboardUseCase = (*DashboardUseCase)(nil)

func NewDashboardUseCase(orders interfaces.IOrderRepository) *DashboardUseCase {
	return &DashboardUseCase{orders: orders}
}

// Report aggregates active orders dated within [start, end] (calendar days,
// both inclusive). A zero bound leaves that side open.
func (u *DashboardUseCase) Report(ctx context.Context, start, end time.Time) (DashboardReport, error) {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return DashboardReport{}, ErrInvalidPeriod
	}
	if !start.IsZero() {
		start = calendarDay(start, start)
	}
	if !end.IsZero() {
		end = calendarDay(end, end)
	}

	all, err := u.orders.List(ctx)
	if err != nil {
		return DashboardReport{}, err
	}
	orders := lo.Filter(all, func(o entities.Order, _ int) bool {
		day := calendarDay(o.Date, o.CreatedAt)
		if !start.IsZero() && day.Before(start) {
			return false
		}
		if !end.IsZero() && day.After(end) {
			return false
		}
		return !o.Deleted
	})

	approved := lo.Filter(orders, func(o entities.Order, _ int) bool {
		return o.Status == entities.OrderStatusApproved
	})
	totalValue := pricing.Round(sumTotals(approved))

	// Orders saved without a status count as drafts.
	byStatus := lo.CountValuesBy(orders, func(o entities.Order) entities.OrderStatus {
		return lo.Ternary(o.Status == "", entities.OrderStatusDraft, o.Status)
	})

	report := DashboardReport{
		Start:         start,
		End:           end,
		TotalOrders:   len(orders),
		TotalValue:    totalValue,
		AverageTicket: decimal.Zero,
		ByStatus:      byStatus,
		Orders:        orders,
	}
	if len(orders) > 0 {
		report.AverageTicket = pricing.Round(totalValue.Div(decimal.NewFromInt(int64(len(orders)))))
	}

	byMonth := lo.GroupBy(orders, func(o entities.Order) string { return o.Date.Format("2006-01") })
	for month, list := range byMonth {
		report.ByMonth = append(report.ByMonth, MonthSummary{Month: month, Count: len(list), Total: pricing.Round(sumTotals(list))})
	}
	sort.Slice(report.ByMonth, func(i, j int) bool { return report.ByMonth[i].Month < report.ByMonth[j].Month })

	byState := lo.GroupBy(orders, func(o entities.Order) string {
		if s := strings.TrimSpace(o.ClientState); s != "" {
			return s
		}
		return NoState
	})
	for state, list := range byState {
		report.ByState = append(report.ByState, StateSummary{State: state, Count: len(list), Total: pricing.Round(sumTotals(list))})
	}
	sort.Slice(report.ByState, func(i, j int) bool {
		if report.ByState[i].Count != report.ByState[j].Count {
			return report.ByState[i].Count > report.ByState[j].Count
		}
		return report.ByState[i].State < report.ByState[j].State
	})

	return report, nil
}

func sumTotals(orders []entities.Order) decimal.Decimal {
	return lo.Reduce(orders, func(acc decimal.Decimal, o entities.Order, _ int) decimal.Decimal {
		return acc.Add(o.Total)
	}, decimal.Zero)
}
