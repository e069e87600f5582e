package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle of an order (orçamento).
type OrderStatus string

const (
	OrderStatusDraft    OrderStatus = "draft"
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusCanceled OrderStatus = "canceled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPending, OrderStatusApproved, OrderStatusCanceled:
		return true
	}
	return false
}

// OrderCodeWidth is the zero-padded width of Order.Code ("000001").
const OrderCodeWidth = 6

// Order is the budget/quote persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - code is assigned once, at creation, from the "orders" counter
//
// Client fields are denormalized at creation so listings and exports do not
// need to resolve the client again.
type Order struct {
	ID             string
	Code           string
	ClientID       string
	ClientName     string
	ClientDocument string
	ClientCity     string
	ClientState    string
	Date           time.Time
	Items          []OrderItem
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	Status         OrderStatus
	Observations   string
	Deleted        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem is a priced line of an order.
//
// Code, Description, Unit and UnitPrice are a snapshot of the catalog taken
// when the item was added: later catalog edits never change a stored order.
type OrderItem struct {
	ID           string
	ServiceID    string
	SubServiceID string
	Code         string
	Description  string
	Unit         string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	Observations string
	Factor       *AppliedFactor
}

// AppliedFactor records the correction factor used to price an item.
type AppliedFactor struct {
	FactorID      string
	FactorCode    int
	SubItemID     string
	SubItemCode   int
	Description   string
	Value         decimal.Decimal
	BaseUnitPrice decimal.Decimal
}
