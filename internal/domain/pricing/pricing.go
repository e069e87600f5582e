// Package pricing computes order line totals, subtotal and total.
//
// All amounts are decimals rounded to MoneyPlaces (half away from zero) at the
// line, subtotal and total level. The invariants kept by every function are:
//
//	item.Total = item.Quantity * item.UnitPrice
//	subtotal   = Σ item.Total
//	total      = subtotal - discount
package pricing

import (
	"errors"
	"fmt"

	"orcamentos/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const MoneyPlaces = 2

var (
	ErrNegativeQuantity        = errors.New("quantity must be >= 0")
	ErrNegativeUnitPrice       = errors.New("unit price must be >= 0")
	ErrNegativeDiscount        = errors.New("discount must be >= 0")
	ErrDiscountExceedsSubtotal = errors.New("discount exceeds subtotal")
	ErrItemNotFound            = errors.New("order item not found")
)

// Totals is the priced summary of a list of items.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(quantity.Mul(unitPrice))
}

func Subtotal(items []entities.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(LineTotal(it.Quantity, it.UnitPrice))
	}
	return Round(sum)
}

func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Sub(discount))
}

// Recalculate validates items and discount and returns a copy of items with
// Total recomputed, plus the order totals. It is the server-side check run
// before any order is persisted; submitted totals are never trusted.
func Recalculate(items []entities.OrderItem, discount decimal.Decimal) ([]entities.OrderItem, Totals, error) {
	if discount.IsNegative() {
		return nil, Totals{}, ErrNegativeDiscount
	}

	out := make([]entities.OrderItem, len(items))
	for i, it := range items {
		if err := validateItem(it); err != nil {
			return nil, Totals{}, fmt.Errorf("item[%d]: %w", i, err)
		}
		it.Total = LineTotal(it.Quantity, it.UnitPrice)
		out[i] = it
	}

	subtotal := Subtotal(out)
	discount = Round(discount)
	if discount.GreaterThan(subtotal) {
		return nil, Totals{}, ErrDiscountExceedsSubtotal
	}

	return out, Totals{Subtotal: subtotal, Discount: discount, Total: Total(subtotal, discount)}, nil
}

// ApplyFactor raises unitPrice by percent (e.g. 10 => +10%).
func ApplyFactor(unitPrice, percent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return Round(unitPrice.Mul(hundred.Add(percent)).Div(hundred))
}

func validateItem(it entities.OrderItem) error {
	if it.Quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	if it.UnitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	return nil
}
