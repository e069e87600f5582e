package pricing

import (
	"orcamentos/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Sheet is a mutable list of order items whose totals are recomputed after
// every change, the way the order form keeps subtotal and total in sync.
//
// A Sheet may temporarily hold a discount larger than its subtotal (items
// removed after the discount was typed); Recalculate rejects that state
// before persisting.
type Sheet struct {
	items    []entities.OrderItem
	discount decimal.Decimal
	subtotal decimal.Decimal
	total    decimal.Decimal
}

func NewSheet(items []entities.OrderItem, discount decimal.Decimal) (*Sheet, error) {
	if discount.IsNegative() {
		return nil, ErrNegativeDiscount
	}
	s := &Sheet{discount: Round(discount)}
	if err := s.Add(items...); err != nil {
		return nil, err
	}
	s.recompute()
	return s, nil
}

func (s *Sheet) Add(items ...entities.OrderItem) error {
	for _, it := range items {
		if err := validateItem(it); err != nil {
			return err
		}
	}
	s.items = append(s.items, items...)
	s.recompute()
	return nil
}

func (s *Sheet) Remove(itemID string) error {
	for i, it := range s.items {
		if it.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveService drops every item of serviceID and returns how many were removed.
func (s *Sheet) RemoveService(serviceID string) int {
	kept := s.items[:0]
	removed := 0
	for _, it := range s.items {
		if it.ServiceID == serviceID {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.recompute()
	return removed
}

func (s *Sheet) SetQuantity(itemID string, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = quantity
			s.recompute()
			return nil
		}
	}
	return ErrItemNotFound
}

func (s *Sheet) SetDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return ErrNegativeDiscount
	}
	s.discount = Round(discount)
	s.recompute()
	return nil
}

func (s *Sheet) Items() []entities.OrderItem {
	out := make([]entities.OrderItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Sheet) Subtotal() decimal.Decimal { return s.subtotal }
func (s *Sheet) Discount() decimal.Decimal { return s.discount }
func (s *Sheet) Total() decimal.Decimal    { return s.total }

// Totals validates the sheet for persistence.
func (s *Sheet) Totals() ([]entities.OrderItem, Totals, error) {
	return Recalculate(s.items, s.discount)
}

func (s *Sheet) recompute() {
	for i := range s.items {
		s.items[i].Total = LineTotal(s.items[i].Quantity, s.items[i].UnitPrice)
	}
	s.subtotal = Subtotal(s.items)
	s.total = Total(s.subtotal, s.discount)
}
