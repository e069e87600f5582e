package pricing

import (
	"errors"

	"orcamentos/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrFactorNotAllowed      = errors.New("factor not allowed for sub-service")
	ErrClientFactorMissing   = errors.New("client has no value for factor")
	ErrFactorSubItemNotFound = errors.New("factor sub-item not found")
)

// ResolveFactor returns the factor sub-item that applies when pricing sub for
// client. The sub-service must list the factor in its allow-list and the
// client must have picked one of the factor's sub-items.
func ResolveFactor(sub entities.SubService, client entities.Client, factor entities.Factor) (entities.FactorSubItem, error) {
	if !sub.AllowsFactor(factor.ID) {
		return entities.FactorSubItem{}, ErrFactorNotAllowed
	}
	selection, ok := client.FactorSelection(factor.ID)
	if !ok {
		return entities.FactorSubItem{}, ErrClientFactorMissing
	}
	subItem, ok := factor.SubItem(selection.SubItemID)
	if !ok {
		return entities.FactorSubItem{}, ErrFactorSubItemNotFound
	}
	return subItem, nil
}

// PriceWithFactor prices sub with the client's value for factor and returns
// the adjusted unit price and the snapshot to store on the item.
func PriceWithFactor(sub entities.SubService, client entities.Client, factor entities.Factor) (decimal.Decimal, *entities.AppliedFactor, error) {
	subItem, err := ResolveFactor(sub, client, factor)
	if err != nil {
		return decimal.Zero, nil, err
	}
	applied := &entities.AppliedFactor{
		FactorID:      factor.ID,
		FactorCode:    factor.Code,
		SubItemID:     subItem.ID,
		SubItemCode:   subItem.Code,
		Description:   subItem.Description,
		Value:         subItem.Value,
		BaseUnitPrice: sub.UnitPrice,
	}
	return ApplyFactor(sub.UnitPrice, subItem.Value), applied, nil
}
