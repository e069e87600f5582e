package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Factor is a correction factor (fator de correção).
//
// Code comes from the "factors" counter. Sub-item codes are scoped to the
// parent: Code*100 + position.
type Factor struct {
	ID          string
	Code        int
	Description string
	SubItems    []FactorSubItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FactorSubItem struct {
	ID          string
	Code        int
	Description string
	Value       decimal.Decimal
	FactorID    string
}

func (f Factor) SubItem(id string) (FactorSubItem, bool) {
	for _, si := range f.SubItems {
		if si.ID == id {
			return si, true
		}
	}
	return FactorSubItem{}, false
}

// SubItemCode computes the code of the sub-item at 1-based position.
func SubItemCode(factorCode, position int) int {
	return factorCode*100 + position
}

// AssignCode stamps the factor with code and numbers its sub-items from it.
// Sub-items without an id get "<factorID>-subitem-<position>".
func (f *Factor) AssignCode(code int) {
	f.Code = code
	for i := range f.SubItems {
		f.SubItems[i].Code = SubItemCode(code, i+1)
		f.SubItems[i].FactorID = f.ID
		if f.SubItems[i].ID == "" {
			f.SubItems[i].ID = fmt.Sprintf("%s-subitem-%d", f.ID, i+1)
		}
	}
}

// NormalizeSubItems fills codes and ids for sub-items added by an update;
// existing codes are kept. A new sub-item gets Code*100 + position unless
// that code (or id) is already taken, in which case the next free one is used.
func (f *Factor) NormalizeSubItems() {
	usedCodes := map[int]bool{}
	usedIDs := map[string]bool{}
	for _, si := range f.SubItems {
		if si.Code != 0 {
			usedCodes[si.Code] = true
		}
		if si.ID != "" {
			usedIDs[si.ID] = true
		}
	}
	for i := range f.SubItems {
		si := &f.SubItems[i]
		if si.Code == 0 {
			pos := i + 1
			for usedCodes[SubItemCode(f.Code, pos)] {
				pos++
			}
			si.Code = SubItemCode(f.Code, pos)
			usedCodes[si.Code] = true
		}
		if si.ID == "" {
			pos := i + 1
			for usedIDs[fmt.Sprintf("%s-subitem-%d", f.ID, pos)] {
				pos++
			}
			si.ID = fmt.Sprintf("%s-subitem-%d", f.ID, pos)
			usedIDs[si.ID] = true
		}
		si.FactorID = f.ID
	}
}
