package pricing

import (
	"fmt"
	"math/rand"
	"testing"

	"orcamentos/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(id, serviceID, qty, price string) entities.OrderItem {
	return entities.OrderItem{ID: id, ServiceID: serviceID, Quantity: dec(qty), UnitPrice: dec(price)}
}

func TestRecalculate_Example(t *testing.T) {
	items, totals, err := Recalculate([]entities.OrderItem{item("i1", "s1", "10", "150.00")}, dec("100.00"))
	require.NoError(t, err)

	assert.True(t, items[0].Total.Equal(dec("1500")))
	assert.True(t, totals.Subtotal.Equal(dec("1500.00")))
	assert.True(t, totals.Discount.Equal(dec("100")))
	assert.True(t, totals.Total.Equal(dec("1400.00")))
}

func TestRecalculate_IgnoresSubmittedTotals(t *testing.T) {
	bogus := item("i1", "s1", "2", "10")
	bogus.Total = dec("999")

	items, totals, err := Recalculate([]entities.OrderItem{bogus}, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "20", items[0].Total.String())
	assert.Equal(t, "20", totals.Total.String())
	assert.Equal(t, "999", bogus.Total.String(), "input must not be mutated")
}

func TestRecalculate_Rounding(t *testing.T) {
	items, totals, err := Recalculate([]entities.OrderItem{
		item("i1", "s1", "1.333", "10.00"),
		item("i2", "s1", "0.5", "0.05"),
	}, dec("0.004"))
	require.NoError(t, err)

	assert.Equal(t, "13.33", items[0].Total.StringFixed(2))
	assert.Equal(t, "0.03", items[1].Total.StringFixed(2))
	assert.Equal(t, "13.36", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "13.36", totals.Total.StringFixed(2))
}

func TestRecalculate_Validation(t *testing.T) {
	_, _, err := Recalculate([]entities.OrderItem{item("i1", "s1", "-1", "10")}, decimal.Zero)
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, _, err = Recalculate([]entities.OrderItem{item("i1", "s1", "1", "-10")}, decimal.Zero)
	assert.ErrorIs(t, err, ErrNegativeUnitPrice)

	_, _, err = Recalculate([]entities.OrderItem{item("i1", "s1", "1", "10")}, dec("-1"))
	assert.ErrorIs(t, err, ErrNegativeDiscount)

	_, _, err = Recalculate([]entities.OrderItem{item("i1", "s1", "1", "10")}, dec("10.01"))
	assert.ErrorIs(t, err, ErrDiscountExceedsSubtotal)

	_, totals, err := Recalculate(nil, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, totals.Total.IsZero())
}

func TestApplyFactor(t *testing.T) {
	assert.Equal(t, "385.00", ApplyFactor(dec("350"), dec("10")).StringFixed(2))
	assert.Equal(t, "350.00", ApplyFactor(dec("350"), decimal.Zero).StringFixed(2))
	assert.Equal(t, "315.00", ApplyFactor(dec("350"), dec("-10")).StringFixed(2))
	assert.Equal(t, "112.35", ApplyFactor(dec("99.99"), dec("12.36")).StringFixed(2))
}

func TestSheet_Operations(t *testing.T) {
	s, err := NewSheet([]entities.OrderItem{item("a", "s1", "10", "150")}, dec("100"))
	require.NoError(t, err)
	assert.Equal(t, "1400", s.Total().String())

	require.NoError(t, s.Add(item("b", "s2", "0", "300"), item("c", "s2", "2", "250")))
	assert.Equal(t, "2000", s.Subtotal().String())

	require.NoError(t, s.SetQuantity("b", dec("1")))
	assert.Equal(t, "2300", s.Subtotal().String())
	assert.Equal(t, "2200", s.Total().String())

	assert.Equal(t, 2, s.RemoveService("s2"))
	assert.Len(t, s.Items(), 1)
	assert.Equal(t, "1500", s.Subtotal().String())

	require.NoError(t, s.SetDiscount(dec("0")))
	assert.Equal(t, "1500", s.Total().String())

	require.NoError(t, s.Remove("a"))
	assert.True(t, s.Subtotal().IsZero())

	assert.ErrorIs(t, s.Remove("a"), ErrItemNotFound)
	assert.ErrorIs(t, s.SetQuantity("a", dec("1")), ErrItemNotFound)
	assert.ErrorIs(t, s.SetQuantity("a", dec("-1")), ErrNegativeQuantity)
	assert.ErrorIs(t, s.SetDiscount(dec("-1")), ErrNegativeDiscount)
}

func TestSheet_TotalsRejectsDiscountAboveSubtotal(t *testing.T) {
	s, err := NewSheet([]entities.OrderItem{item("a", "s1", "1", "50")}, dec("40"))
	require.NoError(t, err)
	require.NoError(t, s.Remove("a"))

	assert.Equal(t, "-40", s.Total().String())
	_, _, err = s.Totals()
	assert.ErrorIs(t, err, ErrDiscountExceedsSubtotal)
}

// Random add/remove/quantity/discount sequences must always keep
// subtotal = Σ qty*price and total = subtotal - discount.
func TestSheet_InvariantsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randAmount := func(max int) decimal.Decimal {
		return decimal.New(int64(rng.Intn(max*100)), -2)
	}

	for run := 0; run < 200; run++ {
		s, err := NewSheet(nil, decimal.Zero)
		require.NoError(t, err)
		next := 0

		for step := 0; step < 40; step++ {
			items := s.Items()
			switch op := rng.Intn(5); {
			case op == 0 || len(items) == 0:
				next++
				require.NoError(t, s.Add(entities.OrderItem{
					ID:        fmt.Sprintf("i%d", next),
					ServiceID: fmt.Sprintf("s%d", rng.Intn(3)),
					Quantity:  randAmount(50),
					UnitPrice: randAmount(500),
				}))
			case op == 1:
				require.NoError(t, s.Remove(items[rng.Intn(len(items))].ID))
			case op == 2:
				require.NoError(t, s.SetQuantity(items[rng.Intn(len(items))].ID, randAmount(50)))
			case op == 3:
				require.NoError(t, s.SetDiscount(randAmount(100)))
			default:
				s.RemoveService(fmt.Sprintf("s%d", rng.Intn(3)))
			}

			expected := decimal.Zero
			for _, it := range s.Items() {
				line := it.Quantity.Mul(it.UnitPrice).Round(MoneyPlaces)
				require.True(t, it.Total.Equal(line), "line total drifted")
				expected = expected.Add(line)
			}
			require.True(t, s.Subtotal().Equal(expected), "subtotal drifted at run %d step %d", run, step)
			require.True(t, s.Total().Equal(s.Subtotal().Sub(s.Discount())), "total drifted at run %d step %d", run, step)
		}
	}
}
