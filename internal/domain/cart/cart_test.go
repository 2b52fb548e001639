package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obakr/qayd-api/internal/domain/entity"
)

func newProduct(name string, price, vatRate float64) *entity.Product {
	return &entity.Product{
		ID:        uuid.New(),
		Name:      name,
		UnitPrice: price,
		VATRate:   vatRate,
	}
}

func TestAddProductComputesStandardVAT(t *testing.T) {
	c := New()
	p := newProduct("Espresso", 10, 15)

	c.AddProduct(p)
	c.AddProduct(p)

	require.Equal(t, 1, c.Len(), "same product should merge into one line")
	line := c.Lines()[0]
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.LineTotal.Equal(decimal.NewFromInt(20)), "line total %s", line.LineTotal)
	assert.True(t, line.VATAmount.Equal(decimal.NewFromInt(3)), "vat %s", line.VATAmount)
	assert.True(t, line.Total.Equal(decimal.NewFromInt(23)), "total %s", line.Total)

	totals := c.Totals()
	assert.True(t, totals.SubTotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, totals.VATAmount.Equal(decimal.NewFromInt(3)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(23)))
}

func TestAddProductDistinctProductsOpenSeparateLines(t *testing.T) {
	c := New()
	c.AddProduct(newProduct("Espresso", 10, 15))
	c.AddProduct(newProduct("Water", 2, 0))

	require.Equal(t, 2, c.Len())
	totals := c.Totals()
	assert.True(t, totals.SubTotal.Equal(decimal.NewFromInt(12)))
	assert.True(t, totals.VATAmount.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(13.5)))
}

func TestZeroRatedLineCarriesNoVAT(t *testing.T) {
	c := New()
	c.AddProduct(newProduct("Medicine", 50, 0))

	line := c.Lines()[0]
	assert.True(t, line.VATAmount.IsZero())
	assert.True(t, line.Total.Equal(decimal.NewFromInt(50)))
}

func TestTotalsAreSumOfLines(t *testing.T) {
	c := New()
	products := []*entity.Product{
		newProduct("A", 3.33, 15),
		newProduct("B", 7.77, 15),
		newProduct("C", 1.01, 5),
	}
	for _, p := range products {
		c.AddProduct(p)
		c.AddProduct(p)
		c.AddProduct(p)
	}

	var sub, vat, total decimal.Decimal
	for _, l := range c.Lines() {
		sub = sub.Add(l.LineTotal)
		vat = vat.Add(l.VATAmount)
		total = total.Add(l.Total)
	}
	totals := c.Totals()
	assert.True(t, totals.SubTotal.Equal(sub))
	assert.True(t, totals.VATAmount.Equal(vat))
	assert.True(t, totals.Total.Equal(total))
	assert.True(t, totals.Total.Equal(totals.SubTotal.Add(totals.VATAmount)))
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.AddProduct(newProduct("Espresso", 10, 15))

	require.NoError(t, c.UpdateQuantity(0, 5))
	assert.Equal(t, 5, c.Lines()[0].Quantity)
	assert.True(t, c.Totals().Total.Equal(decimal.NewFromFloat(57.5)))

	// zero quantity removes the line
	require.NoError(t, c.UpdateQuantity(0, 0))
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Totals().Total.IsZero())
}

func TestUpdateQuantityInvalidIndex(t *testing.T) {
	c := New()
	c.AddProduct(newProduct("Espresso", 10, 15))

	assert.ErrorIs(t, c.UpdateQuantity(3, 1), ErrInvalidIndex)
	assert.ErrorIs(t, c.UpdateQuantity(-1, 1), ErrInvalidIndex)
}

func TestRemoveLine(t *testing.T) {
	c := New()
	c.AddProduct(newProduct("A", 10, 15))
	c.AddProduct(newProduct("B", 5, 15))

	require.NoError(t, c.RemoveLine(0))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "B", c.Lines()[0].Name)
	assert.True(t, c.Totals().SubTotal.Equal(decimal.NewFromInt(5)))

	assert.ErrorIs(t, c.RemoveLine(5), ErrInvalidIndex)
}

func TestReset(t *testing.T) {
	c := New()
	c.AddProduct(newProduct("A", 10, 15))
	c.Reset()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Totals().SubTotal.IsZero())
	assert.True(t, c.Totals().VATAmount.IsZero())
	assert.True(t, c.Totals().Total.IsZero())
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	p := newProduct("Espresso", 10, 15)
	c.AddProduct(p)
	c.AddProduct(p)

	clone := c.Clone()
	clone.Negate()

	// mutating the clone never touches the original
	assert.Equal(t, 2, c.Lines()[0].Quantity)
	assert.True(t, c.Totals().Total.Equal(decimal.NewFromInt(23)))
	assert.Equal(t, -2, clone.Lines()[0].Quantity)
	assert.True(t, clone.Totals().Total.Equal(decimal.NewFromInt(-23)))
}

func TestNegateMirrorsSale(t *testing.T) {
	c := New()
	p := newProduct("Espresso", 10, 15)
	c.AddProduct(p)
	c.AddProduct(p)
	sale := c.Totals()

	c.Negate()

	refund := c.Totals()
	assert.True(t, refund.SubTotal.Equal(sale.SubTotal.Neg()))
	assert.True(t, refund.VATAmount.Equal(sale.VATAmount.Neg()))
	assert.True(t, refund.Total.Equal(sale.Total.Neg()))
	// quantities flip; unit prices stay positive
	line := c.Lines()[0]
	assert.Equal(t, -2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(10)))

	// negating again restores the sale exactly
	c.Negate()
	assert.True(t, c.Totals().Total.Equal(sale.Total))
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestSessionStateTransitions(t *testing.T) {
	assert.True(t, StateBuilding.CanMutate())
	assert.True(t, StateFailed.CanMutate())
	assert.False(t, StateSubmitting.CanMutate())
	assert.False(t, StateSettled.CanMutate())

	assert.True(t, StateBuilding.CanSubmit())
	assert.True(t, StateFailed.CanSubmit())
	assert.False(t, StateIdle.CanSubmit())
	assert.False(t, StateSubmitting.CanSubmit())

	assert.Equal(t, "submitting", StateSubmitting.String())
}
