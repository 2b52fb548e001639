package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obakr/qayd-api/internal/domain/entity"
)

var (
	// ErrInvalidIndex is returned when a line index is out of range
	ErrInvalidIndex = errors.New("cart: line index out of range")
	// ErrEmptyCart is returned when an operation requires at least one line
	ErrEmptyCart = errors.New("cart: cart is empty")
)

// Line is a single product line in a cart. Amounts are recomputed from
// quantity, unit price and VAT rate on every mutation; they are never
// edited directly.
type Line struct {
	ProductID  uuid.UUID
	Name       string
	NameArabic string
	UnitPrice  decimal.Decimal
	VATRate    decimal.Decimal
	Quantity   int
	LineTotal  decimal.Decimal
	VATAmount  decimal.Decimal
	Total      decimal.Decimal
}

// Totals holds the cart-level sums displayed at the POS and written to
// the invoice at settlement.
type Totals struct {
	SubTotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
}

// Cart is an in-memory working document for one register session. It is
// not safe for concurrent use; the owning session serializes access.
type Cart struct {
	lines  []Line
	totals Totals
}

// New returns an empty cart
func New() *Cart {
	return &Cart{totals: zeroTotals()}
}

func zeroTotals() Totals {
	return Totals{
		SubTotal:  decimal.Zero,
		VATAmount: decimal.Zero,
		Total:     decimal.Zero,
	}
}

// Lines returns a copy of the cart lines
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Totals returns the current cart-level sums
func (c *Cart) Totals() Totals {
	return c.totals
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// AddProduct adds one unit of the product. If a line for the same product
// already exists its quantity is incremented instead of opening a new line.
func (c *Cart) AddProduct(p *entity.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			c.recalculate()
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID:  p.ID,
		Name:       p.Name,
		NameArabic: p.NameArabic,
		UnitPrice:  decimal.NewFromFloat(p.UnitPrice),
		VATRate:    decimal.NewFromFloat(p.VATRate),
		Quantity:   1,
	})
	c.recalculate()
}

// UpdateQuantity sets the quantity of the line at index. A quantity of zero
// or less removes the line.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrInvalidIndex
	}
	if quantity <= 0 {
		return c.RemoveLine(index)
	}
	c.lines[index].Quantity = quantity
	c.recalculate()
	return nil
}

// RemoveLine deletes the line at index
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrInvalidIndex
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	c.recalculate()
	return nil
}

// Reset empties the cart
func (c *Cart) Reset() {
	c.lines = nil
	c.totals = zeroTotals()
}

// Clone returns an independent copy of the cart
func (c *Cart) Clone() *Cart {
	clone := &Cart{
		lines:  make([]Line, len(c.lines)),
		totals: c.totals,
	}
	copy(clone.lines, c.lines)
	return clone
}

// Negate flips the sign of every line quantity so the derived amounts
// mirror the original sale. Used to build refund documents.
func (c *Cart) Negate() {
	for i := range c.lines {
		c.lines[i].Quantity = -c.lines[i].Quantity
	}
	c.recalculate()
}

// recalculate derives per-line amounts and cart totals from quantity, unit
// price and VAT rate. Line total is quantity times unit price; VAT is the
// line total times rate over one hundred; line grand total includes VAT.
func (c *Cart) recalculate() {
	totals := zeroTotals()
	hundred := decimal.NewFromInt(100)
	for i := range c.lines {
		l := &c.lines[i]
		l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		l.VATAmount = l.LineTotal.Mul(l.VATRate).Div(hundred)
		l.Total = l.LineTotal.Add(l.VATAmount)

		totals.SubTotal = totals.SubTotal.Add(l.LineTotal)
		totals.VATAmount = totals.VATAmount.Add(l.VATAmount)
		totals.Total = totals.Total.Add(l.Total)
	}
	c.totals = totals
}
