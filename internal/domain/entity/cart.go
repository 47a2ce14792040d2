package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart holds a client's selected product lines awaiting conversion into
// an order. Total is a denormalized snapshot recomputed by the cart
// usecase; it is not enforced as a stored invariant.
type Cart struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	Lines          []CartLine
	DiscountCodeID *uuid.UUID
	Total          decimal.Decimal
	State          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CartLine is a single (product, quantity) entry.
type CartLine struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int

	// Product is populated when the cart is fetched with its references
	// resolved. Nil when the referenced product no longer exists; total
	// computation skips such lines instead of failing.
	Product *Product
}

// Line returns the index of the line holding productID, or -1.
func (c *Cart) Line(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}

	return -1
}

// AddLine merges quantity into an existing line for the product or
// appends a new one.
func (c *Cart) AddLine(productID uuid.UUID, quantity int) {
	if i := c.Line(productID); i >= 0 {
		c.Lines[i].Quantity += quantity

		return
	}

	c.Lines = append(c.Lines, CartLine{CartID: c.ID, ProductID: productID, Quantity: quantity})
}

// RemoveLine drops every line referencing productID. It reports whether
// anything was removed.
func (c *Cart) RemoveLine(productID uuid.UUID) bool {
	kept := c.Lines[:0]
	removed := false
	for _, line := range c.Lines {
		if line.ProductID == productID {
			removed = true

			continue
		}
		kept = append(kept, line)
	}
	c.Lines = kept

	return removed
}

// Subtotal sums quantity times price over all resolvable lines, skipping
// lines whose product reference failed to resolve.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c.Lines {
		if line.Product == nil {
			continue
		}
		sum = sum.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return sum
}
