// Package checkout holds the cart and checkout rules the storefront applies
// before an order is submitted. The server reuses the same rules to re-check
// what clients send.
package checkout

import (
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the part of a product a cart line remembers.
type ProductSnapshot struct {
	ID    uint    `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// SnapshotOf captures p for a cart line.
func SnapshotOf(p models.Product) ProductSnapshot {
	return ProductSnapshot{ID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image}
}

type Line struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart maps product id to a line. The zero value is ready to use.
// A Cart is not safe for concurrent use.
type Cart struct {
	lines map[uint]*Line
	order []uint
}

// Add puts qty units of p in the cart, merging with an existing line.
// Non-positive quantities count as 1.
func (c *Cart) Add(p ProductSnapshot, qty int) {
	if qty < 1 {
		qty = 1
	}
	if c.lines == nil {
		c.lines = map[uint]*Line{}
	}
	if line, ok := c.lines[p.ID]; ok {
		line.Quantity += qty
		return
	}
	c.lines[p.ID] = &Line{Product: p, Quantity: qty}
	c.order = append(c.order, p.ID)
}

// SetQuantity sets an exact quantity; anything below 1 removes the line.
func (c *Cart) SetQuantity(id uint, qty int) {
	line, ok := c.lines[id]
	if !ok {
		return
	}
	if qty < 1 {
		c.Remove(id)
		return
	}
	line.Quantity = qty
}

// Decrement lowers the quantity by one; at 1 the line is removed instead.
func (c *Cart) Decrement(id uint) {
	line, ok := c.lines[id]
	if !ok {
		return
	}
	c.SetQuantity(id, line.Quantity-1)
}

func (c *Cart) Remove(id uint) {
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
	c.order = nil
}

// Lines returns copies of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Count is the total number of units.
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Total is the sum of price × quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	return ItemsTotal(c.Items())
}

// Items converts the cart into order item snapshots.
func (c *Cart) Items() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.order))
	for _, line := range c.Lines() {
		items = append(items, models.OrderItem{
			ID:       line.Product.ID,
			Title:    line.Product.Title,
			Price:    line.Product.Price,
			Quantity: line.Quantity,
			Image:    line.Product.Image,
		})
	}
	return items
}

// ItemsTotal sums price × quantity in decimal arithmetic, rounded to cents.
func ItemsTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2)
}
