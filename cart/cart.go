// Package cart holds a visitor's in-progress selection of menu items.
package cart

import (
	"cafe-ordering-api/apperr"
	"cafe-ordering-api/models"
)

// Line is one menu item in the cart. Quantity is always at least 1.
type Line struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

// LineTotal is price × quantity.
func (l Line) LineTotal() models.Money {
	return l.Item.Price * models.Money(l.Quantity)
}

// Cart keeps at most one line per menu item id, in insertion order.
// It is not safe for concurrent use; Session serializes access.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) index(itemID string) int {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			return i
		}
	}
	return -1
}

// AddItem adds one unit of item, creating the line if needed.
func (c *Cart) AddItem(item models.MenuItem) {
	if i := c.index(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// UpdateQuantity sets the quantity of a line; n <= 0 removes it.
func (c *Cart) UpdateQuantity(itemID string, n int) error {
	i := c.index(itemID)
	if n <= 0 {
		if i >= 0 {
			c.removeAt(i)
		}
		return nil
	}
	if i < 0 {
		return apperr.ErrLineNotFound
	}
	c.lines[i].Quantity = n
	return nil
}

// SetNote attaches a free-text note to a line.
func (c *Cart) SetNote(itemID, note string) error {
	i := c.index(itemID)
	if i < 0 {
		return apperr.ErrLineNotFound
	}
	c.lines[i].Note = note
	return nil
}

func (c *Cart) RemoveItem(itemID string) {
	if i := c.index(itemID); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	if len(c.lines) == 0 {
		c.lines = nil
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		l.Item.Tags = append(models.Tags(nil), l.Item.Tags...)
		out[i] = l
	}
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount is the sum of quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of price × quantity over all lines.
func (c *Cart) Subtotal() models.Money {
	var total models.Money
	for _, l := range c.lines {
		total += l.LineTotal()
	}
	return total
}
