// Package cart holds the in-progress basket of a session: ordered lines,
// unique by product, each with quantity of at least 1.
package cart

import (
	"errors"
	"math"
	"sync"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps a single line; it also keeps line totals far from
// int64 overflow.
const MaxLineQuantity = 99

var (
	ErrInvalidQuantity = errors.New("quantity must be between 0 and 99")
	ErrCoinsOverflow   = errors.New("coin total out of range")
)

// Item is the product snapshot taken when a product is first added.
type Item struct {
	ProductID    uint            `json:"productId"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	UnitCoins    int64           `json:"unitCoins"`
	RestaurantID uint            `json:"restaurantId"`
	ImageRef     string          `json:"imageRef"`
}

type Line struct {
	Item
	Quantity int `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) Coins() int64 {
	return l.UnitCoins * int64(l.Quantity)
}

// Cart is safe for concurrent use. Each method is atomic with respect to
// the others.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart { return &Cart{} }

func (c *Cart) indexOf(productID uint) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges into an existing line for the same product, otherwise appends
// a new line with quantity 1. A full line is left unchanged.
func (c *Cart) Add(it Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(it.ProductID); i >= 0 {
		return c.bump(i)
	}
	c.lines = append(c.lines, Line{Item: it, Quantity: 1})
	return nil
}

// Increase is a no-op when the product is not in the cart.
func (c *Cart) Increase(productID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		return c.bump(i)
	}
	return nil
}

func (c *Cart) bump(i int) error {
	if c.lines[i].Quantity >= MaxLineQuantity {
		return ErrInvalidQuantity
	}
	c.lines[i].Quantity++
	return nil
}

// Decrease removes the line instead of letting it reach 0.
func (c *Cart) Decrease(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity <= 1 {
		c.removeAt(i)
		return
	}
	c.lines[i].Quantity--
}

func (c *Cart) Remove(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
}

// SetQuantity treats 0 as removal. Unknown products are ignored.
func (c *Cart) SetQuantity(productID uint, qty int) error {
	if qty < 0 || qty > MaxLineQuantity {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return nil
	}
	if qty == 0 {
		c.removeAt(i)
		return nil
	}
	c.lines[i].Quantity = qty
	return nil
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool { return c.Len() == 0 }

// RestaurantID of the first line, 0 for an empty cart.
func (c *Cart) RestaurantID() uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return 0
	}
	return c.lines[0].RestaurantID
}

func (c *Cart) ItemCount() int {
	return ItemCount(c.Lines())
}

func (c *Cart) TotalPrice() decimal.Decimal {
	return TotalPrice(c.Lines())
}

func (c *Cart) TotalCoins() int64 {
	return TotalCoins(c.Lines())
}

func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func TotalPrice(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func TotalCoins(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Coins()
	}
	return total
}

// CheckedTotalCoins is TotalCoins for checkout: negative unit coins or an
// int64 overflow yield ErrCoinsOverflow instead of a wrapped sum.
func CheckedTotalCoins(lines []Line) (int64, error) {
	var total int64
	for _, l := range lines {
		if l.UnitCoins < 0 || l.Quantity < 0 {
			return 0, ErrCoinsOverflow
		}
		q := int64(l.Quantity)
		if q != 0 && l.UnitCoins > math.MaxInt64/q {
			return 0, ErrCoinsOverflow
		}
		sub := l.UnitCoins * q
		if total > math.MaxInt64-sub {
			return 0, ErrCoinsOverflow
		}
		total += sub
	}
	return total, nil
}
