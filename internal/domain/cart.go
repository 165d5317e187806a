package domain

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// CartLine is one purchasable entry in a cart, keyed by product + size.
// Price and stock are snapshots taken at add time, not live values.
type CartLine struct {
	LineID         string        `json:"line_id"`
	ProductID      uuid.UUID     `json:"product_id"`
	Name           LocalizedText `json:"name"`
	UnitPrice      float64       `json:"unit_price"`
	Currency       string        `json:"currency"`
	Image          string        `json:"image,omitempty"`
	Quantity       int           `json:"quantity"`
	SelectedSize   string        `json:"selected_size,omitempty"`
	StockAtAddTime int           `json:"stock_at_add_time"`
	MinOrderQty    int           `json:"min_order_qty"`
}

// Cart is the per-session aggregate of cart lines. Lines keep insertion
// order; totals are recomputed on read, never cached.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddItemInput is the product snapshot passed by the caller. The cart does
// not re-fetch or validate it against the catalog.
type AddItemInput struct {
	ProductID      uuid.UUID
	Name           LocalizedText
	UnitPrice      float64
	Currency       string
	Image          string
	SelectedSize   string
	StockAtAddTime int
	MinOrderQty    int
	Quantity       int // 0 means "use the line's minimum order quantity"
}

// AddResult reports what was actually applied, so callers can surface a
// warning when the requested quantity was clamped.
type AddResult struct {
	LineID  string `json:"line_id"`
	Applied int    `json:"applied_quantity"`
	Clamped bool   `json:"clamped"`
	NewLine bool   `json:"new_line"`
}

// NewCart returns an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []CartLine{}}
}

// LineID derives the deterministic line identity from product and size.
// The length prefix keeps ("ab","c") and ("a","bc") style inputs from
// colliding the way plain concatenation would.
func LineID(productID uuid.UUID, selectedSize string) string {
	h := fnv.New64a()
	h.Write(productID[:])
	var sizeLen [4]byte
	binary.BigEndian.PutUint32(sizeLen[:], uint32(len(selectedSize)))
	h.Write(sizeLen[:])
	h.Write([]byte(selectedSize))
	return strconv.FormatUint(h.Sum64(), 16)
}

// AddItem merges the input into an existing line for the same product+size
// or appends a new line at the end. Quantities outside the line's bounds
// are clamped, never rejected; the result says whether clamping happened.
// A snapshot whose stock cannot cover the minimum order quantity is
// refused outright: no line is created, Applied is 0 and Clamped is set.
func (c *Cart) AddItem(input AddItemInput) AddResult {
	minQty := input.MinOrderQty
	if minQty < 1 {
		minQty = 1
	}

	requested := input.Quantity
	if requested <= 0 {
		requested = minQty
	}

	id := LineID(input.ProductID, input.SelectedSize)

	for i := range c.Lines {
		if c.Lines[i].LineID != id {
			continue
		}
		want := c.Lines[i].Quantity + requested
		applied := clampQuantity(want, c.Lines[i].MinOrderQty, c.Lines[i].StockAtAddTime)
		c.Lines[i].Quantity = applied
		c.touch()
		return AddResult{LineID: id, Applied: applied, Clamped: applied != want}
	}

	if input.StockAtAddTime < minQty {
		return AddResult{LineID: id, Clamped: true}
	}

	want := requested
	if want < minQty {
		want = minQty
	}
	applied := clampQuantity(want, minQty, input.StockAtAddTime)

	c.Lines = append(c.Lines, CartLine{
		LineID:         id,
		ProductID:      input.ProductID,
		Name:           input.Name,
		UnitPrice:      input.UnitPrice,
		Currency:       input.Currency,
		Image:          input.Image,
		Quantity:       applied,
		SelectedSize:   input.SelectedSize,
		StockAtAddTime: input.StockAtAddTime,
		MinOrderQty:    minQty,
	})
	c.touch()
	return AddResult{LineID: id, Applied: applied, Clamped: applied != want, NewLine: true}
}

// UpdateQuantity sets a line's quantity, clamped to its stock snapshot.
// A request below the line's minimum order quantity removes the line;
// decrementing past the floor means "take it out of the cart".
// Unknown line IDs are a no-op.
func (c *Cart) UpdateQuantity(lineID string, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].LineID != lineID {
			continue
		}
		if quantity < c.Lines[i].MinOrderQty {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.touch()
			return
		}
		c.Lines[i].Quantity = clampQuantity(quantity, c.Lines[i].MinOrderQty, c.Lines[i].StockAtAddTime)
		c.touch()
		return
	}
}

// RemoveItem deletes the matching line if present; no-op otherwise.
func (c *Cart) RemoveItem(lineID string) {
	for i := range c.Lines {
		if c.Lines[i].LineID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.touch()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.touch()
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity across lines.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// MeetsMinimum reports whether the cart total reaches the global
// minimum order value. The threshold is a business rule owned by
// configuration, not by the cart.
func (c *Cart) MeetsMinimum(threshold float64) bool {
	return c.TotalPrice() >= threshold
}

// MinimumRemaining is the amount still needed to reach the threshold,
// zero exactly when the minimum is met.
func (c *Cart) MinimumRemaining(threshold float64) float64 {
	remaining := threshold - c.TotalPrice()
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}

// clampQuantity bounds quantity to [min, max]. Callers guarantee
// min <= max: lines whose stock cannot cover the minimum never exist.
func clampQuantity(quantity, min, max int) int {
	if quantity < min {
		quantity = min
	}
	if quantity > max {
		quantity = max
	}
	return quantity
}
