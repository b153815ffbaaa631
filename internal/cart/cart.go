// Package cart holds the client-side view of what the user intends to buy.
// State is session-scoped and in-memory; the backend stays authoritative
// for stock and pricing, the store only enforces the ceilings it snapshot
// at add time.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/relove-market/storefront/internal/errors"
	"github.com/relove-market/storefront/pkg/request"
)

// Key identifies a cart line. Lines are keyed by (product, size, color),
// not by variant id: VariantID rides along for checkout submission only.
// Should the backend ever sell two variants of one product with an
// identical size/color pair this key is ambiguous; kept as-is to match
// the deployed behavior.
type Key struct {
	Size      string
	Color     string
	ProductID int64
}

// Item is a line candidate without quantity. Quantity is implied 1 on
// first add.
type Item struct {
	Name       string
	ImageUrl   string
	Size       string
	Color      string
	UnitPrice  decimal.Decimal
	ProductID  int64
	VariantID  int64
	StockLimit int
}

func (i Item) Key() Key {
	return Key{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

// Line is one purchasable configuration in the cart.
type Line struct {
	Name       string
	ImageUrl   string
	Size       string
	Color      string
	UnitPrice  decimal.Decimal
	ProductID  int64
	VariantID  int64
	Quantity   int
	StockLimit int
}

func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store is the cart. One instance is owned by the application root and
// passed by reference to consumers; the mutex linearizes mutations.
// Every mutation is all-or-nothing and
// ends with the aggregates recomputed from the line slice, never
// incrementally adjusted.
type Store struct {
	mu       sync.Mutex
	lines    []Line
	count    int
	subtotal decimal.Decimal
}

func NewStore() *Store {
	return &Store{subtotal: decimal.Zero}
}

// AddLine inserts a new line with quantity 1, or increments the matching
// line. Incrementing past the stock snapshot is rejected with
// ErrStockExceeded, not clamped.
func (s *Store) AddLine(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	for i, line := range s.lines {
		if line.Key() != key {
			continue
		}
		if line.Quantity >= line.StockLimit {
			return errors.ErrStockExceeded
		}
		s.lines[i].Quantity++
		s.recompute()
		return nil
	}

	if item.StockLimit < 1 {
		return errors.ErrStockExceeded
	}
	s.lines = append(s.lines, Line{
		Name:       item.Name,
		ImageUrl:   item.ImageUrl,
		Size:       item.Size,
		Color:      item.Color,
		UnitPrice:  item.UnitPrice,
		ProductID:  item.ProductID,
		VariantID:  item.VariantID,
		Quantity:   1,
		StockLimit: item.StockLimit,
	})
	s.recompute()
	return nil
}

// SetQuantity sets a line's quantity exactly. Out-of-range targets and
// unknown keys are rejected with ErrInvalidQuantity and leave the cart
// untouched.
func (s *Store) SetQuantity(key Key, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Key() != key {
			continue
		}
		if quantity < 1 || quantity > line.StockLimit {
			return errors.ErrInvalidQuantity
		}
		s.lines[i].Quantity = quantity
		s.recompute()
		return nil
	}
	return errors.ErrInvalidQuantity
}

// RemoveLine removes the line matching key. Removing an absent key is a
// no-op, not an error.
func (s *Store) RemoveLine(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.Key() != key {
			continue
		}
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		s.recompute()
		return
	}
}

// Clear empties the cart. Called after successful order placement.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.recompute()
}

// Lines returns a snapshot copy; callers cannot splice internal state.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Line, len(s.lines))
	copy(snapshot, s.lines)
	return snapshot
}

// Count is the badge number: the sum of all line quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotal
}

// CheckoutItems maps the cart to the order submission payload. Checkout
// is the one place the variant id matters.
func (s *Store) CheckoutItems() []request.OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]request.OrderItem, len(s.lines))
	for i, line := range s.lines {
		items[i] = request.OrderItem{
			ProductVariantID: line.VariantID,
			Quantity:         line.Quantity,
		}
	}
	return items
}

// recompute derives count and subtotal from the line slice. Caller holds
// the lock.
func (s *Store) recompute() {
	count := 0
	subtotal := decimal.Zero
	for _, line := range s.lines {
		count += line.Quantity
		subtotal = subtotal.Add(line.LineTotal())
	}
	s.count = count
	s.subtotal = subtotal
}
