package book

import "fmt"

type Side int8

const (
	Buy  Side = 1
	Sell Side = 2
)

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "unknown"
}

type OrderKind int8

const (
	// GoodTillCancel rests in the book until it is fully filled or cancelled.
	GoodTillCancel OrderKind = iota

	// FillOrKill must be immediately matchable against the opposite side's
	// best price at submission time, otherwise the whole order is refused.
	// It never rests: any remainder left at the head of the book after a
	// matching pass is cancelled.
	FillOrKill
)

type (
	// OrderID is a caller-supplied identifier, unique for the lifetime of
	// the order book instance. The engine never generates IDs.
	OrderID uint64

	// Price is a signed price in ticks (minimum units of the quote currency).
	Price int64

	// Quantity is an unsigned amount in lots of the base instrument.
	Quantity uint64
)

// Order is a resident order in the book. It is created by the caller via
// NewOrder and owned by the book once submitted; after it is cancelled or
// fully filled the book releases it and the caller must not rely on it.
type Order struct {
	ID    OrderID
	Kind  OrderKind
	Side  Side
	Price Price

	initial   Quantity
	remaining Quantity

	// intrusive FIFO links inside a price level
	next *Order
	prev *Order
}

// NewOrder creates an order with its remaining quantity equal to its
// initial quantity.
func NewOrder(kind OrderKind, id OrderID, side Side, price Price, quantity Quantity) *Order {
	return &Order{
		ID:        id,
		Kind:      kind,
		Side:      side,
		Price:     price,
		initial:   quantity,
		remaining: quantity,
	}
}

func (o *Order) InitialQuantity() Quantity {
	return o.initial
}

func (o *Order) RemainingQuantity() Quantity {
	return o.remaining
}

func (o *Order) FilledQuantity() Quantity {
	return o.initial - o.remaining
}

func (o *Order) IsFilled() bool {
	return o.remaining == 0
}

// Fill reduces the order's remaining quantity by the matched quantity.
// Filling for more than the remaining quantity means the matching loop is
// broken; it panics instead of clamping so the bug cannot go unnoticed.
func (o *Order) Fill(quantity Quantity) {
	if quantity > o.remaining {
		panic(fmt.Sprintf("book: order %d cannot be filled for %d, only %d remaining", o.ID, quantity, o.remaining))
	}
	o.remaining -= quantity
}

// OrderModify carries the replacement parameters for an existing order.
// The order kind is not part of the request; a modified order keeps the
// kind it was originally submitted with.
type OrderModify struct {
	OrderID  OrderID
	Side     Side
	Price    Price
	Quantity Quantity
}

// ToOrder materializes a fresh order of the given kind from the request.
func (m OrderModify) ToOrder(kind OrderKind) *Order {
	return NewOrder(kind, m.OrderID, m.Side, m.Price, m.Quantity)
}
