package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderFill(t *testing.T) {
	order := NewOrder(GoodTillCancel, 1, Buy, 100, 10)

	assert.Equal(t, Quantity(10), order.InitialQuantity())
	assert.Equal(t, Quantity(10), order.RemainingQuantity())
	assert.Equal(t, Quantity(0), order.FilledQuantity())
	assert.False(t, order.IsFilled())

	order.Fill(4)
	assert.Equal(t, Quantity(10), order.InitialQuantity())
	assert.Equal(t, Quantity(6), order.RemainingQuantity())
	assert.Equal(t, Quantity(4), order.FilledQuantity())
	assert.False(t, order.IsFilled())

	order.Fill(6)
	assert.Equal(t, Quantity(0), order.RemainingQuantity())
	assert.True(t, order.IsFilled())
}

func TestOrderOverfillPanics(t *testing.T) {
	order := NewOrder(GoodTillCancel, 1, Sell, 100, 5)
	order.Fill(3)

	assert.Panics(t, func() {
		order.Fill(3)
	})

	// the failed fill must not have touched the order
	assert.Equal(t, Quantity(2), order.RemainingQuantity())
}

func TestOrderModifyToOrder(t *testing.T) {
	req := OrderModify{
		OrderID:  42,
		Side:     Sell,
		Price:    101,
		Quantity: 7,
	}

	order := req.ToOrder(FillOrKill)
	assert.Equal(t, OrderID(42), order.ID)
	assert.Equal(t, FillOrKill, order.Kind)
	assert.Equal(t, Sell, order.Side)
	assert.Equal(t, Price(101), order.Price)
	assert.Equal(t, Quantity(7), order.InitialQuantity())
	assert.Equal(t, Quantity(7), order.RemainingQuantity())
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, Sell, Buy.Opposite())
	assert.Equal(t, Buy, Sell.Opposite())
}
