package book

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Instrument describes how external decimal prices and sizes map onto the
// engine's integer ticks and lots. The book itself only ever sees ticks
// and lots; this is the boundary where decimal amounts are validated.
type Instrument struct {
	Symbol   string
	TickSize decimal.Decimal // price of one tick, in quote currency
	LotSize  decimal.Decimal // size of one lot, in base currency
}

func NewInstrument(symbol string, tickSize, lotSize decimal.Decimal) (Instrument, error) {
	if symbol == "" || tickSize.LessThanOrEqual(decimal.Zero) || lotSize.LessThanOrEqual(decimal.Zero) {
		return Instrument{}, ErrInvalidParam
	}

	return Instrument{
		Symbol:   symbol,
		TickSize: tickSize,
		LotSize:  lotSize,
	}, nil
}

// PriceToTicks converts a decimal price into ticks. The price must sit
// exactly on the tick grid.
func (i Instrument) PriceToTicks(price decimal.Decimal) (Price, error) {
	if !price.Mod(i.TickSize).IsZero() {
		return 0, fmt.Errorf("%w: price %s is not a multiple of tick size %s", ErrNotAligned, price, i.TickSize)
	}

	return Price(price.Div(i.TickSize).IntPart()), nil
}

// TicksToPrice converts ticks back into a decimal price.
func (i Instrument) TicksToPrice(ticks Price) decimal.Decimal {
	return i.TickSize.Mul(decimal.NewFromInt(int64(ticks)))
}

// SizeToLots converts a decimal size into lots. The size must be positive
// and sit exactly on the lot grid.
func (i Instrument) SizeToLots(size decimal.Decimal) (Quantity, error) {
	if size.LessThanOrEqual(decimal.Zero) {
		return 0, ErrInvalidParam
	}

	if !size.Mod(i.LotSize).IsZero() {
		return 0, fmt.Errorf("%w: size %s is not a multiple of lot size %s", ErrNotAligned, size, i.LotSize)
	}

	return Quantity(size.Div(i.LotSize).IntPart()), nil
}

// LotsToSize converts lots back into a decimal size.
func (i Instrument) LotsToSize(lots Quantity) decimal.Decimal {
	return i.LotSize.Mul(decimal.NewFromUint64(uint64(lots)))
}

// BuildOrder validates decimal order parameters against the instrument
// grid and materializes an engine order.
func (i Instrument) BuildOrder(kind OrderKind, id OrderID, side Side, price, size decimal.Decimal) (*Order, error) {
	ticks, err := i.PriceToTicks(price)
	if err != nil {
		return nil, err
	}

	lots, err := i.SizeToLots(size)
	if err != nil {
		return nil, err
	}

	return NewOrder(kind, id, side, ticks, lots), nil
}

// DisplayLevel is one price level rendered in the instrument's external
// decimal units.
type DisplayLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// RenderLevels converts engine levels (ticks/lots) into display levels.
func (i Instrument) RenderLevels(levels []LevelInfo) []DisplayLevel {
	result := make([]DisplayLevel, 0, len(levels))
	for _, level := range levels {
		result = append(result, DisplayLevel{
			Price: i.TicksToPrice(level.Price),
			Size:  i.LotsToSize(level.Quantity),
		})
	}

	return result
}
