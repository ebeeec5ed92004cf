package book

// TradeLeg records one order's participation in a match: the order and the
// price that order was quoted at. The two legs of a trade may show
// different prices; use Trade.ExecutionPrice for a single canonical price.
type TradeLeg struct {
	OrderID OrderID `json:"order_id"`
	Price   Price   `json:"price"`
}

// Trade is an immutable record of one matching event.
type Trade struct {
	Bid      TradeLeg `json:"bid"`
	Ask      TradeLeg `json:"ask"`
	Quantity Quantity `json:"quantity"`

	// TakerSide is the side of the incoming order that triggered the match.
	TakerSide Side `json:"taker_side"`
}

// ExecutionPrice returns the resting (maker) leg's price, which is the
// price the trade is considered executed at under price-time priority.
func (t Trade) ExecutionPrice() Price {
	if t.TakerSide == Buy {
		return t.Ask.Price
	}
	return t.Bid.Price
}

// TakerOrderID returns the aggressing leg's order ID.
func (t Trade) TakerOrderID() OrderID {
	if t.TakerSide == Buy {
		return t.Bid.OrderID
	}
	return t.Ask.OrderID
}

// MakerOrderID returns the resting leg's order ID.
func (t Trade) MakerOrderID() OrderID {
	if t.TakerSide == Buy {
		return t.Ask.OrderID
	}
	return t.Bid.OrderID
}

// LevelInfo is one price level's aggregate: the price and the sum of the
// remaining quantities of all orders resident at that price.
type LevelInfo struct {
	Price    Price    `json:"price"`
	Quantity Quantity `json:"quantity"`
}

// LevelSnapshot is a read-only, point-in-time aggregation of the book:
// bids from highest to lowest price, asks from lowest to highest.
type LevelSnapshot struct {
	Bids []LevelInfo `json:"bids"`
	Asks []LevelInfo `json:"asks"`
}
