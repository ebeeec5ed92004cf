package book

// OrderBook is a single-instrument limit order book with price-time
// priority matching. It is a synchronous, single-threaded data structure:
// every operation runs to completion before returning and no internal
// locking exists. Callers that need concurrent access must serialize
// calls externally.
type OrderBook struct {
	bidQueue  *sideQueue
	askQueue  *sideQueue
	seqID     uint64 // increasing sequence ID for every emitted event
	tradeID   uint64 // sequential trade ID, only incremented for Match events
	publisher Publisher
}

// NewOrderBook creates an empty order book. The publisher receives every
// book event; pass nil to discard them.
func NewOrderBook(publisher Publisher) *OrderBook {
	if publisher == nil {
		publisher = NewDiscardPublisher()
	}

	return &OrderBook{
		bidQueue:  newBidQueue(),
		askQueue:  newAskQueue(),
		publisher: publisher,
	}
}

// Submit inserts the order at the tail of its price level's queue and runs
// the matching loop to exhaustion, returning the trades it produced.
//
// Submissions are rejected silently (no state change, empty result) when
// the ID is already resident, or when a fill-or-kill order has no crossing
// interest on the opposite side at call time.
func (b *OrderBook) Submit(order *Order) []Trade {
	if b.order(order.ID) != nil {
		b.publishReject(order, RejectReasonDuplicateID)
		return nil
	}

	if order.Kind == FillOrKill && !b.canMatch(order.Side, order.Price) {
		b.publishReject(order, RejectReasonCannotCross)
		return nil
	}

	myQueue := b.bidQueue
	if order.Side == Sell {
		myQueue = b.askQueue
	}
	myQueue.insertOrder(order, false)

	return b.matchOrders(order)
}

// Cancel removes the order from its price level and from the registry.
// It is an idempotent no-op on unknown IDs and never produces a trade.
func (b *OrderBook) Cancel(id OrderID) {
	b.cancelOrder(id)
}

// Modify replaces a resident order with a fresh one built from the
// request, preserving the original order kind. The replacement loses its
// time priority and lands at the tail of the target price level; the
// resubmission may match immediately and those trades are returned.
// No-op with an empty result on unknown IDs.
func (b *OrderBook) Modify(req OrderModify) []Trade {
	existing := b.order(req.OrderID)
	if existing == nil {
		return nil
	}

	kind := existing.Kind

	b.seqID++
	b.publisher.Publish(BookEvent{
		SequenceID:  b.seqID,
		Type:        EventAmend,
		Side:        existing.Side,
		OrderID:     existing.ID,
		Price:       req.Price,
		Quantity:    req.Quantity,
		OldPrice:    existing.Price,
		OldQuantity: existing.RemainingQuantity(),
	})

	if existing.Side == Sell {
		b.askQueue.removeOrder(existing.ID)
	} else {
		b.bidQueue.removeOrder(existing.ID)
	}

	return b.Submit(req.ToOrder(kind))
}

// Size returns the number of currently resident orders.
func (b *OrderBook) Size() int {
	return b.bidQueue.orderCount() + b.askQueue.orderCount()
}

// LevelSnapshot returns a point-in-time aggregation of the book: one entry
// per resident price level per side, bids descending and asks ascending.
func (b *OrderBook) LevelSnapshot() *LevelSnapshot {
	return &LevelSnapshot{
		Bids: b.bidQueue.levels(),
		Asks: b.askQueue.levels(),
	}
}

// order finds a resident order on either side.
func (b *OrderBook) order(id OrderID) *Order {
	if order := b.askQueue.order(id); order != nil {
		return order
	}
	return b.bidQueue.order(id)
}

// canMatch reports whether an order at the given side and price would
// cross the opposite side's best price right now.
func (b *OrderBook) canMatch(side Side, price Price) bool {
	if side == Buy {
		best := b.askQueue.peekHeadOrder()
		return best != nil && price >= best.Price
	}

	best := b.bidQueue.peekHeadOrder()
	return best != nil && price <= best.Price
}

// matchOrders runs the matching loop to a fixed point: while the best bid
// crosses the best ask, the earliest-arrived orders of the two top levels
// are filled by the minimum of their remaining quantities. Fully filled
// orders and emptied levels are removed mid-loop before the next pairing.
//
// After the crossing loop exits, the order currently at the head of each
// side's best level is cancelled if it is fill-or-kill, whether or not the
// loop touched it. That sweep is what keeps fill-or-kill remainders from
// resting.
func (b *OrderBook) matchOrders(taker *Order) []Trade {
	var trades []Trade

	for {
		bid := b.bidQueue.peekHeadOrder()
		ask := b.askQueue.peekHeadOrder()

		if bid == nil || ask == nil || bid.Price < ask.Price {
			break
		}

		quantity := min(bid.RemainingQuantity(), ask.RemainingQuantity())
		b.bidQueue.fill(bid, quantity)
		b.askQueue.fill(ask, quantity)

		trade := Trade{
			Bid:       TradeLeg{OrderID: bid.ID, Price: bid.Price},
			Ask:       TradeLeg{OrderID: ask.ID, Price: ask.Price},
			Quantity:  quantity,
			TakerSide: taker.Side,
		}
		trades = append(trades, trade)

		b.seqID++
		b.tradeID++
		b.publisher.Publish(BookEvent{
			SequenceID:   b.seqID,
			TradeID:      b.tradeID,
			Type:         EventMatch,
			Side:         trade.TakerSide,
			OrderID:      trade.TakerOrderID(),
			Price:        trade.ExecutionPrice(),
			Quantity:     quantity,
			MakerOrderID: trade.MakerOrderID(),
		})

		if bid.IsFilled() {
			b.bidQueue.removeOrder(bid.ID)
		}
		if ask.IsFilled() {
			b.askQueue.removeOrder(ask.ID)
		}
	}

	// The taker opens with whatever is left once matching settles.
	if resident := b.order(taker.ID); resident != nil {
		b.seqID++
		b.publisher.Publish(BookEvent{
			SequenceID: b.seqID,
			Type:       EventOpen,
			Side:       resident.Side,
			OrderID:    resident.ID,
			Price:      resident.Price,
			Quantity:   resident.RemainingQuantity(),
		})
	}

	if head := b.bidQueue.peekHeadOrder(); head != nil && head.Kind == FillOrKill {
		b.cancelOrder(head.ID)
	}
	if head := b.askQueue.peekHeadOrder(); head != nil && head.Kind == FillOrKill {
		b.cancelOrder(head.ID)
	}

	return trades
}

// cancelOrder removes an order from whichever side holds it and emits the
// cancel event. No-op on unknown IDs.
func (b *OrderBook) cancelOrder(id OrderID) {
	order := b.askQueue.order(id)
	if order != nil {
		b.askQueue.removeOrder(id)
		b.publishCancel(order)
		return
	}

	order = b.bidQueue.order(id)
	if order != nil {
		b.bidQueue.removeOrder(id)
		b.publishCancel(order)
		return
	}
}

func (b *OrderBook) publishCancel(order *Order) {
	b.seqID++
	b.publisher.Publish(BookEvent{
		SequenceID: b.seqID,
		Type:       EventCancel,
		Side:       order.Side,
		OrderID:    order.ID,
		Price:      order.Price,
		Quantity:   order.RemainingQuantity(),
	})
}

func (b *OrderBook) publishReject(order *Order, reason RejectReason) {
	b.seqID++
	b.publisher.Publish(BookEvent{
		SequenceID:   b.seqID,
		Type:         EventReject,
		Side:         order.Side,
		OrderID:      order.ID,
		Price:        order.Price,
		Quantity:     order.RemainingQuantity(),
		RejectReason: reason,
	})
}
