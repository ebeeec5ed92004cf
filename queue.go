package book

import (
	"github.com/huandu/skiplist"
)

// priceLevel is the time-ordered (FIFO) set of resident orders at one
// price, with a running total of their remaining quantities so that level
// aggregation is O(1).
type priceLevel struct {
	price         Price
	totalQuantity Quantity
	head          *Order
	tail          *Order
	count         int
}

// sideQueue holds one side of the book: a skiplist of price levels ordered
// by price priority (descending for bids, ascending for asks), a price ->
// element map for O(1) level lookup, and an order registry for O(1)
// cancellation of an arbitrary order without scanning.
type sideQueue struct {
	side        Side
	totalOrders int
	depths      int
	depthList   *skiplist.SkipList
	priceList   map[Price]*skiplist.Element
	orders      map[OrderID]*Order
}

// newBidQueue creates the queue for buy orders.
// Levels are sorted by price in descending order (highest price first).
func newBidQueue() *sideQueue {
	return &sideQueue{
		side: Buy,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			p1, _ := lhs.(Price)
			p2, _ := rhs.(Price)

			if p1 < p2 {
				return 1
			} else if p1 > p2 {
				return -1
			}

			return 0
		})),
		priceList: make(map[Price]*skiplist.Element),
		orders:    make(map[OrderID]*Order),
	}
}

// newAskQueue creates the queue for sell orders.
// Levels are sorted by price in ascending order (lowest price first).
func newAskQueue() *sideQueue {
	return &sideQueue{
		side: Sell,
		depthList: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			p1, _ := lhs.(Price)
			p2, _ := rhs.(Price)

			if p1 > p2 {
				return 1
			} else if p1 < p2 {
				return -1
			}

			return 0
		})),
		priceList: make(map[Price]*skiplist.Element),
		orders:    make(map[OrderID]*Order),
	}
}

// order finds a resident order by its ID.
func (q *sideQueue) order(id OrderID) *Order {
	return q.orders[id]
}

// insertOrder inserts an order into the queue, creating its price level if
// absent. New orders go to the tail of the level's FIFO; front insertion
// exists only for restoring priority-ordered snapshots.
func (q *sideQueue) insertOrder(order *Order, isFront bool) {
	el, ok := q.priceList[order.Price]
	if ok {
		level, _ := el.Value.(*priceLevel)
		if isFront {
			order.next = level.head
			order.prev = nil
			if level.head != nil {
				level.head.prev = order
			}
			level.head = order
			if level.tail == nil {
				level.tail = order
			}
		} else {
			order.prev = level.tail
			order.next = nil
			if level.tail != nil {
				level.tail.next = order
			}
			level.tail = order
			if level.head == nil {
				level.head = order
			}
		}

		level.totalQuantity += order.remaining
		level.count++
		q.orders[order.ID] = order
		q.totalOrders++
	} else {
		level := &priceLevel{
			price:         order.Price,
			head:          order,
			tail:          order,
			totalQuantity: order.remaining,
			count:         1,
		}
		order.next = nil
		order.prev = nil

		q.orders[order.ID] = order

		el := q.depthList.Set(order.Price, level)
		q.priceList[order.Price] = el

		q.totalOrders++
		q.depths++
	}
}

// removeOrder removes an order from the queue by ID and drops its price
// level if that level becomes empty. No-op on unknown IDs.
func (q *sideQueue) removeOrder(id OrderID) {
	order, ok := q.orders[id]
	if !ok {
		return
	}

	skipElement, ok := q.priceList[order.Price]
	if !ok {
		return
	}
	level, _ := skipElement.Value.(*priceLevel)

	// Unlink from the level FIFO
	if order.prev != nil {
		order.prev.next = order.next
	} else {
		level.head = order.next
	}

	if order.next != nil {
		order.next.prev = order.prev
	} else {
		level.tail = order.prev
	}

	order.next = nil
	order.prev = nil

	level.totalQuantity -= order.remaining
	level.count--
	delete(q.orders, id)
	q.totalOrders--

	if level.count == 0 {
		q.depthList.RemoveElement(skipElement)
		delete(q.priceList, order.Price)
		q.depths--
	}
}

// fill applies a match against a resident order, keeping the level
// aggregate in sync with the order's remaining quantity.
func (q *sideQueue) fill(order *Order, quantity Quantity) {
	order.Fill(quantity)

	if el, ok := q.priceList[order.Price]; ok {
		level, _ := el.Value.(*priceLevel)
		level.totalQuantity -= quantity
	}
}

// peekHeadOrder returns the earliest-arrived order at the best price level
// without removing it, or nil if the side is empty.
func (q *sideQueue) peekHeadOrder() *Order {
	el := q.depthList.Front()
	if el == nil {
		return nil
	}

	level, _ := el.Value.(*priceLevel)
	return level.head
}

// orderCount returns the total number of resident orders on this side.
func (q *sideQueue) orderCount() int {
	return q.totalOrders
}

// depthCount returns the number of resident price levels on this side.
func (q *sideQueue) depthCount() int {
	return q.depths
}

// levels returns one LevelInfo per resident price level, in this side's
// priority order.
func (q *sideQueue) levels() []LevelInfo {
	result := make([]LevelInfo, 0, q.depths)

	for el := q.depthList.Front(); el != nil; el = el.Next() {
		level, _ := el.Value.(*priceLevel)
		result = append(result, LevelInfo{
			Price:    level.price,
			Quantity: level.totalQuantity,
		})
	}

	return result
}

// toSnapshot serializes the side into order states, walking price levels in
// priority order and each level's FIFO in arrival order.
func (q *sideQueue) toSnapshot() []OrderState {
	states := make([]OrderState, 0, q.totalOrders)

	for el := q.depthList.Front(); el != nil; el = el.Next() {
		level, _ := el.Value.(*priceLevel)

		for order := level.head; order != nil; order = order.next {
			states = append(states, OrderState{
				ID:        order.ID,
				Kind:      order.Kind,
				Side:      order.Side,
				Price:     order.Price,
				Initial:   order.initial,
				Remaining: order.remaining,
			})
		}
	}

	return states
}
