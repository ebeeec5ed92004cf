package book

import "sync"

type EventType string

const (
	EventOpen   EventType = "open"
	EventMatch  EventType = "match"
	EventCancel EventType = "cancel"
	EventAmend  EventType = "amend"
	EventReject EventType = "reject"
)

// RejectReason represents the reason why a submission was refused.
type RejectReason string

const (
	RejectReasonNone        RejectReason = ""
	RejectReasonDuplicateID RejectReason = "duplicate_id" // an order with the same ID is already resident
	RejectReasonCannotCross RejectReason = "cannot_cross" // fill-or-kill with no crossing interest on the opposite side
)

// BookEvent represents an event in the order book.
// SequenceID is a monotonically increasing ID for every event, used for
// ordering, deduplication, and rebuild synchronization in downstream
// consumers. Use Type to determine whether the event affects book state:
// Open, Match, Cancel, Amend do; Reject does not.
type BookEvent struct {
	SequenceID   uint64       `json:"seq_id"`
	TradeID      uint64       `json:"trade_id,omitempty"` // sequential trade ID, only set for Match events
	Type         EventType    `json:"type"`
	Side         Side         `json:"side"` // taker side for Match events
	OrderID      OrderID      `json:"order_id"`
	Price        Price        `json:"price"`    // execution (maker) price for Match events
	Quantity     Quantity     `json:"quantity"` // matched quantity for Match, remaining quantity otherwise
	OldPrice     Price        `json:"old_price,omitempty"`
	OldQuantity  Quantity     `json:"old_quantity,omitempty"`
	MakerOrderID OrderID      `json:"maker_order_id,omitempty"`
	RejectReason RejectReason `json:"reject_reason,omitempty"`
}

// Publisher receives every event the book emits, in emission order.
// Publish is called synchronously from inside book operations, so
// implementations must not call back into the book.
type Publisher interface {
	Publish(events ...BookEvent)
}

// MemoryPublisher accumulates events in memory. Intended for tests and
// small in-process consumers.
type MemoryPublisher struct {
	mu     sync.RWMutex
	events []BookEvent
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{
		events: make([]BookEvent, 0),
	}
}

func (m *MemoryPublisher) Publish(events ...BookEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
}

func (m *MemoryPublisher) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

func (m *MemoryPublisher) Get(index int) BookEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.events[index]
}

// Events returns a copy of all published events.
func (m *MemoryPublisher) Events() []BookEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]BookEvent, len(m.events))
	copy(out, m.events)
	return out
}

// DiscardPublisher drops every event.
type DiscardPublisher struct {
}

func NewDiscardPublisher() *DiscardPublisher {
	return &DiscardPublisher{}
}

func (p *DiscardPublisher) Publish(events ...BookEvent) {
}

// DepthChange represents a change in the order book depth.
type DepthChange struct {
	Side  Side
	Price Price
	Diff  int64 // signed change of the level's aggregate quantity
}

// CalculateDepthChange derives the depth delta implied by a book event.
// Note: for Match events the returned side is the maker's side (opposite
// of the event's taker side), since a match consumes maker liquidity.
func CalculateDepthChange(ev BookEvent) DepthChange {
	switch ev.Type {
	case EventOpen:
		return DepthChange{
			Side:  ev.Side,
			Price: ev.Price,
			Diff:  int64(ev.Quantity),
		}
	case EventCancel:
		return DepthChange{
			Side:  ev.Side,
			Price: ev.Price,
			Diff:  -int64(ev.Quantity),
		}
	case EventMatch:
		return DepthChange{
			Side:  ev.Side.Opposite(),
			Price: ev.Price,
			Diff:  -int64(ev.Quantity),
		}
	case EventAmend:
		// Amend is cancel-then-resubmit: the old quantity leaves the old
		// price level; the replacement shows up as a later Open or Match.
		return DepthChange{
			Side:  ev.Side,
			Price: ev.OldPrice,
			Diff:  -int64(ev.OldQuantity),
		}
	case EventReject:
		// Rejected orders never entered the book, so no depth change.
		return DepthChange{}
	}

	return DepthChange{}
}
