package book

import (
	"time"

	"github.com/rs/xid"
)

// OrderState is the serializable state of one resident order.
type OrderState struct {
	ID        OrderID   `json:"id"`
	Kind      OrderKind `json:"kind"`
	Side      Side      `json:"side"`
	Price     Price     `json:"price"`
	Initial   Quantity  `json:"initial"`
	Remaining Quantity  `json:"remaining"`
}

// Snapshot contains the full state of an OrderBook at a point in time.
// Orders are listed per side in priority order (best level first, arrival
// order within a level), so restoring preserves price-time priority.
type Snapshot struct {
	ID            string       `json:"id"`
	SchemaVersion int          `json:"schema_version"`
	TakenAt       int64        `json:"taken_at"` // unix nano
	SeqID         uint64       `json:"seq_id"`
	TradeID       uint64       `json:"trade_id"`
	Bids          []OrderState `json:"bids"`
	Asks          []OrderState `json:"asks"`
}

// TakeSnapshot captures the current state of the order book.
func (b *OrderBook) TakeSnapshot() *Snapshot {
	return &Snapshot{
		ID:            xid.New().String(),
		SchemaVersion: SnapshotSchemaVersion,
		TakenAt:       time.Now().UnixNano(),
		SeqID:         b.seqID,
		TradeID:       b.tradeID,
		Bids:          b.bidQueue.toSnapshot(),
		Asks:          b.askQueue.toSnapshot(),
	}
}

// Restore resets the order book and rebuilds it from the snapshot,
// bypassing the matching logic. Returns ErrSnapshotSchema if the snapshot
// was taken with an incompatible schema version.
func (b *OrderBook) Restore(snap *Snapshot) error {
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return ErrSnapshotSchema
	}

	b.seqID = snap.SeqID
	b.tradeID = snap.TradeID
	b.bidQueue = newBidQueue()
	b.askQueue = newAskQueue()

	restoreOrders := func(states []OrderState, q *sideQueue) {
		for _, st := range states {
			order := NewOrder(st.Kind, st.ID, st.Side, st.Price, st.Initial)
			order.remaining = st.Remaining
			// Insert at back; snapshot order preserves priority.
			q.insertOrder(order, false)
		}
	}

	restoreOrders(snap.Bids, b.bidQueue)
	restoreOrders(snap.Asks, b.askQueue)

	logger.Info("order book restored from snapshot",
		"snapshot_id", snap.ID,
		"orders", b.Size())

	return nil
}
