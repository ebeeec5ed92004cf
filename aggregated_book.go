package book

import (
	"fmt"

	"github.com/igrmk/treemap/v2"
)

// AggregatedBook maintains a simplified view of the order book, tracking
// only price levels and their aggregated quantities (depth). It is
// designed for downstream consumers that rebuild book state by replaying
// BookEvents, e.g. display layers or analytics.
type AggregatedBook struct {
	seqID uint64 // last applied SequenceID, for gap detection and deduplication
	bid   *treemap.TreeMap[Price, Quantity]
	ask   *treemap.TreeMap[Price, Quantity]
}

// NewAggregatedBook creates a new AggregatedBook instance with empty ask
// and bid sides. Bid levels iterate from highest price to lowest, ask
// levels from lowest to highest.
func NewAggregatedBook() *AggregatedBook {
	return &AggregatedBook{
		bid: newBidTree(),
		ask: newAskTree(),
	}
}

func newBidTree() *treemap.TreeMap[Price, Quantity] {
	return treemap.NewWithKeyCompare[Price, Quantity](func(a, b Price) bool {
		return a > b
	})
}

func newAskTree() *treemap.TreeMap[Price, Quantity] {
	return treemap.NewWithKeyCompare[Price, Quantity](func(a, b Price) bool {
		return a < b
	})
}

// SequenceID returns the last applied sequence ID.
// Used for synchronization and gap detection during rebuild.
func (ab *AggregatedBook) SequenceID() uint64 {
	return ab.seqID
}

// Replay applies a book event to update the aggregated state. Events at or
// below the current sequence ID are skipped (already applied); a gap in
// the sequence returns ErrSequenceGap and leaves the book untouched so the
// consumer can resynchronize from a snapshot.
func (ab *AggregatedBook) Replay(ev BookEvent) error {
	if ev.SequenceID <= ab.seqID {
		return nil
	}

	if ev.SequenceID != ab.seqID+1 {
		return fmt.Errorf("%w: have %d, got %d", ErrSequenceGap, ab.seqID, ev.SequenceID)
	}

	change := CalculateDepthChange(ev)
	if change.Diff != 0 {
		side := ab.bid
		if change.Side == Sell {
			side = ab.ask
		}

		current, _ := side.Get(change.Price)
		next := int64(current) + change.Diff

		switch {
		case next > 0:
			side.Set(change.Price, Quantity(next))
		case next == 0:
			side.Del(change.Price)
		default:
			logger.Warn("aggregated book depth went negative",
				"seq_id", ev.SequenceID,
				"side", change.Side.String(),
				"price", int64(change.Price))
			return fmt.Errorf("depth at price %d would become negative", change.Price)
		}
	}

	ab.seqID = ev.SequenceID
	return nil
}

// Rebuild resets the aggregated book from a level snapshot taken at the
// given sequence ID. Call this before replaying events after a gap.
func (ab *AggregatedBook) Rebuild(seqID uint64, snapshot *LevelSnapshot) {
	ab.bid = newBidTree()
	ab.ask = newAskTree()

	for _, level := range snapshot.Bids {
		ab.bid.Set(level.Price, level.Quantity)
	}
	for _, level := range snapshot.Asks {
		ab.ask.Set(level.Price, level.Quantity)
	}

	ab.seqID = seqID
}

// Depth returns the aggregated quantity at a specific price level for the
// given side. The second return value is false if the level is absent.
func (ab *AggregatedBook) Depth(side Side, price Price) (Quantity, bool) {
	if side == Sell {
		return ab.ask.Get(price)
	}
	return ab.bid.Get(price)
}

// BestBid returns the highest resident bid level.
func (ab *AggregatedBook) BestBid() (LevelInfo, bool) {
	return bestLevel(ab.bid)
}

// BestAsk returns the lowest resident ask level.
func (ab *AggregatedBook) BestAsk() (LevelInfo, bool) {
	return bestLevel(ab.ask)
}

func bestLevel(side *treemap.TreeMap[Price, Quantity]) (LevelInfo, bool) {
	it := side.Iterator()
	if !it.Valid() {
		return LevelInfo{}, false
	}
	return LevelInfo{Price: it.Key(), Quantity: it.Value()}, true
}

// TopLevels returns up to limit levels for the given side, in that side's
// priority order.
func (ab *AggregatedBook) TopLevels(side Side, limit int) []LevelInfo {
	tree := ab.bid
	if side == Sell {
		tree = ab.ask
	}

	result := make([]LevelInfo, 0, limit)
	for it := tree.Iterator(); it.Valid() && len(result) < limit; it.Next() {
		result = append(result, LevelInfo{Price: it.Key(), Quantity: it.Value()})
	}

	return result
}
