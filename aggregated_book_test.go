package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replayAll(t *testing.T, ab *AggregatedBook, publisher *MemoryPublisher) {
	t.Helper()

	for _, ev := range publisher.Events() {
		require.NoError(t, ab.Replay(ev))
	}
}

// The aggregated view rebuilt from the event stream must agree with the
// book's own level snapshot at every point.
func TestAggregatedBookTracksLevelSnapshot(t *testing.T) {
	publisher := NewMemoryPublisher()
	b := NewOrderBook(publisher)
	ab := NewAggregatedBook()

	b.Submit(NewOrder(GoodTillCancel, 1, Buy, 100, 3))
	b.Submit(NewOrder(GoodTillCancel, 2, Buy, 99, 7))
	b.Submit(NewOrder(GoodTillCancel, 3, Sell, 101, 4))
	b.Submit(NewOrder(GoodTillCancel, 4, Sell, 100, 5))  // matches 1, rests 2
	b.Modify(OrderModify{OrderID: 2, Side: Buy, Price: 98, Quantity: 6})
	b.Cancel(3)
	b.Submit(NewOrder(FillOrKill, 5, Buy, 100, 1)) // partially takes 4, remainder swept

	replayAll(t, ab, publisher)

	snapshot := b.LevelSnapshot()
	assert.Equal(t, snapshot.Bids, ab.TopLevels(Buy, 10))
	assert.Equal(t, snapshot.Asks, ab.TopLevels(Sell, 10))
}

func TestAggregatedBookBestLevels(t *testing.T) {
	publisher := NewMemoryPublisher()
	b := NewOrderBook(publisher)
	ab := NewAggregatedBook()

	_, ok := ab.BestBid()
	assert.False(t, ok)

	b.Submit(NewOrder(GoodTillCancel, 1, Buy, 100, 3))
	b.Submit(NewOrder(GoodTillCancel, 2, Buy, 101, 2))
	b.Submit(NewOrder(GoodTillCancel, 3, Sell, 105, 4))
	replayAll(t, ab, publisher)

	bid, ok := ab.BestBid()
	require.True(t, ok)
	assert.Equal(t, LevelInfo{Price: 101, Quantity: 2}, bid)

	ask, ok := ab.BestAsk()
	require.True(t, ok)
	assert.Equal(t, LevelInfo{Price: 105, Quantity: 4}, ask)

	depth, ok := ab.Depth(Buy, 100)
	require.True(t, ok)
	assert.Equal(t, Quantity(3), depth)

	_, ok = ab.Depth(Sell, 100)
	assert.False(t, ok)
}

func TestAggregatedBookSequenceHandling(t *testing.T) {
	ab := NewAggregatedBook()

	open := BookEvent{
		SequenceID: 1,
		Type:       EventOpen,
		Side:       Buy,
		OrderID:    1,
		Price:      100,
		Quantity:   5,
	}
	require.NoError(t, ab.Replay(open))
	assert.Equal(t, uint64(1), ab.SequenceID())

	// replaying the same event again is a no-op
	require.NoError(t, ab.Replay(open))
	depth, _ := ab.Depth(Buy, 100)
	assert.Equal(t, Quantity(5), depth)

	// a gap is reported and leaves the state untouched
	err := ab.Replay(BookEvent{SequenceID: 5, Type: EventCancel, Side: Buy, OrderID: 1, Price: 100, Quantity: 5})
	assert.ErrorIs(t, err, ErrSequenceGap)
	assert.Equal(t, uint64(1), ab.SequenceID())
	depth, _ = ab.Depth(Buy, 100)
	assert.Equal(t, Quantity(5), depth)
}

func TestAggregatedBookRebuild(t *testing.T) {
	ab := NewAggregatedBook()

	ab.Rebuild(7, &LevelSnapshot{
		Bids: []LevelInfo{{Price: 100, Quantity: 10}, {Price: 99, Quantity: 2}},
		Asks: []LevelInfo{{Price: 101, Quantity: 4}},
	})

	assert.Equal(t, uint64(7), ab.SequenceID())
	bid, _ := ab.BestBid()
	assert.Equal(t, LevelInfo{Price: 100, Quantity: 10}, bid)

	// replay resumes right after the snapshot sequence
	require.NoError(t, ab.Replay(BookEvent{SequenceID: 8, Type: EventCancel, Side: Sell, OrderID: 9, Price: 101, Quantity: 4}))
	_, ok := ab.BestAsk()
	assert.False(t, ok)
}
