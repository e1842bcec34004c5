package orderbook

import (
	"math/big"
	"math/rand"
	"testing"
	"time"

	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbookerrors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	testMarket = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testCard   = model.Card{Market: testMarket, Token: 1}
	testNow    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

// Helper to build a bidder address from a small number
func addr(n int) common.Address {
	return common.BigToAddress(big.NewInt(int64(n)))
}

func price(n uint64) *uint256.Int {
	return uint256.NewInt(n)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return testNow }
	return cfg
}

// Helper to create a book with bidders 1..n placed at the given prices, in order
func newBookWith(t *testing.T, cfg Config, prices ...uint64) *MemoryBook {
	t.Helper()
	b := NewMemoryBook(cfg)
	for i, p := range prices {
		_, err := b.Insert(testCard, addr(i+1), price(p), hintFor(b, p))
		require.NoError(t, err)
	}
	return b
}

// hintFor returns the hint an up-to-date caller would pass
func hintFor(b *MemoryBook, p uint64) common.Address {
	return b.FindHint(testCard, price(p))
}

func pricesOf(bids []model.Bid) []uint64 {
	out := make([]uint64, len(bids))
	for i, bid := range bids {
		out[i] = bid.Price.Uint64()
	}
	return out
}

func biddersOf(bids []model.Bid) []common.Address {
	out := make([]common.Address, len(bids))
	for i, bid := range bids {
		out[i] = bid.Bidder
	}
	return out
}

// requireConsistent walks every list in both directions and checks links,
// ordering, lengths and the per-bidder index agree.
func requireConsistent(t *testing.T, b *MemoryBook) {
	t.Helper()
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for card, n := range b.lengths {
		s, ok := b.nodes[key{card: card, bidder: Top}]
		require.True(t, ok, "card %s has no sentinel", card)

		var forward []common.Address
		var last *uint256.Int
		for cur := s.next; cur != Top; {
			nd, ok := b.nodes[key{card: card, bidder: cur}]
			require.True(t, ok, "dangling link to %s", cur.Hex())
			require.Equal(t, card, nd.bid.Card)
			require.Equal(t, cur, nd.bid.Bidder)
			if last != nil {
				require.False(t, last.Lt(nd.bid.Price), "prices out of order on card %s", card)
			}
			require.Equal(t, cur, b.nodes[key{card: card, bidder: nd.prev}].next)
			require.True(t, b.indexed(cur, card))
			last = nd.bid.Price
			forward = append(forward, cur)
			cur = nd.next
			require.LessOrEqual(t, len(forward), n)
		}
		require.Len(t, forward, n)

		var backward []common.Address
		for cur := s.prev; cur != Top; cur = b.nodes[key{card: card, bidder: cur}].prev {
			backward = append([]common.Address{cur}, backward...)
			require.LessOrEqual(t, len(backward), n)
		}
		require.Equal(t, forward, backward)
		total += n
	}

	sentinels := 0
	for k := range b.nodes {
		if k.bidder == Top {
			sentinels++
		}
	}
	require.Equal(t, total, len(b.nodes)-sentinels)

	indexed := 0
	for _, cards := range b.byUser {
		indexed += len(cards)
	}
	require.Equal(t, total, indexed)
}

// Bids at equal prices keep arrival order and the highest price owns the card
func TestMemoryBook_InsertOrdering(t *testing.T) {
	t.Parallel()

	b := NewMemoryBook(testConfig())
	steps := []struct {
		price uint64
		hint  common.Address
	}{
		{price: 500, hint: Top},
		{price: 200, hint: addr(1)},
		{price: 100, hint: addr(2)},
		{price: 100, hint: addr(2)},
		{price: 109, hint: Top},
		{price: 90, hint: addr(3)},
		{price: 85, hint: addr(6)},
		{price: 80, hint: addr(2)},
		{price: 60, hint: addr(8)},
		{price: 50, hint: addr(4)},
	}
	for i, s := range steps {
		_, err := b.Insert(testCard, addr(i+1), price(s.price), s.hint)
		require.NoError(t, err, "bid %d", i+1)
	}

	bids, err := b.Bids(testCard)
	require.NoError(t, err)
	require.Equal(t, []uint64{500, 200, 109, 100, 100, 90, 85, 80, 60, 50}, pricesOf(bids))
	require.Equal(t, []common.Address{
		addr(1), addr(2), addr(5), addr(3), addr(4), addr(6), addr(7), addr(8), addr(9), addr(10),
	}, biddersOf(bids))

	head, err := b.Head(testCard)
	require.NoError(t, err)
	require.Equal(t, addr(1), head.Bidder)
	require.Equal(t, 10, b.Len(testCard))
	requireConsistent(t, b)
}

func TestMemoryBook_InsertReportsNewOwner(t *testing.T) {
	t.Parallel()

	b := NewMemoryBook(testConfig())

	change, err := b.Insert(testCard, addr(1), price(100), Top)
	require.NoError(t, err)
	require.True(t, change.Changed)
	require.Equal(t, Top, change.Previous)
	require.Equal(t, addr(1), change.Current)

	change, err = b.Insert(testCard, addr(2), price(50), Top)
	require.NoError(t, err)
	require.False(t, change.Changed)

	change, err = b.Insert(testCard, addr(3), price(110), Top)
	require.NoError(t, err)
	require.True(t, change.Changed)
	require.Equal(t, addr(1), change.Previous)
	require.Equal(t, addr(3), change.Current)
	require.True(t, change.HasOwner())
}

// Rejected inserts leave the list exactly as it was
func TestMemoryBook_InsertErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     func(*Config)
		bidder  common.Address
		price   *uint256.Int
		hint    common.Address
		lock    bool
		wantErr error
	}{
		{name: "zero_price", bidder: addr(9), price: price(0), hint: Top, wantErr: orderbookerrors.ErrInvalidPrice},
		{name: "nil_price", bidder: addr(9), price: nil, hint: Top, wantErr: orderbookerrors.ErrInvalidPrice},
		{name: "zero_bidder", bidder: Top, price: price(5), hint: Top, wantErr: orderbookerrors.ErrInvalidRequest},
		{name: "existing_bid", bidder: addr(2), price: price(5), hint: Top, wantErr: orderbookerrors.ErrBidExists},
		{name: "unknown_hint", bidder: addr(9), price: price(5), hint: addr(77), wantErr: orderbookerrors.ErrBidNotFound},
		{name: "hint_priced_below", bidder: addr(9), price: price(35), hint: addr(4), wantErr: orderbookerrors.ErrLocationTooLow},
		{name: "takeover_below_threshold", bidder: addr(9), price: price(54), hint: Top, wantErr: orderbookerrors.ErrInvalidPrice},
		{name: "card_locked", bidder: addr(9), price: price(5), hint: Top, lock: true, wantErr: orderbookerrors.ErrCardLocked},
		{
			name:    "hint_far_above_slot",
			cfg:     func(c *Config) { c.MaxSearchIterations = 2 },
			bidder:  addr(9),
			price:   price(5),
			hint:    addr(1),
			wantErr: orderbookerrors.ErrLocationTooHigh,
		},
		{
			name:    "walk_from_top_exceeds_limit",
			cfg:     func(c *Config) { c.MaxSearchIterations = 2 },
			bidder:  addr(9),
			price:   price(5),
			hint:    Top,
			wantErr: orderbookerrors.ErrIterationLimitExceeded,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			if tc.cfg != nil {
				tc.cfg(&cfg)
			}
			b := newBookWith(t, cfg, 50, 40, 30, 20, 10)
			if tc.lock {
				b.Lock(testCard, testNow.Add(-time.Minute))
			}
			before, err := b.Bids(testCard)
			require.NoError(t, err)

			_, err = b.Insert(testCard, tc.bidder, tc.price, tc.hint)
			require.ErrorIs(t, err, tc.wantErr)

			after, err := b.Bids(testCard)
			require.NoError(t, err)
			require.Equal(t, before, after)
			require.False(t, b.BidExists(addr(9), testCard))
			requireConsistent(t, b)
		})
	}
}

func TestMemoryBook_InsertWithinSearchLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxSearchIterations = 2
	b := newBookWith(t, cfg, 50, 40, 30, 20, 10)

	_, err := b.Insert(testCard, addr(9), price(5), addr(3))
	require.NoError(t, err)

	bids, err := b.Bids(testCard)
	require.NoError(t, err)
	require.Equal(t, []uint64{50, 40, 30, 20, 10, 5}, pricesOf(bids))
}

func TestMemoryBook_FindHint(t *testing.T) {
	t.Parallel()

	b := newBookWith(t, testConfig(), 500, 200, 100, 100, 50)

	require.Equal(t, Top, b.FindHint(testCard, price(600)))
	require.Equal(t, addr(1), b.FindHint(testCard, price(300)))
	require.Equal(t, addr(4), b.FindHint(testCard, price(100)))
	require.Equal(t, addr(5), b.FindHint(testCard, price(1)))
	require.Equal(t, Top, b.FindHint(model.Card{Market: testMarket, Token: 99}, price(1)))
}

func TestMemoryBook_Remove(t *testing.T) {
	t.Parallel()

	t.Run("head_promotes_next", func(t *testing.T) {
		t.Parallel()

		b := newBookWith(t, testConfig(), 300, 200, 100)
		change, err := b.Remove(testCard, addr(1))
		require.NoError(t, err)
		require.True(t, change.Changed)
		require.Equal(t, addr(2), change.Current)
		require.False(t, b.BidExists(addr(1), testCard))
		requireConsistent(t, b)
	})

	t.Run("middle_keeps_owner", func(t *testing.T) {
		t.Parallel()

		b := newBookWith(t, testConfig(), 300, 200, 100)
		change, err := b.Remove(testCard, addr(2))
		require.NoError(t, err)
		require.False(t, change.Changed)

		bids, err := b.Bids(testCard)
		require.NoError(t, err)
		require.Equal(t, []common.Address{addr(1), addr(3)}, biddersOf(bids))
		requireConsistent(t, b)
	})

	t.Run("last_bid_empties_card", func(t *testing.T) {
		t.Parallel()

		b := newBookWith(t, testConfig(), 300)
		change, err := b.Remove(testCard, addr(1))
		require.NoError(t, err)
		require.True(t, change.Changed)
		require.False(t, change.HasOwner())

		_, err = b.Head(testCard)
		require.ErrorIs(t, err, orderbookerrors.ErrNoBids)
		_, err = b.Bids(testCard)
		require.ErrorIs(t, err, orderbookerrors.ErrNoBids)
		require.Empty(t, b.Cards())
		requireConsistent(t, b)
	})

	t.Run("missing_bid_is_not_found", func(t *testing.T) {
		t.Parallel()

		b := newBookWith(t, testConfig(), 300, 200)
		before, _ := b.Bids(testCard)

		for i := 0; i < 2; i++ {
			_, err := b.Remove(testCard, addr(9))
			require.ErrorIs(t, err, orderbookerrors.ErrBidNotFound)
		}
		_, err := b.Remove(testCard, Top)
		require.ErrorIs(t, err, orderbookerrors.ErrBidNotFound)

		after, _ := b.Bids(testCard)
		require.Equal(t, before, after)
		requireConsistent(t, b)
	})
}

// Inserting then removing a bid restores the previous structure
func TestMemoryBook_InsertRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range []uint64{1000, 300, 200, 150, 100, 1} {
		p := p
		t.Run(new(uint256.Int).SetUint64(p).Dec(), func(t *testing.T) {
			t.Parallel()

			b := newBookWith(t, testConfig(), 300, 200, 200, 100)
			before, err := b.Bids(testCard)
			require.NoError(t, err)

			_, err = b.Insert(testCard, addr(9), price(p), b.FindHint(testCard, price(p)))
			require.NoError(t, err)
			_, err = b.Remove(testCard, addr(9))
			require.NoError(t, err)

			after, err := b.Bids(testCard)
			require.NoError(t, err)
			require.Equal(t, before, after)
			require.Empty(t, b.BidsByBidder(addr(9)))
			requireConsistent(t, b)
		})
	}
}

func TestMemoryBook_BidsByBidder(t *testing.T) {
	t.Parallel()

	b := NewMemoryBook(testConfig())
	cards := []model.Card{
		{Market: testMarket, Token: 3},
		{Market: testMarket, Token: 1},
		{Market: common.HexToAddress("0x01"), Token: 7},
	}
	for _, card := range cards {
		_, err := b.Insert(card, addr(1), price(10), Top)
		require.NoError(t, err)
	}

	bids := b.BidsByBidder(addr(1))
	require.Len(t, bids, 3)
	require.Equal(t, common.HexToAddress("0x01"), bids[0].Card.Market)
	require.Equal(t, uint64(1), bids[1].Card.Token)
	require.Equal(t, uint64(3), bids[2].Card.Token)
	require.Len(t, b.Cards(), 3)
}

func TestMemoryBook_GetBidReturnsCopy(t *testing.T) {
	t.Parallel()

	b := newBookWith(t, testConfig(), 100)
	bid, err := b.GetBid(testCard, addr(1))
	require.NoError(t, err)
	require.Equal(t, testNow, bid.CreatedAt)
	require.NotEmpty(t, bid.BidID)

	bid.Price.SetUint64(1)
	again, err := b.GetBid(testCard, addr(1))
	require.NoError(t, err)
	require.Equal(t, uint64(100), again.Price.Uint64())

	_, err = b.GetBid(testCard, addr(2))
	require.ErrorIs(t, err, orderbookerrors.ErrBidNotFound)
}

func TestMemoryBook_SetTimeHeldLimit(t *testing.T) {
	t.Parallel()

	b := newBookWith(t, testConfig(), 100)

	require.NoError(t, b.SetTimeHeldLimit(testCard, addr(1), 48*time.Hour))
	bid, err := b.GetBid(testCard, addr(1))
	require.NoError(t, err)
	require.Equal(t, 48*time.Hour, bid.TimeHeldLimit)

	require.ErrorIs(t, b.SetTimeHeldLimit(testCard, addr(1), -time.Second), orderbookerrors.ErrInvalidRequest)
	require.ErrorIs(t, b.SetTimeHeldLimit(testCard, addr(2), time.Hour), orderbookerrors.ErrBidNotFound)
}

func TestMemoryBook_Locked(t *testing.T) {
	t.Parallel()

	b := NewMemoryBook(testConfig())
	future := model.Card{Market: testMarket, Token: 2}

	require.False(t, b.Locked(testCard))
	b.Lock(testCard, testNow)
	b.Lock(future, testNow.Add(time.Hour))
	require.True(t, b.Locked(testCard))
	require.False(t, b.Locked(future))

	at, ok := b.LockTime(future)
	require.True(t, ok)
	require.Equal(t, testNow.Add(time.Hour), at)

	_, err := b.Insert(future, addr(1), price(10), Top)
	require.NoError(t, err)
}

// Random operations with honest and stale hints never break the list
func TestMemoryBook_RandomOperationsKeepOrder(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxSearchIterations = 8
	b := NewMemoryBook(cfg)
	rng := rand.New(rand.NewSource(42))
	cards := []model.Card{testCard, {Market: testMarket, Token: 2}}

	for i := 0; i < 2000; i++ {
		card := cards[rng.Intn(len(cards))]
		bidder := addr(rng.Intn(25) + 1)
		p := price(uint64(rng.Intn(60) + 1))

		hint := Top
		switch rng.Intn(3) {
		case 0:
			hint = b.FindHint(card, p)
		case 1:
			hint = addr(rng.Intn(25) + 1)
		}

		switch {
		case rng.Intn(5) == 0:
			_, _ = b.Remove(card, bidder)
		case b.BidExists(bidder, card):
			_, _ = b.UpdatePrice(card, bidder, p, hint)
		default:
			_, _ = b.Insert(card, bidder, p, hint)
		}
	}
	requireConsistent(t, b)
}
