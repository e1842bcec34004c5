package orderbook

import (
	"bytes"
	"fmt"
	"slices"
	"sync"
	"time"

	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbookerrors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type key struct {
	card   model.Card
	bidder common.Address
}

type node struct {
	bid  model.Bid
	next common.Address
	prev common.Address
}

// MemoryBook is an in-memory implementation of Ledger.
//
// Each card's bids form a circular doubly-linked list threaded through a
// sentinel node stored under (card, Top): the sentinel's next is the head
// (current owner) and its prev the tail. Nodes link by bidder identity and
// live in a single arena map. Prices are non-increasing from the head and
// equal prices keep arrival order.
type MemoryBook struct {
	mu      sync.RWMutex
	cfg     Config
	nodes   map[key]*node
	lengths map[model.Card]int
	byUser  map[common.Address]map[model.Card]struct{}
	locks   map[model.Card]time.Time
}

// NewMemoryBook creates an empty orderbook
func NewMemoryBook(cfg Config) *MemoryBook {
	return &MemoryBook{
		cfg:     cfg.normalized(),
		nodes:   make(map[key]*node),
		lengths: make(map[model.Card]int),
		byUser:  make(map[common.Address]map[model.Card]struct{}),
		locks:   make(map[model.Card]time.Time),
	}
}

// GetBid returns bidder's bid on card
func (b *MemoryBook) GetBid(card model.Card, bidder common.Address) (model.Bid, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n, ok := b.nodes[key{card: card, bidder: bidder}]
	if !ok || bidder == Top {
		return model.Bid{}, fmt.Errorf("get bid of %s on card %s: %w", bidder.Hex(), card, orderbookerrors.ErrBidNotFound)
	}
	return n.bid.Clone(), nil
}

// BidExists reports whether bidder has a bid on card
func (b *MemoryBook) BidExists(bidder common.Address, card model.Card) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if bidder == Top {
		return false
	}
	_, ok := b.nodes[key{card: card, bidder: bidder}]
	return ok
}

// Head returns the top bid, i.e. the current owner of card
func (b *MemoryBook) Head(card model.Card) (model.Bid, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	head := b.headLocked(card)
	if head == Top {
		return model.Bid{}, fmt.Errorf("get head of card %s: %w", card, orderbookerrors.ErrNoBids)
	}
	return b.nodes[key{card: card, bidder: head}].bid.Clone(), nil
}

// Bids returns the bids on card from the head down
func (b *MemoryBook) Bids(card model.Card) ([]model.Bid, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.lengths[card] == 0 {
		return nil, fmt.Errorf("get bids for card %s: %w", card, orderbookerrors.ErrNoBids)
	}
	return b.walkLocked(card), nil
}

// BidsByBidder returns every bid placed by bidder, ordered by card
func (b *MemoryBook) BidsByBidder(bidder common.Address) []model.Bid {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cards := b.cardsOfLocked(bidder)
	bids := make([]model.Bid, 0, len(cards))
	for _, card := range cards {
		bids = append(bids, b.nodes[key{card: card, bidder: bidder}].bid.Clone())
	}
	return bids
}

// Len returns the number of bids on card
func (b *MemoryBook) Len(card model.Card) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lengths[card]
}

// Cards returns every card that currently has bids, ordered
func (b *MemoryBook) Cards() []model.Card {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cards := make([]model.Card, 0, len(b.lengths))
	for card, n := range b.lengths {
		if n > 0 {
			cards = append(cards, card)
		}
	}
	sortCards(cards)
	return cards
}

// FindHint scans card from the head and returns the bidder directly above
// where a bid of price would be placed, or Top. Unlike Insert it is not
// bounded; callers use it to recover from a rejected hint.
func (b *MemoryBook) FindHint(card model.Card, price *uint256.Int) common.Address {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, ok := b.nodes[key{card: card, bidder: Top}]; !ok || price == nil {
		return Top
	}
	cur := Top
	for {
		next := b.nodes[key{card: card, bidder: cur}].next
		if next == Top || b.nodes[key{card: card, bidder: next}].bid.Price.Lt(price) {
			return cur
		}
		cur = next
	}
}

// Lock sets the time after which card rejects bids and its bids may be pruned
func (b *MemoryBook) Lock(card model.Card, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.locks[card] = at
}

// LockTime returns the lock time of card, if one was set
func (b *MemoryBook) LockTime(card model.Card) (time.Time, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	at, ok := b.locks[card]
	return at, ok
}

// Locked reports whether card has passed its lock time
func (b *MemoryBook) Locked(card model.Card) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lockedLocked(card, b.cfg.Now())
}

func (b *MemoryBook) lockedLocked(card model.Card, now time.Time) bool {
	at, ok := b.locks[card]
	return ok && !now.Before(at)
}

func (b *MemoryBook) headLocked(card model.Card) common.Address {
	s, ok := b.nodes[key{card: card, bidder: Top}]
	if !ok {
		return Top
	}
	return s.next
}

func (b *MemoryBook) walkLocked(card model.Card) []model.Bid {
	bids := make([]model.Bid, 0, b.lengths[card])
	for cur := b.headLocked(card); cur != Top; {
		n := b.nodes[key{card: card, bidder: cur}]
		bids = append(bids, n.bid.Clone())
		cur = n.next
	}
	return bids
}

func (b *MemoryBook) cardsOfLocked(bidder common.Address) []model.Card {
	set := b.byUser[bidder]
	cards := make([]model.Card, 0, len(set))
	for card := range set {
		cards = append(cards, card)
	}
	sortCards(cards)
	return cards
}

func (b *MemoryBook) indexed(bidder common.Address, card model.Card) bool {
	_, ok := b.byUser[bidder][card]
	return ok
}

func (b *MemoryBook) indexAdd(bidder common.Address, card model.Card) {
	set, ok := b.byUser[bidder]
	if !ok {
		set = make(map[model.Card]struct{})
		b.byUser[bidder] = set
	}
	set[card] = struct{}{}
}

func (b *MemoryBook) indexDel(bidder common.Address, card model.Card) {
	set, ok := b.byUser[bidder]
	if !ok {
		return
	}
	delete(set, card)
	if len(set) == 0 {
		delete(b.byUser, bidder)
	}
}

func sortCards(cards []model.Card) {
	slices.SortFunc(cards, func(x, y model.Card) int {
		if c := bytes.Compare(x.Market[:], y.Market[:]); c != 0 {
			return c
		}
		switch {
		case x.Token < y.Token:
			return -1
		case x.Token > y.Token:
			return 1
		}
		return 0
	})
}
