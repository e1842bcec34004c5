package orderbook

import (
	"fmt"

	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbookerrors"
)

// Export returns every bid, grouped by card in list order, and every lock
func (b *MemoryBook) Export() ([]model.Bid, []model.LockEntry) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cards := make([]model.Card, 0, len(b.lengths))
	for card, n := range b.lengths {
		if n > 0 {
			cards = append(cards, card)
		}
	}
	sortCards(cards)

	var bids []model.Bid
	for _, card := range cards {
		bids = append(bids, b.walkLocked(card)...)
	}

	locks := make([]model.LockEntry, 0, len(b.locks))
	lockCards := make([]model.Card, 0, len(b.locks))
	for card := range b.locks {
		lockCards = append(lockCards, card)
	}
	sortCards(lockCards)
	for _, card := range lockCards {
		locks = append(locks, model.LockEntry{Card: card, LockAt: b.locks[card]})
	}
	return bids, locks
}

// Restore appends bids, in the order given, to the tail of their card lists.
// Each card's bids must arrive in non-increasing price order. Either every
// bid is restored or none is.
func (b *MemoryBook) Restore(bids []model.Bid, locks []model.LockEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.atomically(func(j *journal) error {
		for _, bid := range bids {
			if err := validPrice(bid.Price); err != nil {
				return fmt.Errorf("bid of %s on card %s: %w", bid.Bidder.Hex(), bid.Card, err)
			}
			if bid.Bidder == Top {
				return fmt.Errorf("bid on card %s: %w - zero bidder", bid.Card, orderbookerrors.ErrInvalidRequest)
			}
			if _, ok := b.nodes[key{card: bid.Card, bidder: bid.Bidder}]; ok {
				return fmt.Errorf("bid of %s on card %s: %w", bid.Bidder.Hex(), bid.Card, orderbookerrors.ErrBidExists)
			}
			j.ensureList(bid.Card)
			tail := b.nodes[key{card: bid.Card, bidder: Top}].prev
			if tail != Top && b.nodes[key{card: bid.Card, bidder: tail}].bid.Price.Lt(bid.Price) {
				return fmt.Errorf("bid of %s on card %s: %w - out of order", bid.Bidder.Hex(), bid.Card, orderbookerrors.ErrLocationTooLow)
			}
			j.link(bid.Card, tail, bid.Clone())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("restore orderbook: %w", err)
	}

	for _, l := range locks {
		b.locks[l.Card] = l.LockAt
	}
	return nil
}
