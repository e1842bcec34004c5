package orderbook

import (
	"fmt"
	"time"

	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbookerrors"
	"card-orderbook/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var hundred = uint256.NewInt(100)

// Insert places a new bid for bidder on card, searching for its slot from
// hint downwards. hint must be a bidder on card priced at or above price, or
// Top to search from the head.
func (b *MemoryBook) Insert(card model.Card, bidder common.Address, price *uint256.Int, hint common.Address) (model.HeadChange, error) {
	if err := validPrice(price); err != nil {
		return model.HeadChange{}, fmt.Errorf("insert on card %s: %w", card, err)
	}
	if bidder == Top {
		return model.HeadChange{}, fmt.Errorf("insert on card %s: %w - zero bidder", card, orderbookerrors.ErrInvalidRequest)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.cfg.Now()
	if b.lockedLocked(card, now) {
		return model.HeadChange{}, fmt.Errorf("insert on card %s: %w", card, orderbookerrors.ErrCardLocked)
	}
	if _, ok := b.nodes[key{card: card, bidder: bidder}]; ok {
		return model.HeadChange{}, fmt.Errorf("insert %s on card %s: %w", bidder.Hex(), card, orderbookerrors.ErrBidExists)
	}

	var change model.HeadChange
	err := b.atomically(func(j *journal) error {
		j.ensureList(card)
		oldHead := b.headLocked(card)

		prev, err := b.findSlot(card, price, hint)
		if err != nil {
			return err
		}
		if prev == Top && oldHead != Top {
			if err := b.checkTakeover(card, oldHead, price); err != nil {
				return err
			}
		}

		j.link(card, prev, model.Bid{
			BidID:     utils.GenerateID(),
			Card:      card,
			Bidder:    bidder,
			Price:     new(uint256.Int).Set(price),
			CreatedAt: now,
			UpdatedAt: now,
		})
		change = headChange(card, oldHead, b.headLocked(card))
		return nil
	})
	if err != nil {
		return model.HeadChange{}, fmt.Errorf("insert %s on card %s: %w", bidder.Hex(), card, err)
	}

	utils.Debug("orderbook: bid inserted", map[string]any{
		"card":     card.String(),
		"bidder":   bidder.Hex(),
		"price":    price.Dec(),
		"new_head": change.Changed,
	})
	return change, nil
}

// UpdatePrice moves bidder's bid on card to price.
//
// A bid that still fits between its neighbours is changed in place; the top
// bidder raising its price must raise by at least MinIncreasePercent. A bid
// that no longer fits is unlinked and placed again from hint, where the
// bidder's own address stands for its old predecessor. Falling to an equal
// price with a neighbour places the bid below it.
func (b *MemoryBook) UpdatePrice(card model.Card, bidder common.Address, price *uint256.Int, hint common.Address) (model.HeadChange, error) {
	if err := validPrice(price); err != nil {
		return model.HeadChange{}, fmt.Errorf("update price on card %s: %w", card, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.cfg.Now()
	if b.lockedLocked(card, now) {
		return model.HeadChange{}, fmt.Errorf("update price on card %s: %w", card, orderbookerrors.ErrCardLocked)
	}
	n, ok := b.nodes[key{card: card, bidder: bidder}]
	if !ok || bidder == Top {
		return model.HeadChange{}, fmt.Errorf("update price of %s on card %s: %w", bidder.Hex(), card, orderbookerrors.ErrBidNotFound)
	}

	var change model.HeadChange
	err := b.atomically(func(j *journal) error {
		oldHead := b.headLocked(card)
		if hint == bidder {
			hint = n.prev
		}

		if b.fitsInPlace(card, n, price) {
			if oldHead == bidder && price.Gt(n.bid.Price) && !b.meetsRaise(price, n.bid.Price) {
				return fmt.Errorf("%w - raise from %s to %s below %d%%",
					orderbookerrors.ErrInvalidPrice, n.bid.Price.Dec(), price.Dec(), b.cfg.MinIncreasePercent)
			}
			w := j.write(card, bidder)
			w.bid.Price = new(uint256.Int).Set(price)
			w.bid.UpdatedAt = now
			change = headChange(card, oldHead, oldHead)
			return nil
		}

		bid, err := j.unlink(card, bidder)
		if err != nil {
			return err
		}
		prev, err := b.findSlot(card, price, hint)
		if err != nil {
			return err
		}
		if prev == Top {
			if head := b.headLocked(card); head != Top {
				if err := b.checkTakeover(card, head, price); err != nil {
					return err
				}
			}
		}
		bid.Price = new(uint256.Int).Set(price)
		bid.UpdatedAt = now
		j.link(card, prev, bid)
		change = headChange(card, oldHead, b.headLocked(card))
		return nil
	})
	if err != nil {
		return model.HeadChange{}, fmt.Errorf("update price of %s on card %s: %w", bidder.Hex(), card, err)
	}

	utils.Debug("orderbook: bid price updated", map[string]any{
		"card":         card.String(),
		"bidder":       bidder.Hex(),
		"price":        price.Dec(),
		"head_changed": change.Changed,
	})
	return change, nil
}

// Remove unlinks bidder's bid on card. Removing the head promotes the next bid.
func (b *MemoryBook) Remove(card model.Card, bidder common.Address) (model.HeadChange, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.nodes[key{card: card, bidder: bidder}]; !ok || bidder == Top {
		return model.HeadChange{}, fmt.Errorf("remove %s from card %s: %w", bidder.Hex(), card, orderbookerrors.ErrBidNotFound)
	}

	var change model.HeadChange
	err := b.atomically(func(j *journal) (err error) {
		change, err = b.removeLocked(j, card, bidder)
		return err
	})
	if err != nil {
		return model.HeadChange{}, fmt.Errorf("remove %s from card %s: %w", bidder.Hex(), card, err)
	}
	return change, nil
}

// SetTimeHeldLimit replaces the time-held limit of bidder's bid on card
func (b *MemoryBook) SetTimeHeldLimit(card model.Card, bidder common.Address, limit time.Duration) error {
	if limit < 0 {
		return fmt.Errorf("set time held limit on card %s: %w - negative limit", card, orderbookerrors.ErrInvalidRequest)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.nodes[key{card: card, bidder: bidder}]
	if !ok || bidder == Top {
		return fmt.Errorf("set time held limit of %s on card %s: %w", bidder.Hex(), card, orderbookerrors.ErrBidNotFound)
	}
	n.bid.TimeHeldLimit = limit
	n.bid.UpdatedAt = b.cfg.Now()
	return nil
}

func (b *MemoryBook) removeLocked(j *journal, card model.Card, bidder common.Address) (model.HeadChange, error) {
	oldHead := b.headLocked(card)
	if _, err := j.unlink(card, bidder); err != nil {
		return model.HeadChange{}, err
	}
	return headChange(card, oldHead, b.headLocked(card)), nil
}

// findSlot returns the bidder directly above where a bid of price belongs,
// walking at most MaxSearchIterations steps from hint.
func (b *MemoryBook) findSlot(card model.Card, price *uint256.Int, hint common.Address) (common.Address, error) {
	if hint != Top {
		h, ok := b.nodes[key{card: card, bidder: hint}]
		if !ok {
			return Top, fmt.Errorf("hint %s: %w", hint.Hex(), orderbookerrors.ErrBidNotFound)
		}
		if h.bid.Price.Lt(price) {
			return Top, fmt.Errorf("%w - hint %s priced %s below %s",
				orderbookerrors.ErrLocationTooLow, hint.Hex(), h.bid.Price.Dec(), price.Dec())
		}
	}

	cur := hint
	for steps := 0; ; steps++ {
		next := b.nodes[key{card: card, bidder: cur}].next
		if next == Top || b.nodes[key{card: card, bidder: next}].bid.Price.Lt(price) {
			return cur, nil
		}
		if steps >= b.cfg.MaxSearchIterations {
			if hint == Top {
				return Top, fmt.Errorf("%w - no slot within %d bids of the head",
					orderbookerrors.ErrIterationLimitExceeded, b.cfg.MaxSearchIterations)
			}
			return Top, fmt.Errorf("%w - no slot within %d bids of hint %s",
				orderbookerrors.ErrLocationTooHigh, b.cfg.MaxSearchIterations, hint.Hex())
		}
		cur = next
	}
}

// fitsInPlace reports whether n can take price without moving: strictly
// above its successor and no higher than its predecessor.
func (b *MemoryBook) fitsInPlace(card model.Card, n *node, price *uint256.Int) bool {
	if n.prev != Top && b.nodes[key{card: card, bidder: n.prev}].bid.Price.Lt(price) {
		return false
	}
	if n.next != Top && !b.nodes[key{card: card, bidder: n.next}].bid.Price.Lt(price) {
		return false
	}
	return true
}

func (b *MemoryBook) checkTakeover(card model.Card, head common.Address, price *uint256.Int) error {
	current := b.nodes[key{card: card, bidder: head}].bid.Price
	if b.meetsRaise(price, current) {
		return nil
	}
	return fmt.Errorf("%w - %s does not beat owner price %s by %d%%",
		orderbookerrors.ErrInvalidPrice, price.Dec(), current.Dec(), b.cfg.MinIncreasePercent)
}

// meetsRaise reports whether price >= current + current * MinIncreasePercent / 100.
// A requirement beyond 256 bits saturates, so only the maximum price meets it.
func (b *MemoryBook) meetsRaise(price, current *uint256.Int) bool {
	need, overflow := new(uint256.Int).MulDivOverflow(current, uint256.NewInt(b.cfg.MinIncreasePercent), hundred)
	if !overflow {
		_, overflow = need.AddOverflow(need, current)
	}
	if overflow {
		need.SetAllOne()
	}
	return !price.Lt(need)
}

func validPrice(price *uint256.Int) error {
	if price == nil || price.IsZero() {
		return fmt.Errorf("%w - price must be positive", orderbookerrors.ErrInvalidPrice)
	}
	return nil
}

func headChange(card model.Card, before, after common.Address) model.HeadChange {
	return model.HeadChange{
		Card:     card,
		Changed:  before != after,
		Previous: before,
		Current:  after,
	}
}
