package orderbook

import (
	"fmt"

	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbookerrors"
	"card-orderbook/utils"

	"github.com/ethereum/go-ethereum/common"
)

// RevertToUnderbidder removes the current owner of card, then keeps removing
// each newly promoted owner for whom isSolvent reports false. At most
// MaxCascade bids are removed per call; if the cap stops the cascade while
// the head is still insolvent, Pending is set and a later call resumes.
//
// isSolvent runs with the orderbook locked and must not call back into it.
// A nil isSolvent treats every underbidder as solvent.
func (b *MemoryBook) RevertToUnderbidder(card model.Card, isSolvent func(model.Bid) bool) (model.Cascade, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	head := b.headLocked(card)
	if head == Top {
		return model.Cascade{}, fmt.Errorf("revert card %s to underbidder: %w", card, orderbookerrors.ErrNoBids)
	}

	var res model.Cascade
	err := b.atomically(func(j *journal) error {
		for {
			bid, err := j.unlink(card, head)
			if err != nil {
				return err
			}
			res.Removed = append(res.Removed, bid.Clone())
			head = b.headLocked(card)
			if head == Top || isSolvent == nil || isSolvent(b.nodes[key{card: card, bidder: head}].bid.Clone()) {
				break
			}
			if len(res.Removed) >= b.cfg.MaxCascade {
				res.Pending = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return model.Cascade{}, fmt.Errorf("revert card %s to underbidder: %w", card, err)
	}
	res.Head = head

	fields := map[string]any{
		"card":    card.String(),
		"removed": len(res.Removed),
		"head":    head.Hex(),
		"pending": res.Pending,
	}
	if res.Pending {
		utils.Warn("orderbook: cascade capped with insolvent owner", fields)
	} else {
		utils.Debug("orderbook: reverted to underbidder", fields)
	}
	return res, nil
}

// PruneExpired removes bidder's bids on those cards in the given set whose
// lock time has passed. At most MaxDeletions bids are removed per call;
// Remaining counts the prunable bids left behind.
func (b *MemoryBook) PruneExpired(bidder common.Address, cards []model.Card) model.Prune {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.cfg.Now()
	var res model.Prune
	seen := make(map[model.Card]struct{}, len(cards))
	err := b.atomically(func(j *journal) error {
		for _, card := range cards {
			if _, dup := seen[card]; dup {
				continue
			}
			seen[card] = struct{}{}
			if _, ok := b.nodes[key{card: card, bidder: bidder}]; !ok || bidder == Top {
				continue
			}
			if !b.lockedLocked(card, now) {
				continue
			}
			if len(res.Removed) >= b.cfg.MaxDeletions {
				res.Remaining++
				continue
			}
			if err := b.collect(j, &res, card, bidder); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.Error("orderbook: prune rolled back", map[string]any{"bidder": bidder.Hex(), "error": err.Error()})
		return model.Prune{}
	}

	if len(res.Removed) > 0 {
		utils.Info("orderbook: pruned bids on locked cards", map[string]any{
			"bidder":    bidder.Hex(),
			"removed":   len(res.Removed),
			"remaining": res.Remaining,
		})
	}
	return res
}

// RemoveBidder removes every bid bidder holds, up to MaxDeletions per call
func (b *MemoryBook) RemoveBidder(bidder common.Address) model.Prune {
	b.mu.Lock()
	defer b.mu.Unlock()

	var res model.Prune
	cards := b.cardsOfLocked(bidder)
	err := b.atomically(func(j *journal) error {
		for i, card := range cards {
			if len(res.Removed) >= b.cfg.MaxDeletions {
				res.Remaining = len(cards) - i
				break
			}
			if err := b.collect(j, &res, card, bidder); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.Error("orderbook: bidder removal rolled back", map[string]any{"bidder": bidder.Hex(), "error": err.Error()})
		return model.Prune{Remaining: len(cards)}
	}

	utils.Info("orderbook: removed bidder", map[string]any{
		"bidder":    bidder.Hex(),
		"removed":   len(res.Removed),
		"remaining": res.Remaining,
	})
	return res
}

func (b *MemoryBook) collect(j *journal, res *model.Prune, card model.Card, bidder common.Address) error {
	change, err := b.removeLocked(j, card, bidder)
	if err != nil {
		return err
	}
	res.Removed = append(res.Removed, change.Card)
	if change.Changed {
		res.Changes = append(res.Changes, change)
	}
	return nil
}
