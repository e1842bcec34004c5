package models

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Card identifies an auctionable item: one token of one rental market
type Card struct {
	Market common.Address `json:"market"`
	Token  uint64         `json:"token"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s/%d", c.Market.Hex(), c.Token)
}

// Bid represents a bidder's standing offer on a card
type Bid struct {
	BidID         string         `json:"bid_id"`
	Card          Card           `json:"card"`
	Bidder        common.Address `json:"bidder"`
	Price         *uint256.Int   `json:"price"`
	TimeHeldLimit time.Duration  `json:"time_held_limit"` // 0 means unlimited
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Clone returns a copy that does not share the price with b
func (b Bid) Clone() Bid {
	if b.Price != nil {
		b.Price = new(uint256.Int).Set(b.Price)
	}
	return b
}

// HeadChange reports how an orderbook mutation affected card ownership
type HeadChange struct {
	Card     Card           `json:"card"`
	Changed  bool           `json:"changed"`
	Previous common.Address `json:"previous"`
	Current  common.Address `json:"current"` // zero address when the card has no bids left
}

// HasOwner reports whether the card still has a top bidder after the change
func (h HeadChange) HasOwner() bool {
	return h.Current != (common.Address{})
}

// Cascade is the outcome of reverting a card to its underbidders
type Cascade struct {
	Removed []Bid          `json:"removed"`
	Head    common.Address `json:"head"`    // zero address when the list emptied
	Pending bool           `json:"pending"` // cap reached while the head is still insolvent
}

// Prune is the outcome of removing a bidder's bids from locked cards
type Prune struct {
	Removed   []Card       `json:"removed"`
	Remaining int          `json:"remaining"`
	Changes   []HeadChange `json:"changes,omitempty"` // ownership changes caused by the removals
}

// LockEntry records when a card stops accepting bids
type LockEntry struct {
	Card   Card      `json:"card"`
	LockAt time.Time `json:"lock_at"`
}

// Account is a bidder's deposit together with any bids pruned while updating it
type Account struct {
	Bidder    common.Address `json:"bidder"`
	Balance   *uint256.Int   `json:"balance"`
	Pruned    []Card         `json:"pruned,omitempty"`
	Remaining int            `json:"remaining,omitempty"` // prunable bids left for a later call
}

// Rent is the outcome of charging a card's owner for elapsed time
type Rent struct {
	Card       Card           `json:"card"`
	Owner      common.Address `json:"owner"`
	Due        *uint256.Int   `json:"due"`
	Paid       *uint256.Int   `json:"paid"`
	Foreclosed bool           `json:"foreclosed"` // owner could not pay and was removed
	NewOwner   common.Address `json:"new_owner"`
	Pending    bool           `json:"pending"` // cascade stopped with an insolvent owner left
}
