package orderbook

import (
	"time"

	model "card-orderbook/internal/models"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=orderbook

// Top is the sentinel identity of every card list. As a hint it means
// "search from the head"; as a link it marks either end of the list.
var Top = common.Address{}

// Ledger defines the orderbook operations used by the rental market
type Ledger interface {
	Insert(card model.Card, bidder common.Address, price *uint256.Int, hint common.Address) (model.HeadChange, error)
	UpdatePrice(card model.Card, bidder common.Address, price *uint256.Int, hint common.Address) (model.HeadChange, error)
	Remove(card model.Card, bidder common.Address) (model.HeadChange, error)
	RevertToUnderbidder(card model.Card, isSolvent func(model.Bid) bool) (model.Cascade, error)
	PruneExpired(bidder common.Address, cards []model.Card) model.Prune
	RemoveBidder(bidder common.Address) model.Prune
	GetBid(card model.Card, bidder common.Address) (model.Bid, error)
	BidExists(bidder common.Address, card model.Card) bool
	Head(card model.Card) (model.Bid, error)
	Bids(card model.Card) ([]model.Bid, error)
	BidsByBidder(bidder common.Address) []model.Bid
	FindHint(card model.Card, price *uint256.Int) common.Address
	SetTimeHeldLimit(card model.Card, bidder common.Address, limit time.Duration) error
	Lock(card model.Card, at time.Time)
}

// Config bounds the work a single orderbook call may do
type Config struct {
	MinIncreasePercent  uint64 // raise required to take or keep raising the top spot
	MaxSearchIterations int    // positional walk steps per insert or update
	MaxCascade          int    // bids removed per RevertToUnderbidder call
	MaxDeletions        int    // bids removed per PruneExpired or RemoveBidder call
	Now                 func() time.Time
}

// DefaultConfig returns the limits used when none are configured
func DefaultConfig() Config {
	return Config{
		MinIncreasePercent:  10,
		MaxSearchIterations: 100,
		MaxCascade:          10,
		MaxDeletions:        70,
		Now:                 time.Now,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.MaxSearchIterations <= 0 {
		c.MaxSearchIterations = def.MaxSearchIterations
	}
	if c.MaxCascade <= 0 {
		c.MaxCascade = def.MaxCascade
	}
	if c.MaxDeletions <= 0 {
		c.MaxDeletions = def.MaxDeletions
	}
	if c.Now == nil {
		c.Now = def.Now
	}
	return c
}
