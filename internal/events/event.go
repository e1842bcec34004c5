package events

import (
	"context"
	"fmt"
	"time"

	model "card-orderbook/internal/models"
	"card-orderbook/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Type names the kind of orderbook event
type Type string

const (
	TypeOwnerChanged   Type = "owner_changed"
	TypeCascadePending Type = "cascade_pending"
	TypeBidsPruned     Type = "bids_pruned"
)

// Event is published whenever card ownership changes or follow-up work is left behind
type Event struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Card      model.Card     `json:"card"`
	Previous  common.Address `json:"previous"`
	Current   common.Address `json:"current"`
	Bidder    common.Address `json:"bidder"`
	Price     string         `json:"price,omitempty"` // decimal price of the current owner
	Count     int            `json:"count,omitempty"`
	Remaining int            `json:"remaining,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// Publisher delivers events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// OwnerChanged builds the event for a head change. price may be nil when
// the card has no owner left.
func OwnerChanged(change model.HeadChange, price *uint256.Int) Event {
	ev := Event{
		ID:        utils.GenerateID(),
		Type:      TypeOwnerChanged,
		Card:      change.Card,
		Previous:  change.Previous,
		Current:   change.Current,
		Timestamp: time.Now().Unix(),
	}
	if price != nil {
		ev.Price = price.Dec()
	}
	return ev
}

// CascadePending builds the event for a cascade stopped by its cap
func CascadePending(card model.Card, head common.Address, removed int) Event {
	return Event{
		ID:        utils.GenerateID(),
		Type:      TypeCascadePending,
		Card:      card,
		Current:   head,
		Count:     removed,
		Timestamp: time.Now().Unix(),
	}
}

// BidsPruned builds the event for a bidder whose bids on locked cards were pruned
func BidsPruned(bidder common.Address, removed, remaining int) Event {
	return Event{
		ID:        utils.GenerateID(),
		Type:      TypeBidsPruned,
		Bidder:    bidder,
		Count:     removed,
		Timestamp: time.Now().Unix(),
		Remaining: remaining,
	}
}

// Channel returns the pub/sub channel carrying event: per card for
// ownership events, per bidder for pruning
func Channel(event Event) string {
	if event.Type == TypeBidsPruned {
		return fmt.Sprintf("orderbook:bidder:%s", event.Bidder.Hex())
	}
	return fmt.Sprintf("orderbook:%s:%d", event.Card.Market.Hex(), event.Card.Token)
}

// LogPublisher writes events to the application log
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	utils.Info("event published", map[string]any{
		"event_id": event.ID,
		"type":     string(event.Type),
		"card":     event.Card.String(),
		"previous": event.Previous.Hex(),
		"current":  event.Current.Hex(),
		"bidder":   event.Bidder.Hex(),
		"price":    event.Price,
		"count":    event.Count,
	})
	return nil
}

func (LogPublisher) Close() error { return nil }
