package market

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"card-orderbook/internal/events"
	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbook"
	"card-orderbook/internal/orderbookerrors"
	"card-orderbook/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Params sets the rent schedule
type Params struct {
	RentPeriod        time.Duration // time for which a bid's price is charged once
	MinRentalDuration time.Duration // rent a bidder must be able to cover to bid or stay owner
}

// DefaultParams returns a daily rent period with one hour of required cover
func DefaultParams() Params {
	return Params{RentPeriod: 24 * time.Hour, MinRentalDuration: time.Hour}
}

// RentalService runs the rental market on top of the orderbook: it checks
// deposits, charges owners and decides when bids are removed
type RentalService struct {
	// mu serialises operations made of several orderbook calls, so the
	// owner read at the start is still the owner when the book is changed
	mu        sync.Mutex
	book      orderbook.Ledger
	treasury  *Treasury
	publisher events.Publisher
	params    Params
}

// NewRentalService creates a new RentalService instance
func NewRentalService(book orderbook.Ledger, treasury *Treasury, publisher events.Publisher, params Params) *RentalService {
	if params.RentPeriod <= 0 {
		params.RentPeriod = DefaultParams().RentPeriod
	}
	if params.MinRentalDuration < 0 {
		params.MinRentalDuration = 0
	}
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &RentalService{
		book:      book,
		treasury:  treasury,
		publisher: publisher,
		params:    params,
	}
}

// PlaceBid creates bidder's bid on card or moves it to price. A rejected
// hint is recomputed once before giving up.
func (s *RentalService) PlaceBid(ctx context.Context, card model.Card, bidder common.Address, price *uint256.Int, hint common.Address, timeHeldLimit time.Duration) (model.Bid, error) {
	if err := validateBid(card, bidder, price, timeHeldLimit); err != nil {
		return model.Bid{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	need := s.minimumRental(price)
	if !s.treasury.Covers(bidder, need) {
		return model.Bid{}, fmt.Errorf("service: %w - bid of %s needs a deposit of %s",
			orderbookerrors.ErrInsufficientDeposit, price.Dec(), need.Dec())
	}

	place := s.book.Insert
	if s.book.BidExists(bidder, card) {
		place = s.book.UpdatePrice
	}

	change, err := place(card, bidder, price, hint)
	if retryable(err, hint) {
		corrected := s.book.FindHint(card, price)
		utils.Debug("service: retrying bid with corrected hint", map[string]any{
			"card":   card.String(),
			"bidder": bidder.Hex(),
			"hint":   hint.Hex(),
			"retry":  corrected.Hex(),
		})
		change, err = place(card, bidder, price, corrected)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to place bid on card %s by %s: %w", card, bidder.Hex(), err)
	}

	if err := s.book.SetTimeHeldLimit(card, bidder, timeHeldLimit); err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to set time held limit on card %s: %w", card, err)
	}
	s.publishChange(ctx, change)

	bid, err := s.book.GetBid(card, bidder)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to read back bid on card %s: %w", card, err)
	}
	return bid, nil
}

// ExitCard withdraws bidder's bid on card
func (s *RentalService) ExitCard(ctx context.Context, card model.Card, bidder common.Address) error {
	if bidder == orderbook.Top {
		return fmt.Errorf("service: %w - missing bidder", orderbookerrors.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	change, err := s.book.Remove(card, bidder)
	if err != nil {
		return fmt.Errorf("service: failed to exit card %s for %s: %w", card, bidder.Hex(), err)
	}
	s.publishChange(ctx, change)
	return nil
}

// Deposit credits bidder and prunes its bids on locked cards
func (s *RentalService) Deposit(ctx context.Context, bidder common.Address, amount *uint256.Int) (model.Account, error) {
	if bidder == orderbook.Top {
		return model.Account{}, fmt.Errorf("service: %w - missing bidder", orderbookerrors.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bal, err := s.treasury.Deposit(bidder, amount)
	if err != nil {
		return model.Account{}, fmt.Errorf("service: failed to deposit for %s: %w", bidder.Hex(), err)
	}

	prune := s.prune(ctx, bidder)
	return model.Account{
		Bidder:    bidder,
		Balance:   bal,
		Pruned:    prune.Removed,
		Remaining: prune.Remaining,
	}, nil
}

// Withdraw returns amount of bidder's deposit
func (s *RentalService) Withdraw(ctx context.Context, bidder common.Address, amount *uint256.Int) (model.Account, error) {
	if bidder == orderbook.Top {
		return model.Account{}, fmt.Errorf("service: %w - missing bidder", orderbookerrors.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bal, err := s.treasury.Withdraw(bidder, amount)
	if err != nil {
		return model.Account{}, fmt.Errorf("service: failed to withdraw for %s: %w", bidder.Hex(), err)
	}

	prune := s.prune(ctx, bidder)
	return model.Account{
		Bidder:    bidder,
		Balance:   bal,
		Pruned:    prune.Removed,
		Remaining: prune.Remaining,
	}, nil
}

// Balance returns bidder's deposit
func (s *RentalService) Balance(bidder common.Address) model.Account {
	return model.Account{Bidder: bidder, Balance: s.treasury.Balance(bidder)}
}

// CollectRent charges card's owner for elapsed time. An owner that cannot
// pay in full is drained and replaced by the highest solvent underbidder.
func (s *RentalService) CollectRent(ctx context.Context, card model.Card, elapsed time.Duration) (model.Rent, error) {
	if elapsed < 0 {
		return model.Rent{}, fmt.Errorf("service: %w - negative elapsed time", orderbookerrors.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.book.Head(card)
	if err != nil {
		return model.Rent{}, fmt.Errorf("service: failed to get owner of card %s: %w", card, err)
	}

	due, ok := s.prorate(owner.Price, elapsed)
	if !ok {
		return model.Rent{}, fmt.Errorf("service: %w - rent for card %s overflows", orderbookerrors.ErrInvalidPrice, card)
	}
	paid := s.treasury.Debit(owner.Bidder, due)
	rent := model.Rent{
		Card:     card,
		Owner:    owner.Bidder,
		Due:      due,
		Paid:     paid,
		NewOwner: owner.Bidder,
	}
	if !paid.Lt(due) {
		return rent, nil
	}

	cascade, err := s.book.RevertToUnderbidder(card, s.isSolvent)
	if err != nil {
		return model.Rent{}, fmt.Errorf("service: failed to foreclose card %s: %w", card, err)
	}
	rent.Foreclosed = true
	rent.NewOwner = cascade.Head
	rent.Pending = cascade.Pending

	utils.Info("service: owner foreclosed", map[string]any{
		"card":      card.String(),
		"owner":     owner.Bidder.Hex(),
		"due":       due.Dec(),
		"paid":      paid.Dec(),
		"new_owner": cascade.Head.Hex(),
		"removed":   len(cascade.Removed),
	})
	s.publishChange(ctx, model.HeadChange{
		Card:     card,
		Changed:  cascade.Head != owner.Bidder,
		Previous: owner.Bidder,
		Current:  cascade.Head,
	})
	if cascade.Pending {
		s.publish(ctx, events.CascadePending(card, cascade.Head, len(cascade.Removed)))
	}
	return rent, nil
}

// Foreclose removes every bid bidder holds
func (s *RentalService) Foreclose(ctx context.Context, bidder common.Address) (model.Prune, error) {
	if bidder == orderbook.Top {
		return model.Prune{}, fmt.Errorf("service: %w - missing bidder", orderbookerrors.ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.book.RemoveBidder(bidder)
	for _, change := range res.Changes {
		s.publishChange(ctx, change)
	}
	return res, nil
}

// LockCard stops card taking bids from at onwards
func (s *RentalService) LockCard(_ context.Context, card model.Card, at time.Time) error {
	if at.IsZero() {
		return fmt.Errorf("service: %w - missing lock time", orderbookerrors.ErrInvalidRequest)
	}
	s.book.Lock(card, at)
	utils.Info("service: card lock scheduled", map[string]any{
		"card":    card.String(),
		"lock_at": at.UTC().Format(time.RFC3339),
	})
	return nil
}

// Owner returns the top bid on card
func (s *RentalService) Owner(card model.Card) (model.Bid, error) {
	bid, err := s.book.Head(card)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to get owner of card %s: %w", card, err)
	}
	return bid, nil
}

// Bids returns all bids on card, highest first
func (s *RentalService) Bids(card model.Card) ([]model.Bid, error) {
	bids, err := s.book.Bids(card)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for card %s: %w", card, err)
	}
	return bids, nil
}

// Bid returns bidder's bid on card
func (s *RentalService) Bid(card model.Card, bidder common.Address) (model.Bid, error) {
	bid, err := s.book.GetBid(card, bidder)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to get bid on card %s: %w", card, err)
	}
	return bid, nil
}

// BidsByBidder returns every bid bidder holds
func (s *RentalService) BidsByBidder(bidder common.Address) ([]model.Bid, error) {
	if bidder == orderbook.Top {
		return nil, fmt.Errorf("service: %w - missing bidder", orderbookerrors.ErrInvalidRequest)
	}
	return s.book.BidsByBidder(bidder), nil
}

func (s *RentalService) prune(ctx context.Context, bidder common.Address) model.Prune {
	bids := s.book.BidsByBidder(bidder)
	if len(bids) == 0 {
		return model.Prune{}
	}
	cards := make([]model.Card, len(bids))
	for i, bid := range bids {
		cards[i] = bid.Card
	}

	res := s.book.PruneExpired(bidder, cards)
	for _, change := range res.Changes {
		s.publishChange(ctx, change)
	}
	if len(res.Removed) > 0 {
		s.publish(ctx, events.BidsPruned(bidder, len(res.Removed), res.Remaining))
	}
	return res
}

// isSolvent runs under the orderbook lock and only consults the treasury
func (s *RentalService) isSolvent(bid model.Bid) bool {
	return s.treasury.Covers(bid.Bidder, s.minimumRental(bid.Price))
}

func (s *RentalService) minimumRental(price *uint256.Int) *uint256.Int {
	need, ok := s.prorate(price, s.params.MinRentalDuration)
	if !ok {
		return new(uint256.Int).SetAllOne()
	}
	return need
}

// prorate returns price * d / RentPeriod
func (s *RentalService) prorate(price *uint256.Int, d time.Duration) (*uint256.Int, bool) {
	out, overflow := new(uint256.Int).MulDivOverflow(price, uint256.NewInt(uint64(d)), uint256.NewInt(uint64(s.params.RentPeriod)))
	return out, !overflow
}

func (s *RentalService) publishChange(ctx context.Context, change model.HeadChange) {
	if !change.Changed {
		return
	}
	var price *uint256.Int
	if change.HasOwner() {
		if head, err := s.book.Head(change.Card); err == nil {
			price = head.Price
		}
	}
	s.publish(ctx, events.OwnerChanged(change, price))
}

// publish delivers ev; delivery failures are logged and never undo the trade
func (s *RentalService) publish(ctx context.Context, ev events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		utils.Error("service: failed to publish event", map[string]any{
			"type":  string(ev.Type),
			"card":  ev.Card.String(),
			"error": err.Error(),
		})
	}
}

// retryable reports whether a rejected placement may succeed with a hint
// recomputed by FindHint
func retryable(err error, hint common.Address) bool {
	if orderbookerrors.IsLocation(err) {
		return true
	}
	return hint == orderbook.Top && errors.Is(err, orderbookerrors.ErrIterationLimitExceeded)
}

func validateBid(card model.Card, bidder common.Address, price *uint256.Int, limit time.Duration) error {
	if card.Market == (common.Address{}) {
		return fmt.Errorf("service: %w - missing market", orderbookerrors.ErrInvalidRequest)
	}
	if bidder == orderbook.Top {
		return fmt.Errorf("service: %w - missing bidder", orderbookerrors.ErrInvalidRequest)
	}
	if price == nil || price.IsZero() {
		return fmt.Errorf("service: %w - non-positive bid price", orderbookerrors.ErrInvalidPrice)
	}
	if limit < 0 {
		return fmt.Errorf("service: %w - negative time held limit", orderbookerrors.ErrInvalidRequest)
	}
	return nil
}
