package market

import (
	"fmt"
	"sync"

	"card-orderbook/internal/orderbookerrors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Treasury holds every bidder's deposit
type Treasury struct {
	mu       sync.RWMutex
	deposits map[common.Address]*uint256.Int
}

func NewTreasury() *Treasury {
	return &Treasury{deposits: make(map[common.Address]*uint256.Int)}
}

// Deposit credits amount to bidder and returns the new balance
func (t *Treasury) Deposit(bidder common.Address, amount *uint256.Int) (*uint256.Int, error) {
	if amount == nil || amount.IsZero() {
		return nil, fmt.Errorf("treasury: %w - deposit must be positive", orderbookerrors.ErrInvalidRequest)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	bal := t.balanceLocked(bidder)
	sum, overflow := new(uint256.Int).AddOverflow(bal, amount)
	if overflow {
		return nil, fmt.Errorf("treasury: %w - deposit overflows balance", orderbookerrors.ErrInvalidRequest)
	}
	t.deposits[bidder] = sum
	return new(uint256.Int).Set(sum), nil
}

// Withdraw debits amount from bidder and returns the new balance
func (t *Treasury) Withdraw(bidder common.Address, amount *uint256.Int) (*uint256.Int, error) {
	if amount == nil || amount.IsZero() {
		return nil, fmt.Errorf("treasury: %w - withdrawal must be positive", orderbookerrors.ErrInvalidRequest)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	bal := t.balanceLocked(bidder)
	if bal.Lt(amount) {
		return nil, fmt.Errorf("treasury: %w - balance %s below %s", orderbookerrors.ErrInsufficientDeposit, bal.Dec(), amount.Dec())
	}
	rest := new(uint256.Int).Sub(bal, amount)
	t.setLocked(bidder, rest)
	return new(uint256.Int).Set(rest), nil
}

// Debit takes up to amount from bidder and returns what was actually paid
func (t *Treasury) Debit(bidder common.Address, amount *uint256.Int) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()

	bal := t.balanceLocked(bidder)
	paid := new(uint256.Int).Set(amount)
	if bal.Lt(amount) {
		paid.Set(bal)
	}
	t.setLocked(bidder, new(uint256.Int).Sub(bal, paid))
	return paid
}

// Balance returns a copy of bidder's deposit
func (t *Treasury) Balance(bidder common.Address) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return new(uint256.Int).Set(t.balanceLocked(bidder))
}

// Covers reports whether bidder's deposit is at least amount
func (t *Treasury) Covers(bidder common.Address, amount *uint256.Int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.balanceLocked(bidder).Lt(amount)
}

func (t *Treasury) balanceLocked(bidder common.Address) *uint256.Int {
	if bal, ok := t.deposits[bidder]; ok {
		return bal
	}
	return new(uint256.Int)
}

func (t *Treasury) setLocked(bidder common.Address, bal *uint256.Int) {
	if bal.IsZero() {
		delete(t.deposits, bidder)
		return
	}
	t.deposits[bidder] = bal
}
