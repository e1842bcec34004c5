package helpers

import (
	"time"

	model "card-orderbook/internal/models"

	"github.com/ethereum/go-ethereum/common"
)

// Request/Response DTOs. Amounts travel as decimal strings so 256-bit
// values survive JSON clients.
type PlaceBidRequest struct {
	Bidder        string `json:"bidder" binding:"required"`
	Price         string `json:"price" binding:"required"`
	Hint          string `json:"hint"`            // bidder believed to be directly above; empty searches from the top
	TimeHeldLimit string `json:"time_held_limit"` // Go duration, empty for unlimited
}

type AmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type CollectRentRequest struct {
	Elapsed string `json:"elapsed" binding:"required"` // Go duration
}

type LockCardRequest struct {
	LockAt time.Time `json:"lock_at" binding:"required"`
}

type BidResponse struct {
	BidID         string `json:"bid_id"`
	Market        string `json:"market"`
	Token         uint64 `json:"token"`
	Bidder        string `json:"bidder"`
	Price         string `json:"price"`
	TimeHeldLimit string `json:"time_held_limit,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type AccountResponse struct {
	Bidder    string   `json:"bidder"`
	Balance   string   `json:"balance"`
	Pruned    []string `json:"pruned,omitempty"`
	Remaining int      `json:"remaining,omitempty"`
}

type RentResponse struct {
	Market     string `json:"market"`
	Token      uint64 `json:"token"`
	Owner      string `json:"owner"`
	Due        string `json:"due"`
	Paid       string `json:"paid"`
	Foreclosed bool   `json:"foreclosed"`
	NewOwner   string `json:"new_owner,omitempty"`
	Pending    bool   `json:"pending,omitempty"`
}

type ForecloseResponse struct {
	Bidder    string   `json:"bidder"`
	Removed   []string `json:"removed"`
	Remaining int      `json:"remaining"`
}

// ToBidResponse converts a bid into its API form
func ToBidResponse(bid model.Bid) BidResponse {
	resp := BidResponse{
		BidID:     bid.BidID,
		Market:    bid.Card.Market.Hex(),
		Token:     bid.Card.Token,
		Bidder:    bid.Bidder.Hex(),
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: bid.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if bid.Price != nil {
		resp.Price = bid.Price.Dec()
	}
	if bid.TimeHeldLimit > 0 {
		resp.TimeHeldLimit = bid.TimeHeldLimit.String()
	}
	return resp
}

func ToBidResponses(bids []model.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, bid := range bids {
		out = append(out, ToBidResponse(bid))
	}
	return out
}

func ToAccountResponse(acct model.Account) AccountResponse {
	resp := AccountResponse{
		Bidder:    acct.Bidder.Hex(),
		Balance:   "0",
		Remaining: acct.Remaining,
	}
	if acct.Balance != nil {
		resp.Balance = acct.Balance.Dec()
	}
	for _, card := range acct.Pruned {
		resp.Pruned = append(resp.Pruned, card.String())
	}
	return resp
}

func ToRentResponse(rent model.Rent) RentResponse {
	resp := RentResponse{
		Market:     rent.Card.Market.Hex(),
		Token:      rent.Card.Token,
		Owner:      rent.Owner.Hex(),
		Due:        decOrZero(rent.Due),
		Paid:       decOrZero(rent.Paid),
		Foreclosed: rent.Foreclosed,
		Pending:    rent.Pending,
	}
	if rent.NewOwner != (common.Address{}) {
		resp.NewOwner = rent.NewOwner.Hex()
	}
	return resp
}
