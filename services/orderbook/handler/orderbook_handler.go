package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbookerrors"
	"card-orderbook/services/orderbook/helpers"
	"card-orderbook/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
)

//go:generate mockgen -source=orderbook_handler.go -destination=mock_service.go -package=handler

type RentalServiceInterface interface {
	PlaceBid(ctx context.Context, card model.Card, bidder common.Address, price *uint256.Int, hint common.Address, timeHeldLimit time.Duration) (model.Bid, error)
	ExitCard(ctx context.Context, card model.Card, bidder common.Address) error
	Deposit(ctx context.Context, bidder common.Address, amount *uint256.Int) (model.Account, error)
	Withdraw(ctx context.Context, bidder common.Address, amount *uint256.Int) (model.Account, error)
	Balance(bidder common.Address) model.Account
	CollectRent(ctx context.Context, card model.Card, elapsed time.Duration) (model.Rent, error)
	Foreclose(ctx context.Context, bidder common.Address) (model.Prune, error)
	LockCard(ctx context.Context, card model.Card, at time.Time) error
	Owner(card model.Card) (model.Bid, error)
	Bids(card model.Card) ([]model.Bid, error)
	Bid(card model.Card, bidder common.Address) (model.Bid, error)
	BidsByBidder(bidder common.Address) ([]model.Bid, error)
}

type OrderbookHandler struct {
	service RentalServiceInterface
}

func NewOrderbookHandler(service RentalServiceInterface) *OrderbookHandler {
	return &OrderbookHandler{service: service}
}

// PlaceBidHandler handles POST /cards/:market/:token/bids
func (h *OrderbookHandler) PlaceBidHandler(c *gin.Context) {
	const name = "PlaceBidHandler"

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, name, err)
		return
	}

	card, err := helpers.ParseCard(c)
	if err != nil {
		helpers.RespondError(c, name, "invalid card", err, nil)
		return
	}
	bidder, err := helpers.ParseAddress(req.Bidder, "bidder")
	if err != nil {
		helpers.RespondError(c, name, "invalid bidder", err, nil)
		return
	}
	price, err := helpers.ParseAmount(req.Price, "price")
	if err != nil {
		helpers.RespondError(c, name, "invalid price", err, nil)
		return
	}
	hint, err := helpers.ParseHint(req.Hint)
	if err != nil {
		helpers.RespondError(c, name, "invalid hint", err, nil)
		return
	}
	limit, err := helpers.ParseDuration(req.TimeHeldLimit, "time_held_limit")
	if err != nil {
		helpers.RespondError(c, name, "invalid time held limit", err, nil)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), card, bidder, price, hint, limit)
	if err != nil {
		helpers.RespondError(c, name, "failed to place bid", err, map[string]any{
			"card":   card.String(),
			"bidder": bidder.Hex(),
			"price":  price.Dec(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess(name, "bid placed successfully", map[string]any{
		"bid_id": bid.BidID,
		"card":   card.String(),
		"bidder": bidder.Hex(),
		"price":  price.Dec(),
	})
}

// GetBidsHandler handles GET /cards/:market/:token/bids
func (h *OrderbookHandler) GetBidsHandler(c *gin.Context) {
	const name = "GetBidsHandler"

	card, err := helpers.ParseCard(c)
	if err != nil {
		helpers.RespondError(c, name, "invalid card", err, nil)
		return
	}

	bids, err := h.service.Bids(card)
	if err != nil && !errors.Is(err, orderbookerrors.ErrNoBids) {
		helpers.RespondError(c, name, "error retrieving bids", err, map[string]any{"card": card.String()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess(name, "bids retrieved successfully", map[string]any{
		"card":  card.String(),
		"count": len(bids),
	})
}

// GetBidHandler handles GET /cards/:market/:token/bids/:bidder
func (h *OrderbookHandler) GetBidHandler(c *gin.Context) {
	const name = "GetBidHandler"

	card, bidder, ok := h.cardAndBidder(c, name)
	if !ok {
		return
	}

	bid, err := h.service.Bid(card, bidder)
	if err != nil {
		helpers.RespondError(c, name, "error retrieving bid", err, map[string]any{
			"card":   card.String(),
			"bidder": bidder.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid retrieved successfully")
}

// ExitCardHandler handles DELETE /cards/:market/:token/bids/:bidder
func (h *OrderbookHandler) ExitCardHandler(c *gin.Context) {
	const name = "ExitCardHandler"

	card, bidder, ok := h.cardAndBidder(c, name)
	if !ok {
		return
	}

	if err := h.service.ExitCard(c.Request.Context(), card, bidder); err != nil {
		helpers.RespondError(c, name, "failed to exit card", err, map[string]any{
			"card":   card.String(),
			"bidder": bidder.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "bid removed successfully")
	helpers.LogSuccess(name, "bid removed successfully", map[string]any{
		"card":   card.String(),
		"bidder": bidder.Hex(),
	})
}

// GetOwnerHandler handles GET /cards/:market/:token/owner
func (h *OrderbookHandler) GetOwnerHandler(c *gin.Context) {
	const name = "GetOwnerHandler"

	card, err := helpers.ParseCard(c)
	if err != nil {
		helpers.RespondError(c, name, "invalid card", err, nil)
		return
	}

	bid, err := h.service.Owner(card)
	if err != nil {
		if errors.Is(err, orderbookerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "card has no owner")
			utils.Info(name+": card has no owner", map[string]any{"card": card.String()})
			return
		}
		helpers.RespondError(c, name, "owner error", err, map[string]any{"card": card.String()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "owner retrieved successfully")
}

// CollectRentHandler handles POST /cards/:market/:token/rent
func (h *OrderbookHandler) CollectRentHandler(c *gin.Context) {
	const name = "CollectRentHandler"

	var req helpers.CollectRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, name, err)
		return
	}
	card, err := helpers.ParseCard(c)
	if err != nil {
		helpers.RespondError(c, name, "invalid card", err, nil)
		return
	}
	elapsed, err := helpers.ParseDuration(req.Elapsed, "elapsed")
	if err != nil {
		helpers.RespondError(c, name, "invalid elapsed time", err, nil)
		return
	}

	rent, err := h.service.CollectRent(c.Request.Context(), card, elapsed)
	if err != nil {
		helpers.RespondError(c, name, "failed to collect rent", err, map[string]any{"card": card.String()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToRentResponse(rent), "rent collected successfully")
	helpers.LogSuccess(name, "rent collected successfully", map[string]any{
		"card":       card.String(),
		"paid":       rent.Paid.Dec(),
		"foreclosed": rent.Foreclosed,
	})
}

// LockCardHandler handles POST /cards/:market/:token/lock
func (h *OrderbookHandler) LockCardHandler(c *gin.Context) {
	const name = "LockCardHandler"

	var req helpers.LockCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, name, err)
		return
	}
	card, err := helpers.ParseCard(c)
	if err != nil {
		helpers.RespondError(c, name, "invalid card", err, nil)
		return
	}

	if err := h.service.LockCard(c.Request.Context(), card, req.LockAt); err != nil {
		helpers.RespondError(c, name, "failed to lock card", err, map[string]any{"card": card.String()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"lock_at": req.LockAt.UTC().Format(time.RFC3339)}, "card lock scheduled")
}

// GetAccountHandler handles GET /users/:bidder
func (h *OrderbookHandler) GetAccountHandler(c *gin.Context) {
	const name = "GetAccountHandler"

	bidder, err := helpers.ParseAddress(c.Param("bidder"), "bidder")
	if err != nil {
		helpers.RespondError(c, name, "invalid bidder", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.ToAccountResponse(h.service.Balance(bidder)), "account retrieved successfully")
}

// DepositHandler handles POST /users/:bidder/deposit
func (h *OrderbookHandler) DepositHandler(c *gin.Context) {
	h.moveFunds(c, "DepositHandler", "deposit", h.service.Deposit)
}

// WithdrawHandler handles POST /users/:bidder/withdraw
func (h *OrderbookHandler) WithdrawHandler(c *gin.Context) {
	h.moveFunds(c, "WithdrawHandler", "withdrawal", h.service.Withdraw)
}

// GetBidsByBidderHandler handles GET /users/:bidder/bids
func (h *OrderbookHandler) GetBidsByBidderHandler(c *gin.Context) {
	const name = "GetBidsByBidderHandler"

	bidder, err := helpers.ParseAddress(c.Param("bidder"), "bidder")
	if err != nil {
		helpers.RespondError(c, name, "invalid bidder", err, nil)
		return
	}

	bids, err := h.service.BidsByBidder(bidder)
	if err != nil {
		helpers.RespondError(c, name, "error retrieving bids", err, map[string]any{"bidder": bidder.Hex()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess(name, "bids retrieved successfully", map[string]any{
		"bidder": bidder.Hex(),
		"count":  len(bids),
	})
}

// ForecloseHandler handles DELETE /users/:bidder/bids
func (h *OrderbookHandler) ForecloseHandler(c *gin.Context) {
	const name = "ForecloseHandler"

	bidder, err := helpers.ParseAddress(c.Param("bidder"), "bidder")
	if err != nil {
		helpers.RespondError(c, name, "invalid bidder", err, nil)
		return
	}

	res, err := h.service.Foreclose(c.Request.Context(), bidder)
	if err != nil {
		helpers.RespondError(c, name, "failed to foreclose", err, map[string]any{"bidder": bidder.Hex()})
		return
	}

	resp := helpers.ForecloseResponse{Bidder: bidder.Hex(), Removed: []string{}, Remaining: res.Remaining}
	for _, card := range res.Removed {
		resp.Removed = append(resp.Removed, card.String())
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bidder foreclosed")
	helpers.LogSuccess(name, "bidder foreclosed", map[string]any{
		"bidder":    bidder.Hex(),
		"removed":   len(res.Removed),
		"remaining": res.Remaining,
	})
}

func (h *OrderbookHandler) moveFunds(c *gin.Context, name, what string, move func(context.Context, common.Address, *uint256.Int) (model.Account, error)) {
	var req helpers.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, name, err)
		return
	}
	bidder, err := helpers.ParseAddress(c.Param("bidder"), "bidder")
	if err != nil {
		helpers.RespondError(c, name, "invalid bidder", err, nil)
		return
	}
	amount, err := helpers.ParseAmount(req.Amount, "amount")
	if err != nil {
		helpers.RespondError(c, name, "invalid amount", err, nil)
		return
	}

	acct, err := move(c.Request.Context(), bidder, amount)
	if err != nil {
		helpers.RespondError(c, name, what+" failed", err, map[string]any{
			"bidder": bidder.Hex(),
			"amount": amount.Dec(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAccountResponse(acct), what+" completed")
	helpers.LogSuccess(name, what+" completed", map[string]any{
		"bidder": bidder.Hex(),
		"amount": amount.Dec(),
		"pruned": len(acct.Pruned),
	})
}

func (h *OrderbookHandler) cardAndBidder(c *gin.Context, name string) (model.Card, common.Address, bool) {
	card, err := helpers.ParseCard(c)
	if err != nil {
		helpers.RespondError(c, name, "invalid card", err, nil)
		return model.Card{}, common.Address{}, false
	}
	bidder, err := helpers.ParseAddress(c.Param("bidder"), "bidder")
	if err != nil {
		helpers.RespondError(c, name, "invalid bidder", err, nil)
		return model.Card{}, common.Address{}, false
	}
	return card, bidder, true
}
