package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	model "card-orderbook/internal/models"
	"card-orderbook/internal/orderbookerrors"
	"card-orderbook/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, orderbookerrors.ErrInvalidPrice):
		return http.StatusBadRequest, "invalid price"
	case errors.Is(err, orderbookerrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case orderbookerrors.IsLocation(err):
		return http.StatusConflict, "position hint does not match the orderbook"
	case errors.Is(err, orderbookerrors.ErrBidExists):
		return http.StatusConflict, "bid already exists"
	case errors.Is(err, orderbookerrors.ErrCardLocked):
		return http.StatusConflict, "card is locked"
	case errors.Is(err, orderbookerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, orderbookerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for card"
	case errors.Is(err, orderbookerrors.ErrIterationLimitExceeded):
		return http.StatusUnprocessableEntity, "search limit exceeded, supply a closer hint"
	case errors.Is(err, orderbookerrors.ErrInsufficientDeposit):
		return http.StatusPaymentRequired, "insufficient deposit"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError maps err, writes the error response and logs it
func RespondError(c *gin.Context, handlerName, what string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+what, fields)
		return
	}
	utils.Warn(handlerName+": "+what, fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// ParseCard reads the :market and :token path parameters
func ParseCard(c *gin.Context) (model.Card, error) {
	market, err := ParseAddress(c.Param("market"), "market")
	if err != nil {
		return model.Card{}, err
	}
	token, err := strconv.ParseUint(c.Param("token"), 10, 64)
	if err != nil {
		return model.Card{}, fmt.Errorf("%w - token must be an unsigned integer", orderbookerrors.ErrInvalidRequest)
	}
	return model.Card{Market: market, Token: token}, nil
}

// ParseAddress parses a hex address; field names it in the error
func ParseAddress(s, field string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w - %s is not a hex address", orderbookerrors.ErrInvalidRequest, field)
	}
	return common.HexToAddress(s), nil
}

// ParseHint parses an optional hint; empty means search from the top
func ParseHint(s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	return ParseAddress(s, "hint")
}

// ParseAmount parses a positive decimal amount
func ParseAmount(s, field string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w - %s must be a decimal integer", orderbookerrors.ErrInvalidRequest, field)
	}
	if v.IsZero() {
		return nil, fmt.Errorf("%w - %s must be positive", orderbookerrors.ErrInvalidPrice, field)
	}
	return v, nil
}

// ParseDuration parses an optional Go duration; empty means zero
func ParseDuration(s, field string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w - %s must be a non-negative duration", orderbookerrors.ErrInvalidRequest, field)
	}
	return d, nil
}

func decOrZero(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
