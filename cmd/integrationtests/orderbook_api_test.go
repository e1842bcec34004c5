package integrationtests

import (
	"net/http"
	"testing"

	"card-orderbook/services/orderbook/helpers"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	testMarket = common.HexToAddress("0x00000000000000000000000000000000000a4e7c")
	alice      = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob        = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	carol      = common.HexToAddress("0x00000000000000000000000000000000000ca201")
	dave       = common.HexToAddress("0x0000000000000000000000000000000000000da7")
	eve        = common.HexToAddress("0x0000000000000000000000000000000000000e7e")
)

func deposit(t *testing.T, router *gin.Engine, bidder common.Address, amount string) map[string]any {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, userURL(bidder)+"/deposit", helpers.AmountRequest{Amount: amount})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return resp["data"].(map[string]any)
}

func placeBid(t *testing.T, router *gin.Engine, req helpers.PlaceBidRequest) (map[string]any, int) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, cardURL(testMarket, 1)+"/bids", req)
	return resp, w.Code
}

func bidders(t *testing.T, router *gin.Engine) ([]string, []string) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, cardURL(testMarket, 1)+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var who, prices []string
	for _, raw := range resp["data"].([]any) {
		bid := raw.(map[string]any)
		who = append(who, bid["bidder"].(string))
		prices = append(prices, bid["price"].(string))
	}
	return who, prices
}

// PlaceBidHandler Tests
func TestPlaceBidHandler(t *testing.T) {
	tests := []struct {
		name       string
		deposit    string
		request    any
		wantStatus int
	}{
		{
			name:       "Valid_Bid",
			deposit:    "1000",
			request:    helpers.PlaceBidRequest{Bidder: alice.Hex(), Price: "480", TimeHeldLimit: "72h"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Invalid_JSON",
			request:    "{bidder: 'missing quotes', price: 100}",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Zero_Price",
			deposit:    "1000",
			request:    helpers.PlaceBidRequest{Bidder: alice.Hex(), Price: "0"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "No_Deposit",
			request:    helpers.PlaceBidRequest{Bidder: alice.Hex(), Price: "480"},
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:       "Unknown_Hint",
			deposit:    "1000",
			request:    helpers.PlaceBidRequest{Bidder: alice.Hex(), Price: "480", Hint: bob.Hex()},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupTestRouter()
			if tt.deposit != "" {
				deposit(t, router, alice, tt.deposit)
			}

			resp, code := placeBid(t, router, helpers.PlaceBidRequest{})
			require.Equal(t, http.StatusBadRequest, code, resp)

			resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, cardURL(testMarket, 1)+"/bids", tt.request)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusCreated {
				data := resp["data"].(map[string]any)
				require.Equal(t, alice.Hex(), data["bidder"])
				require.Equal(t, "480", data["price"])
				require.Equal(t, "72h0m0s", data["time_held_limit"])
				require.NotEmpty(t, data["bid_id"])
				require.NotEmpty(t, resp["request_id"])
			}
		})
	}
}

// A full rental lifecycle on one card
func TestCardLifecycle(t *testing.T) {
	router := SetupTestRouter()
	for _, bidder := range []common.Address{alice, bob, carol, dave} {
		deposit(t, router, bidder, "1000")
	}

	_, w := ExecuteRequestAndParse(t, router, http.MethodGet, cardURL(testMarket, 1)+"/owner", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	_, code := placeBid(t, router, helpers.PlaceBidRequest{Bidder: alice.Hex(), Price: "480"})
	require.Equal(t, http.StatusCreated, code)
	_, code = placeBid(t, router, helpers.PlaceBidRequest{Bidder: bob.Hex(), Price: "240"})
	require.Equal(t, http.StatusCreated, code)
	_, code = placeBid(t, router, helpers.PlaceBidRequest{Bidder: carol.Hex(), Price: "120", Hint: bob.Hex()})
	require.Equal(t, http.StatusCreated, code)

	who, prices := bidders(t, router)
	require.Equal(t, []string{alice.Hex(), bob.Hex(), carol.Hex()}, who)
	require.Equal(t, []string{"480", "240", "120"}, prices)

	t.Log("a takeover must beat the owner by the minimum increase")
	resp, code := placeBid(t, router, helpers.PlaceBidRequest{Bidder: bob.Hex(), Price: "500"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalid price", resp["message"])

	_, code = placeBid(t, router, helpers.PlaceBidRequest{Bidder: bob.Hex(), Price: "600"})
	require.Equal(t, http.StatusCreated, code)

	t.Log("a stale hint is corrected by the service")
	_, code = placeBid(t, router, helpers.PlaceBidRequest{Bidder: dave.Hex(), Price: "300", Hint: carol.Hex()})
	require.Equal(t, http.StatusCreated, code)

	who, prices = bidders(t, router)
	require.Equal(t, []string{bob.Hex(), alice.Hex(), dave.Hex(), carol.Hex()}, who)
	require.Equal(t, []string{"600", "480", "300", "120"}, prices)

	_, code = placeBid(t, router, helpers.PlaceBidRequest{Bidder: eve.Hex(), Price: "240"})
	require.Equal(t, http.StatusPaymentRequired, code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, cardURL(testMarket, 1)+"/bids/"+alice.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, cardURL(testMarket, 1)+"/bids/"+alice.Hex(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	t.Log("a day of rent is paid in full")
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, cardURL(testMarket, 1)+"/rent", helpers.CollectRentRequest{Elapsed: "24h"})
	require.Equal(t, http.StatusOK, w.Code)
	rent := resp["data"].(map[string]any)
	require.Equal(t, "600", rent["due"])
	require.Equal(t, "600", rent["paid"])
	require.Equal(t, false, rent["foreclosed"])

	t.Log("the next day drains the owner and the underbidder takes over")
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, cardURL(testMarket, 1)+"/rent", helpers.CollectRentRequest{Elapsed: "24h"})
	require.Equal(t, http.StatusOK, w.Code)
	rent = resp["data"].(map[string]any)
	require.Equal(t, "400", rent["paid"])
	require.Equal(t, true, rent["foreclosed"])
	require.Equal(t, dave.Hex(), rent["new_owner"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, userURL(bob), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "0", resp["data"].(map[string]any)["balance"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, cardURL(testMarket, 1)+"/owner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, dave.Hex(), resp["data"].(map[string]any)["bidder"])

	t.Log("a locked card rejects bids and prunes them on the next deposit")
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, cardURL(testMarket, 1)+"/lock", map[string]any{"lock_at": "2020-01-01T00:00:00Z"})
	require.Equal(t, http.StatusOK, w.Code)

	_, code = placeBid(t, router, helpers.PlaceBidRequest{Bidder: carol.Hex(), Price: "200"})
	require.Equal(t, http.StatusConflict, code)

	acct := deposit(t, router, carol, "1")
	require.Equal(t, "1001", acct["balance"])
	require.Equal(t, []any{testMarket.Hex() + "/1"}, acct["pruned"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, userURL(carol)+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodDelete, userURL(dave)+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []any{testMarket.Hex() + "/1"}, resp["data"].(map[string]any)["removed"])

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, cardURL(testMarket, 1)+"/owner", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, cardURL(testMarket, 1)+"/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"])
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		wantStatus int
		wantLeft   string
	}{
		{name: "Partial", amount: "400", wantStatus: http.StatusOK, wantLeft: "600"},
		{name: "All", amount: "1000", wantStatus: http.StatusOK, wantLeft: "0"},
		{name: "Too_Much", amount: "1001", wantStatus: http.StatusPaymentRequired},
		{name: "Not_A_Number", amount: "ten", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupTestRouter()
			deposit(t, router, alice, "1000")

			resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, userURL(alice)+"/withdraw", helpers.AmountRequest{Amount: tt.amount})
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLeft != "" {
				require.Equal(t, tt.wantLeft, resp["data"].(map[string]any)["balance"])
			}
		})
	}
}
