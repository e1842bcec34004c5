package server

import (
	handler "card-orderbook/services/orderbook/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(service handler.RentalServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // tag request and response
	router.Use(RequestLoggerMiddleware) // custom request logging

	h := handler.NewOrderbookHandler(service)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	cards := router.Group("/cards/:market/:token")
	{
		cards.POST("/bids", h.PlaceBidHandler)
		cards.GET("/bids", h.GetBidsHandler)
		cards.GET("/bids/:bidder", h.GetBidHandler)
		cards.DELETE("/bids/:bidder", h.ExitCardHandler)
		cards.GET("/owner", h.GetOwnerHandler)
		cards.POST("/rent", h.CollectRentHandler)
		cards.POST("/lock", h.LockCardHandler)
	}

	users := router.Group("/users/:bidder")
	{
		users.GET("", h.GetAccountHandler)
		users.POST("/deposit", h.DepositHandler)
		users.POST("/withdraw", h.WithdrawHandler)
		users.GET("/bids", h.GetBidsByBidderHandler)
		users.DELETE("/bids", h.ForecloseHandler)
	}

	return router
}
