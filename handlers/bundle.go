package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers for route registration.
type HandlerBundle struct {
	// Agent endpoint.
	HandleTurn gin.HandlerFunc

	// Dashboard endpoints.
	GetReservations gin.HandlerFunc
	GetAvailability gin.HandlerFunc
	GetConfig       gin.HandlerFunc
	StreamEvents    gin.HandlerFunc
}
