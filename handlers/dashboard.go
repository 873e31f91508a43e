package handlers

import (
	"net/http"

	"bobbystable/config"
	"bobbystable/services/reservation"
	"bobbystable/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the read-only query surface the web dashboard
// renders from.
type DashboardHandler struct {
	Store  reservation.ReservationStore
	Ledger *reservation.SlotLedger
}

func NewDashboardHandler(store reservation.ReservationStore, ledger *reservation.SlotLedger) *DashboardHandler {
	return &DashboardHandler{Store: store, Ledger: ledger}
}

// GetReservationsHandler returns all confirmed reservations grouped by
// date, each date's list sorted by time.
func (h *DashboardHandler) GetReservationsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ListByDate())
}

// GetAvailabilityHandler returns per-slot availability for one date.
func (h *DashboardHandler) GetAvailabilityHandler(c *gin.Context) {
	date := c.Param("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date is required")
		return
	}
	c.JSON(http.StatusOK, h.Ledger.Availability(date))
}

// GetConfigHandler returns the public configuration for the frontend.
func (h *DashboardHandler) GetConfigHandler(c *gin.Context) {
	var phone any
	if config.AppConfig.PhoneNumber != "" {
		phone = config.AppConfig.PhoneNumber
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant_name": config.AppConfig.RestaurantName,
		"phone_number":    phone,
	})
}
