package handlers

import (
	"net/http"

	"tripnest/models"
	"tripnest/screens"

	"github.com/gin-gonic/gin"
)

// ConfirmBooking books a trip, and a room when one is selected.
func (hb *HandlerBundle) ConfirmBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := screens.NewBookingScreen(hb.BookingSvc).Confirm(c.Request.Context(), req)
	if err == nil {
		c.JSON(http.StatusCreated, st)
		return
	}
	respond(c, st, err)
}

func (hb *HandlerBundle) MyBookings(c *gin.Context) {
	st, err := screens.NewProfileScreen(hb.Auth, hb.Bookings, hb.BookingSvc).LoadBookings(c.Request.Context())
	respond(c, st, err)
}

// CancelBooking returns the caller's bookings with the cancelled one updated.
func (hb *HandlerBundle) CancelBooking(c *gin.Context) {
	screen := screens.NewProfileScreen(hb.Auth, hb.Bookings, hb.BookingSvc)
	ctx := c.Request.Context()
	if st, err := screen.LoadBookings(ctx); err != nil {
		respond(c, st, err)
		return
	}
	st, err := screen.CancelBooking(ctx, c.Param("id"))
	respond(c, st, err)
}
