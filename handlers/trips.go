package handlers

import (
	"net/http"

	"tripnest/screens"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) ListTrips(c *gin.Context) {
	st, err := screens.NewTripListScreen(hb.Trips).Load(c.Request.Context(), c.Query("category"))
	respond(c, st, err)
}

func (hb *HandlerBundle) FeaturedTrips(c *gin.Context) {
	st, err := screens.NewHomeScreen(hb.Trips).Load(c.Request.Context())
	respond(c, st, err)
}

func (hb *HandlerBundle) GetTrip(c *gin.Context) {
	st, err := screens.NewTripDetailScreen(hb.Trips, hb.Saved).Load(c.Request.Context(), c.Param("id"))
	respond(c, st, err)
}

func (hb *HandlerBundle) SaveTrip(c *gin.Context) {
	hb.setSaved(c, true)
}

func (hb *HandlerBundle) UnsaveTrip(c *gin.Context) {
	hb.setSaved(c, false)
}

func (hb *HandlerBundle) setSaved(c *gin.Context, saved bool) {
	screen := screens.NewTripDetailScreen(hb.Trips, hb.Saved)
	ctx := c.Request.Context()
	if st, err := screen.Load(ctx, c.Param("id")); err != nil {
		respond(c, st, err)
		return
	}
	st, err := screen.SetSaved(ctx, c.Param("id"), saved)
	respond(c, st, err)
}

func (hb *HandlerBundle) ListSavedTrips(c *gin.Context) {
	screen := screens.NewSavedTripsScreen(hb.Saved)
	st, err := screen.Trips.Run(c.Request.Context(), hb.Saved.ListSavedTrips)
	respond(c, st, err)
}

// StreamSavedTrips pushes the live saved-trips state as Server-Sent Events
// until the client goes away.
func (hb *HandlerBundle) StreamSavedTrips(c *gin.Context) {
	ctx := c.Request.Context()
	screen := screens.NewSavedTripsScreen(hb.Saved)
	if _, err := screen.Subscribe(ctx); err != nil {
		respond(c, screen.Trips.State(), err)
		return
	}
	states := screen.Trips.Observe(ctx)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-states:
			if !ok {
				return
			}
			c.SSEvent("savedTrips", st)
			c.Writer.Flush()
		}
	}
}
