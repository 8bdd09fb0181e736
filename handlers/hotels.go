package handlers

import (
	"tripnest/screens"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) GetHotel(c *gin.Context) {
	st, err := screens.NewHotelScreen(hb.Hotels).LoadHotel(c.Request.Context(), c.Param("hotelId"))
	respond(c, st, err)
}

func (hb *HandlerBundle) ListRoomTypes(c *gin.Context) {
	st, err := screens.NewHotelScreen(hb.Hotels).LoadRoomTypes(c.Request.Context(), c.Param("hotelId"))
	respond(c, st, err)
}

func (hb *HandlerBundle) ListAvailableRooms(c *gin.Context) {
	screen := screens.NewRoomSelectionScreen(hb.Hotels)
	st, err := screen.LoadRooms(c.Request.Context(), c.Param("hotelId"), c.Param("roomTypeId"))
	respond(c, st, err)
}

func (hb *HandlerBundle) BookRoom(c *gin.Context) {
	screen := screens.NewRoomSelectionScreen(hb.Hotels)
	st, err := screen.BookRoom(c.Request.Context(), c.Param("hotelId"), c.Param("roomTypeId"), c.Param("roomNumber"))
	respond(c, st, err)
}
