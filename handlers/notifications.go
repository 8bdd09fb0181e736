package handlers

import (
	"tripnest/screens"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) ListNotifications(c *gin.Context) {
	st, err := screens.NewNotificationsScreen(hb.Notifications).Load(c.Request.Context())
	respond(c, st, err)
}

func (hb *HandlerBundle) GetNotification(c *gin.Context) {
	st, err := screens.NewNotificationsScreen(hb.Notifications).Open(c.Request.Context(), c.Param("id"))
	respond(c, st, err)
}
