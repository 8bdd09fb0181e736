package handlers

import (
	"net/http"

	"tripnest/screens"
	"tripnest/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respond writes a screen state with the status code of err's kind.
func respond[T any](c *gin.Context, st screens.State[T], err error) {
	if err != nil {
		status := utils.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			getLogger(c).Error("Request failed", zap.String("route", c.FullPath()), zap.Error(err))
		} else {
			getLogger(c).Debug("Request rejected", zap.String("route", c.FullPath()), zap.Error(err))
		}
		c.JSON(status, st)
		return
	}
	c.JSON(http.StatusOK, st)
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}
