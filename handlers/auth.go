package handlers

import (
	"net/http"

	"tripnest/screens"
	"tripnest/utils"

	"github.com/gin-gonic/gin"
)

// TokenKey is where the auth middleware stores the raw bearer token.
const TokenKey = "token"

type signUpInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type signInInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (hb *HandlerBundle) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, screens.WelcomeScreen{}.Content())
}

func (hb *HandlerBundle) SignUp(c *gin.Context) {
	var input signUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	st, err := screens.NewAuthScreen(hb.Auth).SignUp(c.Request.Context(), input.Email, input.Password, input.Name)
	if err == nil {
		c.JSON(http.StatusCreated, st)
		return
	}
	respond(c, st, err)
}

func (hb *HandlerBundle) SignIn(c *gin.Context) {
	var input signInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	st, err := screens.NewAuthScreen(hb.Auth).SignIn(c.Request.Context(), input.Email, input.Password)
	respond(c, st, err)
}

func (hb *HandlerBundle) SignOut(c *gin.Context) {
	if err := hb.Auth.SignOut(c.Request.Context(), c.GetString(TokenKey)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (hb *HandlerBundle) Me(c *gin.Context) {
	st, err := screens.NewProfileScreen(hb.Auth, hb.Bookings, hb.BookingSvc).LoadUser(c.Request.Context())
	respond(c, st, err)
}
