package middleware

import (
	"strings"

	"tripnest/handlers"
	"tripnest/services/auth"
	"tripnest/utils"

	"github.com/gin-gonic/gin"
)

// UserIDKey is where the authenticated user id is stored on the Gin context.
const UserIDKey = "userID"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// JWTAuthMiddleware validates the bearer token against the session store and
// puts the user id in the request context. With optional set, requests without
// a valid token continue anonymously.
func JWTAuthMiddleware(authSvc auth.AuthService, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if optional {
				c.Next()
				return
			}
			c.Abort()
			utils.RespondError(c, utils.Unauthenticated("missing or invalid Authorization header"))
			return
		}

		uid, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if optional {
				c.Next()
				return
			}
			c.Abort()
			utils.RespondError(c, err)
			return
		}

		c.Set(UserIDKey, uid)
		c.Set(handlers.TokenKey, token)
		c.Request = c.Request.WithContext(utils.WithUserID(c.Request.Context(), uid))
		c.Next()
	}
}
