package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-api/models"
	"blog-api/repository"
)

const userKey = "authUser"

// RequireAuth resolves the bearer token to a user and attaches it to the
// request context. Every mutating route runs behind it.
func (a *API) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			fail(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		userID, err := a.Tokens.Verify(token)
		if err != nil {
			fail(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		user, err := a.Users.GetByID(c, userID)
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}
		if err != nil {
			fail(c, http.StatusInternalServerError, "Server Error")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	u, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	return u.(*models.User)
}
