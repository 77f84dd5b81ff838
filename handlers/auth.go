package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"blog-api/auth"
	"blog-api/models"
	"blog-api/repository"
)

// Register creates a user from a unique email and returns it with a
// fresh token, so the client is logged in immediately.
func (a *API) Register(c *gin.Context) {
	var req models.RegisterReq
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		fail(c, http.StatusBadRequest, "Invalid user data")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	user, err := a.Users.Create(c, req.Username, req.Email, hash)
	if errors.Is(err, repository.ErrConflict) {
		fail(c, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	token, err := a.Tokens.Issue(user.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}

// Login answers with the identical "Invalid credentials" body whether the
// email is unknown or the password is wrong.
func (a *API) Login(c *gin.Context) {
	var req models.LoginReq
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		fail(c, http.StatusBadRequest, "Invalid user data")
		return
	}

	user, err := a.Users.GetByEmail(c, req.Email)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	token, err := a.Tokens.Issue(user.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}
