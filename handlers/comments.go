package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"blog-api/models"
	"blog-api/repository"
)

func (a *API) ListComments(c *gin.Context) {
	comments, err := a.Comments.ListByPost(c, c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}

// CreateComment stores a comment under an existing post; the author is
// the authenticated identity. Comments are immutable once created.
func (a *API) CreateComment(c *gin.Context) {
	user := currentUser(c)
	postID := c.Param("id")

	var req models.CreateCommentReq
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil || req.Content == "" {
		fail(c, http.StatusBadRequest, "Content is required")
		return
	}

	if _, err := a.Posts.GetByID(c, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusNotFound, "Post not found")
			return
		}
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	comment, err := a.Comments.Create(c, postID, user.ID, req.Content)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment})
}
