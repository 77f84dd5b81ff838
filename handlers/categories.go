package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"blog-api/models"
	"blog-api/repository"
)

func (a *API) ListCategories(c *gin.Context) {
	categories, err := a.Categories.List(c)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

func (a *API) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryReq
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	category, err := a.Categories.Create(c, strings.TrimSpace(req.Name))
	if errors.Is(err, repository.ErrConflict) {
		fail(c, http.StatusBadRequest, "Category name already exists.")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}
