package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"blog-api/models"
	"blog-api/repository"
	"blog-api/storage"
)

// ListPosts is the public paginated list. Keyword matches the title as a
// case-insensitive substring; category filters by id; both combine.
func (a *API) ListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	filter := models.PostFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Page:     page,
		PageSize: pageSize,
	}

	posts, total, err := a.Posts.List(c, filter)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	totalPages := (total + pageSize - 1) / pageSize
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       posts,
		"page":       page,
		"totalPages": totalPages,
		"totalPosts": total,
	})
}

// GetPost reads a single post cache-aside: Redis hit serves the cached
// body, a miss reads the database, bumps the view counter and fills the
// cache best-effort.
func (a *API) GetPost(c *gin.Context) {
	id := c.Param("id")
	key := "post:" + id

	if a.Cache != nil {
		var cached models.Post
		if hit, err := a.Cache.GetJSON(c, key, &cached); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"success": true, "cached": true, "data": cached})
			return
		}
	}

	post, err := a.Posts.GetByID(c, id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	if err := a.Posts.IncrementViewCount(c, id); err != nil {
		a.log().Warn("view count increment failed", "post", id, "err", err)
	}
	if a.Cache != nil {
		if err := a.Cache.SetJSON(c, key, post); err != nil {
			a.log().Warn("cache set failed", "key", key, "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cached": false, "data": post})
}

// CreatePost accepts a multipart form: title, content, category, plus an
// optional cover file. The author is always the authenticated identity.
func (a *API) CreatePost(c *gin.Context) {
	user := currentUser(c)

	var req models.CreatePostReq
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.Title == "" || req.Content == "" || req.Category == "" {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	if _, err := a.Categories.GetByID(c, req.Category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fail(c, http.StatusBadRequest, "Invalid category ID provided.")
			return
		}
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	featuredImage := models.DefaultFeaturedImage
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > a.MaxUploadBytes {
			fail(c, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		f, err := fh.Open()
		if err != nil {
			fail(c, http.StatusBadRequest, "Could not read file")
			return
		}
		defer f.Close()
		ref, err := a.Uploads.Save(c, storage.GenerateName(fh.Filename), f)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Server Error")
			return
		}
		featuredImage = ref
	}

	post, err := a.Posts.Create(c, req, user.ID, featuredImage)
	if errors.Is(err, repository.ErrConflict) {
		fail(c, http.StatusBadRequest, "Post title already exists")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	a.indexPost(c, post)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": post})
}

// UpdatePost applies a JSON partial update. Only the stored author may
// update; a changed category reference is revalidated.
func (a *API) UpdatePost(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	post, err := a.Posts.GetByID(c, id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	if post.AuthorID != user.ID {
		fail(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req models.UpdatePostReq
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Category != nil {
		if _, err := a.Categories.GetByID(c, *req.Category); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				fail(c, http.StatusBadRequest, "Invalid category ID provided.")
				return
			}
			fail(c, http.StatusInternalServerError, "Server Error")
			return
		}
	}

	updated, err := a.Posts.Update(c, id, req)
	if errors.Is(err, repository.ErrConflict) {
		fail(c, http.StatusBadRequest, "Post title already exists")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	a.invalidatePost(c, id)
	a.indexPost(c, updated)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DeletePost removes a post (comments cascade). Owner only.
func (a *API) DeletePost(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	post, err := a.Posts.GetByID(c, id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	if post.AuthorID != user.ID {
		fail(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := a.Posts.Delete(c, id); err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}

	a.invalidatePost(c, id)
	if a.Search != nil {
		if err := a.Search.DeletePost(c, id); err != nil {
			a.log().Warn("search delete failed", "post", id, "err", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

// SearchPosts proxies a full-text query to the search index.
func (a *API) SearchPosts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		fail(c, http.StatusBadRequest, "q is required")
		return
	}
	if a.Search == nil {
		fail(c, http.StatusServiceUnavailable, "Search unavailable")
		return
	}
	res, err := a.Search.SearchPosts(c, q)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, res)
}

// RelatedPosts returns up to five posts sharing tags with the given one.
func (a *API) RelatedPosts(c *gin.Context) {
	id := c.Param("id")
	post, err := a.Posts.GetByID(c, id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	if a.Search == nil {
		fail(c, http.StatusServiceUnavailable, "Search unavailable")
		return
	}
	res, err := a.Search.RelatedPosts(c, post.Tags, post.ID, 5)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *API) indexPost(c *gin.Context, p *models.Post) {
	if a.Search == nil {
		return
	}
	if err := a.Search.IndexPost(c, p); err != nil {
		a.log().Warn("search index failed", "post", p.ID, "err", err)
	}
}

func (a *API) invalidatePost(c *gin.Context, id string) {
	if a.Cache == nil {
		return
	}
	if err := a.Cache.Del(c, "post:"+id); err != nil {
		a.log().Warn("cache invalidate failed", "post", id, "err", err)
	}
}
