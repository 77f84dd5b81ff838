package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-api/storage"
)

// Upload accepts a single multipart file under the "file" field, stores
// it under a generated name and returns the reference the client later
// sets as a post's featured image.
func (a *API) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "No file uploaded.")
		return
	}
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

	name := storage.GenerateName(fh.Filename)
	ref, err := a.Uploads.Save(c, name, f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "filename": name, "imagePath": ref})
}
